package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gostonefire/countmap"
	"github.com/gostonefire/countmap/internal/hash"
	"github.com/gostonefire/countmap/internal/logging"
	"github.com/gostonefire/countmap/internal/printer"
)

// Config is the top-level configuration struct for tally.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Sort    SortConfig    `mapstructure:"sort"`
	Table   TableConfig   `mapstructure:"table"`
	Arena   ArenaConfig   `mapstructure:"arena"`
	Input   InputConfig   `mapstructure:"input"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputConfig holds the printing format.
type OutputConfig struct {
	Order     string `mapstructure:"order"`
	Width     int    `mapstructure:"width"`
	Delimiter string `mapstructure:"delimiter"`
}

// SortConfig holds the output ordering.
type SortConfig struct {
	By         string `mapstructure:"by"`
	Descending bool   `mapstructure:"descending"`
}

// TableConfig holds the hash table knobs.
type TableConfig struct {
	InitialSize uint32 `mapstructure:"initial_size"`
	MaxSize     uint32 `mapstructure:"max_size"`
	Hash        string `mapstructure:"hash"`
}

// ArenaConfig holds the text arena sizes as human readable byte sizes ("64KiB").
type ArenaConfig struct {
	PoolSize        string `mapstructure:"pool_size"`
	PooledThreshold string `mapstructure:"pooled_threshold"`
	MemoryLimit     string `mapstructure:"memory_limit"`
}

// InputConfig holds input decoding settings.
type InputConfig struct {
	Encoding string `mapstructure:"encoding"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidOrder indicates an unknown output order.
	ErrInvalidOrder = errors.New("output.order must be count-text, text-count, text or count")
	// ErrInvalidDelimiter indicates an empty delimiter.
	ErrInvalidDelimiter = errors.New("output.delimiter must not be empty")
	// ErrInvalidSortKey indicates an unknown sort key.
	ErrInvalidSortKey = errors.New("sort.by must be none, text or count")
	// ErrInvalidTableSize indicates an initial size above the max size.
	ErrInvalidTableSize = errors.New("table.initial_size must not exceed table.max_size")
	// ErrInvalidHash indicates an unknown hash algorithm.
	ErrInvalidHash = errors.New("table.hash must name a known hash algorithm")
	// ErrInvalidArenaSize indicates an unparsable or out of range arena size.
	ErrInvalidArenaSize = errors.New("arena sizes must be byte sizes such as 64KiB")
	// ErrInvalidLogging indicates an unknown log level or format.
	ErrInvalidLogging = errors.New("logging.level or logging.format is not valid")
)

// sortKeys maps sort.by values to sort keys.
var sortKeys = map[string]countmap.SortKey{
	"none":  countmap.SortNone,
	"text":  countmap.SortByText,
	"count": countmap.SortByCount,
}

// Validate checks every setting and returns the first sentinel error that applies.
func (c *Config) Validate() error {
	if _, err := printer.ParseOrder(c.Output.Order); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidOrder, c.Output.Order)
	}

	if c.Output.Delimiter == "" {
		return ErrInvalidDelimiter
	}

	if _, ok := sortKeys[c.Sort.By]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, c.Sort.By)
	}

	if c.Table.MaxSize != 0 && c.Table.InitialSize > c.Table.MaxSize {
		return ErrInvalidTableSize
	}

	if _, err := hash.ByName(c.Table.Hash); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}

	if _, _, _, err := c.Arena.Sizes(); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogging, err)
	}
	format := strings.ToLower(c.Logging.Format)
	if format != "" && format != logging.FormatText && format != logging.FormatJSON {
		return fmt.Errorf("%w: format %q", ErrInvalidLogging, c.Logging.Format)
	}

	return nil
}

// PrinterConf returns the printer configuration. Only the first byte of the delimiter is used.
func (c *Config) PrinterConf() (printer.Conf, error) {
	order, err := printer.ParseOrder(c.Output.Order)
	if err != nil {
		return printer.Conf{}, err
	}

	delimiter := printer.DefaultDelimiter
	if c.Output.Delimiter != "" {
		delimiter = c.Output.Delimiter[0]
	}

	return printer.Conf{Order: order, Width: c.Output.Width, Delimiter: delimiter}, nil
}

// SortKey returns the configured sort key and direction.
func (c *Config) SortKey() (countmap.SortKey, countmap.SortOrder, error) {
	key, ok := sortKeys[c.Sort.By]
	if !ok {
		return countmap.SortNone, countmap.Ascending, fmt.Errorf("%w: %q", ErrInvalidSortKey, c.Sort.By)
	}

	order := countmap.Ascending
	if c.Sort.Descending {
		order = countmap.Descending
	}

	return key, order, nil
}

// TableConf returns the count map configuration.
func (c *Config) TableConf() (countmap.TableConf, error) {
	hashAlgorithm, err := hash.ByName(c.Table.Hash)
	if err != nil {
		return countmap.TableConf{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}

	poolSize, pooledThreshold, memoryLimit, err := c.Arena.Sizes()
	if err != nil {
		return countmap.TableConf{}, err
	}

	return countmap.TableConf{
		InitialSize:     c.Table.InitialSize,
		MaxTableSize:    c.Table.MaxSize,
		HashAlgorithm:   hashAlgorithm,
		PoolSize:        poolSize,
		PooledThreshold: pooledThreshold,
		MemoryLimit:     memoryLimit,
	}, nil
}

// Sizes parses the arena sizes. Empty strings mean zero, which selects the defaults.
func (a *ArenaConfig) Sizes() (poolSize, pooledThreshold int, memoryLimit uint64, err error) {
	poolSize, err = parseIntSize("arena.pool_size", a.PoolSize)
	if err != nil {
		return
	}

	pooledThreshold, err = parseIntSize("arena.pooled_threshold", a.PooledThreshold)
	if err != nil {
		return
	}

	memoryLimit, err = parseSize("arena.memory_limit", a.MemoryLimit)

	return
}

func parseIntSize(key, value string) (int, error) {
	size, err := parseSize(key, value)
	if err != nil {
		return 0, err
	}

	if size > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s %q is too large", ErrInvalidArenaSize, key, value)
	}

	return int(size), nil
}

func parseSize(key, value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %w", ErrInvalidArenaSize, key, value, err)
	}

	return size, nil
}
