package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gostonefire/countmap/internal/conf"
)

// configName is the config file name without extension.
const configName = ".tally"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for tally settings.
const envPrefix = "TALLY"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Defaults of settings that have no counterpart in internal/conf.
const (
	DefaultOutputOrder     = "count-text"
	DefaultOutputWidth     = 1
	DefaultOutputDelimiter = "\t"
	DefaultSortBy          = "none"
	DefaultPoolSize        = "64KiB"
	DefaultPooledThreshold = "64B"
	DefaultMemoryLimit     = "0"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("output.order", DefaultOutputOrder)
	viperCfg.SetDefault("output.width", DefaultOutputWidth)
	viperCfg.SetDefault("output.delimiter", DefaultOutputDelimiter)

	viperCfg.SetDefault("sort.by", DefaultSortBy)
	viperCfg.SetDefault("sort.descending", false)

	viperCfg.SetDefault("table.initial_size", conf.DefaultInitialSize)
	viperCfg.SetDefault("table.max_size", conf.DefaultMaxTableSize)
	viperCfg.SetDefault("table.hash", conf.DefaultHashAlgorithm)

	viperCfg.SetDefault("arena.pool_size", DefaultPoolSize)
	viperCfg.SetDefault("arena.pooled_threshold", DefaultPooledThreshold)
	viperCfg.SetDefault("arena.memory_limit", DefaultMemoryLimit)

	viperCfg.SetDefault("input.encoding", "")

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)
}
