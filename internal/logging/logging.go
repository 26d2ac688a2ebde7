// Package logging builds the structured logger of the tally commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Formats accepted in Conf.Format
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Conf - Logger configuration
//   - Level is one of debug, info, warn or error, empty means info
//   - Format is text or json, empty means text
//   - Writer is where log records go, nil means standard error
type Conf struct {
	Level  string
	Format string
	Writer io.Writer
}

// New - Returns a logger built from conf
func New(conf Conf) (logger *slog.Logger, err error) {
	level, err := ParseLevel(conf.Level)
	if err != nil {
		return
	}

	writer := conf.Writer
	if writer == nil {
		writer = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(conf.Format) {
	case "", FormatText:
		handler = slog.NewTextHandler(writer, handlerOpts)
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		err = fmt.Errorf("unknown log format %q, valid formats are %s and %s", conf.Format, FormatText, FormatJSON)
		return
	}

	logger = slog.New(handler)

	return
}

// ParseLevel - Resolves a level name, empty means info
func ParseLevel(name string) (level slog.Level, err error) {
	if name == "" {
		level = slog.LevelInfo
		return
	}

	err = level.UnmarshalText([]byte(name))
	if err != nil {
		err = fmt.Errorf("unknown log level %q: %w", name, err)
	}

	return
}
