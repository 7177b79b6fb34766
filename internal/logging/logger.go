// Package logging provides the configured slog logger for symhash.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the default slog logger.
type Options struct {
	// Verbose forces debug level logging when true, overriding Level.
	Verbose bool
	// Level is one of debug, info, warn, error; empty means info.
	Level string
	// Writer directs log output; defaults to os.Stderr when nil.
	Writer io.Writer
}

// New constructs a slog.Logger with symhash defaults. An unknown Level is
// an error so a typo in config does not silently drop debug output.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}

// Discard returns a logger that drops everything. Used by tests and the
// conformance harness.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
