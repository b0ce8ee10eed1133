// Package logging builds the zerolog loggers used by the podwiki commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New constructs a zerolog logger. The console format is meant for people
// watching a sync; json is for log shippers.
func New(opts Options) (zerolog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("app", "podwiki").Logger(), nil
}

func parseLevel(raw string) (zerolog.Level, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
