// Package logger builds the application's structured zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn, error.
	// Anything unrecognised falls back to info.
	Level string
	// Pretty switches from JSON to console output. Development only.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// New builds a logger from opts. Every event carries a timestamp and the
// service name so log lines stay attributable once aggregated.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level(opts.Level)).
		With().
		Timestamp().
		Str("service", "taskhive").
		Logger()
}

func level(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
