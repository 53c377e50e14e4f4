// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to out. Format "console" gives the
// human-readable development output; anything else is structured JSON.
// Unknown level strings fall back to info.
func New(out io.Writer, level, format string) zerolog.Logger {
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
