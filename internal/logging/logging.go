// Package logging builds the zerolog loggers used by the driver, the
// stores and the CLI.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps debug, info, warn, error and trace (any case) to a
// zerolog level. Anything else is info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "TRACE":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a console logger writing to w. Each file in files receives
// the same records without colour.
func New(level string, w io.Writer, files ...io.Writer) zerolog.Logger {
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}}
	for _, f := range files {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Nop discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
