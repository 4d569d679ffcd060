package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes the process logger. format can be "text" (human-friendly
// console output for interactive runs) or "json" (structured).
func Setup(format string) zerolog.Logger {
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
