package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup configures the global zerolog settings and returns the root logger.
// Unknown level strings fall back to info.
func Setup(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
