// internal/logging/logging.go
//
// Global zerolog setup shared by the server and the CLI.

package logging

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidLogOutput = errors.New("logging: unknown output format")
	ErrInvalidLogLevel  = errors.New("logging: unknown level")
)

// Config selects the log level and output format (console, stdout, stderr, json).
type Config struct {
	LogOutput string
	LogLevel  string
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) (zerolog.Logger, error) {
	var output io.Writer
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), ErrInvalidLogLevel
	}

	switch cfg.LogOutput {
	case "console", "":
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	case "stdout":
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339, NoColor: true}
	case "stderr":
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339, NoColor: true}
	case "json":
		output = os.Stdout
	default:
		return zerolog.Nop(), ErrInvalidLogOutput
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	return log.Logger, nil
}
