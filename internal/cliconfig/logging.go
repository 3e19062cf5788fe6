package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/addrcheck/pkg/log"
)

// BootstrapLogger is used before configuration has been loaded.
func BootstrapLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Logger builds the process logger from the configured level and format.
func (c Config) Logger() (zerolog.Logger, error) {
	return log.NewZerolog(log.Options{Level: c.LogLevel, Format: c.LogFormat})
}
