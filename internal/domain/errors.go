package domain

import "errors"

// Domain errors. Check with errors.Is.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("addrcheck: invalid configuration")

	// ErrUnknownFormat is returned when a report format is not recognized.
	ErrUnknownFormat = errors.New("addrcheck: unknown report format")

	// ErrNoInput is returned when a batch or watch command has nothing to read.
	ErrNoInput = errors.New("addrcheck: no input")
)
