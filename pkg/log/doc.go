// Package log provides the logging abstraction used by addrcheck components.
//
// Components depend on the [Logger] interface rather than a concrete logging
// library. A zerolog-backed implementation and a no-op implementation for
// tests are provided:
//
//	logger, err := log.NewZerolog(log.Options{Level: "debug", Format: "json"})
//
//	logger := log.NewNoopLogger()
//
// Wrap an already configured zerolog.Logger with [NewZerologAdapterWithLogger].
package log
