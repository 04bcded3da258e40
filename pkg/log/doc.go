// Package log provides the logging abstraction used by touchpipe components.
//
// It defines a small Logger interface that can be implemented by any logging
// library. A zerolog-backed implementation is provided for production use and
// a no-op implementation for tests:
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr))
//	quiet := log.NewNoopLogger()
//
// Implement the Logger interface to integrate with other logging
// infrastructure.
package log
