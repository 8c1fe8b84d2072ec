// Package logging provides a minimal logging interface and adapters for easycore.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the registry, undo stack and property interceptors use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - CoreLogger, a contextual slog logger configured via LoggerConfig
//   - ZapAdapter for applications built on go.uber.org/zap
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
//	reg := core.NewRegistry(func(o *core.Options) { o.Logger = logger })
package logging
