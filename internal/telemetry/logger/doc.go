// Package logger provides structured logging for respkv.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: handler selection (json, text, console) and level control
//   - context.go: logger and connection ID propagation through context
//   - redact.go: masking of sensitive attribute values
//
// The console format uses tint for colourised, human-oriented output.
// The level is process-wide and can be changed at runtime with SetLevel,
// which the config watcher does on reload.
package logger
