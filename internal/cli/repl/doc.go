// Package repl provides the interactive mode of respkv-cli.
//
//   - repl.go: read-eval-print loop
//   - args.go: redis-cli style argument splitting with quotes and escapes
//   - completer.go: verb completion, listed by "help <prefix>"
//   - history.go: command history persisted across sessions
package repl
