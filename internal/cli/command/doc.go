// Package command defines the respkv-cli commands using urfave/cli/v2.
//
//   - root.go: App, global flags and settings resolution
//   - exec.go: one-shot command execution
//   - repl.go: interactive mode, the default action
//   - config.go: local CLI configuration
//   - status.go: admin endpoint health check
package command
