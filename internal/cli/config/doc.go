// Package config provides respkv-cli configuration.
//
// The optional file ~/.respkv/cli.yaml holds the default server address,
// output format, request timeout and REPL history location. Command-line
// flags and RESPKV_CLI_* environment variables override it.
package config
