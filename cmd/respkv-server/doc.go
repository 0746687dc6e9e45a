// Package main provides the entry point for respkv-server.
//
// respkv-server serves an in-memory key-value store over RESP3 and exposes
// /healthz and /metrics on a separate admin HTTP address.
//
// Configuration is read, in increasing precedence, from built-in
// defaults, an optional YAML file (--config), RESPKV_* environment
// variables (optionally from --env-file) and command-line flags.
package main
