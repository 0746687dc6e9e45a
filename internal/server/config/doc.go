// Package config defines the respkv-server configuration.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default values
//   - verify.go: validation of addresses, timeouts, limits and log settings
//
// Configuration is loaded via internal/infra/confloader from a YAML
// file, an optional .env file and RESPKV_ environment variables.
package config
