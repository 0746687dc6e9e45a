package config

import "time"

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	// Addr is the server address used when --addr is not given.
	Addr string `yaml:"addr"`
	// Output is the default output format: plain, table, json or yaml.
	Output string `yaml:"output"`
	// Timeout bounds dialing and each request.
	Timeout time.Duration `yaml:"timeout"`
	// HistoryFile is where the REPL keeps its history. Empty uses the
	// default location.
	HistoryFile string `yaml:"history_file,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Addr:    "127.0.0.1:6379",
		Output:  "plain",
		Timeout: 5 * time.Second,
	}
}
