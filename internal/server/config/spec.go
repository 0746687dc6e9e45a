package config

import "time"

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis"`
	HTTP  HTTPConfig  `koanf:"http"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr string `koanf:"addr"`
	// ReadTimeout bounds reading one request once its first byte arrived.
	ReadTimeout time.Duration `koanf:"read_timeout"`
	// WriteTimeout bounds writing one reply.
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// IdleTimeout bounds the wait for the next request.
	IdleTimeout time.Duration `koanf:"idle_timeout"`
	// RateLimit is commands per second per client IP; 0 disables it.
	RateLimit int `koanf:"rate_limit"`
	// MaxBulkLen is the largest accepted bulk payload in bytes.
	MaxBulkLen int `koanf:"max_bulk_len"`
	// MaxArrayLen is the largest accepted aggregate element count.
	MaxArrayLen int `koanf:"max_array_len"`
}

// HTTPConfig configures the admin HTTP server serving /healthz and
// /metrics. An empty address disables it.
type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

// StoreSection configures the in-memory store.
type StoreSection struct {
	// ShardCount is the number of lock shards per namespace; a power of two.
	ShardCount int `koanf:"shard_count"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
