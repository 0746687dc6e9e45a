package config

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Redis.Addr != DefaultRedisAddr {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Server.Redis.Addr, DefaultRedisAddr)
	}
	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Server.Redis.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("IdleTimeout = %v, want %v", cfg.Server.Redis.IdleTimeout, DefaultIdleTimeout)
	}
	if cfg.Store.ShardCount != 16 {
		t.Errorf("ShardCount = %d, want 16", cfg.Store.ShardCount)
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestDefault_Independent(t *testing.T) {
	a, b := Default(), Default()
	a.Server.Redis.Addr = "0.0.0.0:1"
	if diff := cmp.Diff(Default(), b); diff != "" {
		t.Errorf("Default() shares state (-want +got):\n%s", diff)
	}
}

func TestRedisConfig_Limits(t *testing.T) {
	r := RedisConfig{MaxBulkLen: 10, MaxArrayLen: 5}
	l := r.Limits()
	if l.MaxBulkLen != 10 || l.MaxElements != 5 {
		t.Errorf("Limits() = %+v", l)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*ServerConfig) {}},
		{name: "http disabled", mutate: func(c *ServerConfig) { c.Server.HTTP.Addr = "" }},
		{name: "ipv6 address", mutate: func(c *ServerConfig) { c.Server.Redis.Addr = "[::1]:6379" }},
		{name: "missing redis addr", mutate: func(c *ServerConfig) { c.Server.Redis.Addr = "" }, wantErr: true},
		{name: "redis addr without port", mutate: func(c *ServerConfig) { c.Server.Redis.Addr = "localhost" }, wantErr: true},
		{name: "bad http addr", mutate: func(c *ServerConfig) { c.Server.HTTP.Addr = "nope" }, wantErr: true},
		{
			name:    "same addr twice",
			mutate:  func(c *ServerConfig) { c.Server.HTTP.Addr = c.Server.Redis.Addr },
			wantErr: true,
		},
		{name: "negative timeout", mutate: func(c *ServerConfig) { c.Server.Redis.ReadTimeout = -time.Second }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *ServerConfig) { c.Server.Redis.RateLimit = -1 }, wantErr: true},
		{name: "negative bulk limit", mutate: func(c *ServerConfig) { c.Server.Redis.MaxBulkLen = -1 }, wantErr: true},
		{name: "shard count not power of two", mutate: func(c *ServerConfig) { c.Store.ShardCount = 12 }, wantErr: true},
		{name: "zero shard count", mutate: func(c *ServerConfig) { c.Store.ShardCount = 0 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *ServerConfig) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *ServerConfig) { c.Log.Format = "xml" }, wantErr: true},
		{name: "console log format", mutate: func(c *ServerConfig) { c.Log.Format = "console" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Verify() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}
