package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/pkg/cmap"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	r := &cfg.Redis
	if err := verifyAddr("server.redis.addr", r.Addr); err != nil {
		return err
	}
	if cfg.HTTP.Addr != "" {
		if err := verifyAddr("server.http.addr", cfg.HTTP.Addr); err != nil {
			return err
		}
		if cfg.HTTP.Addr == r.Addr {
			return fmt.Errorf("%w: server.http.addr and server.redis.addr are both %s", ErrInvalidConfig, r.Addr)
		}
	}

	if r.ReadTimeout < 0 || r.WriteTimeout < 0 || r.IdleTimeout < 0 {
		return fmt.Errorf("%w: server.redis timeouts must not be negative", ErrInvalidConfig)
	}
	if r.RateLimit < 0 {
		return fmt.Errorf("%w: server.redis.rate_limit must not be negative", ErrInvalidConfig)
	}
	if r.MaxBulkLen < 0 || r.MaxArrayLen < 0 {
		return fmt.Errorf("%w: server.redis protocol limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

func verifyAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, name)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}
	return nil
}

func verifyStore(cfg *StoreSection) error {
	if !cmap.ValidShardCount(cfg.ShardCount) {
		return fmt.Errorf("%w: store.shard_count must be a positive power of two, got %d", ErrInvalidConfig, cfg.ShardCount)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalidConfig, cfg.Level)
	}
	if !logger.ValidFormat(cfg.Format) {
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalidConfig, cfg.Format)
	}
	return nil
}
