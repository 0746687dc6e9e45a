package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/httpserver"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func serve(c *cli.Context) error {
	started := time.Now()

	// A missing default .env is fine; an explicitly named one is not.
	if err := confloader.LoadDotEnv(c.String("env-file"), !c.IsSet("env-file")); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	configFile := c.String("config")
	overrides := flagOverrides(c)
	cfg, err := loadConfig(configFile, overrides)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting respkv-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", configFile)

	store := memory.New(memory.WithShardCount(cfg.Store.ShardCount))

	metrics := metric.NewRegistry()
	metrics.MustRegister(metric.NewCollector(store))

	redis := redisserver.New(redisConfig(cfg), store,
		redisserver.WithLogger(log.With("component", "redis")),
		redisserver.WithMetrics(metrics),
	)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	shutdownHandler := shutdown.NewHandler(shutdownTimeout, log)

	if err := redis.Start(ctx); err != nil {
		return fmt.Errorf("start redis server: %w", err)
	}
	shutdownHandler.OnShutdown("redis server", redis.Shutdown)

	if cfg.Server.HTTP.Addr != "" {
		admin := httpserver.New(cfg.Server.HTTP.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Logger:  log.With("component", "http"),
			Metrics: metrics.Handler(),
			Stats:   store.Stats,
			Started: started,
		}), log)
		if err := admin.Start(); err != nil {
			_ = redis.Shutdown(context.Background())
			return fmt.Errorf("start http server: %w", err)
		}
		shutdownHandler.OnShutdown("http server", admin.Shutdown)
	}

	if configFile != "" {
		watcher, err := watchConfig(configFile, overrides, log)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

// flagOverrides maps explicitly set flags to configuration keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	for flag, key := range map[string]string{
		"addr":       "server.redis.addr",
		"http-addr":  "server.http.addr",
		"log-level":  "log.level",
		"log-format": "log.format",
	} {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	return overrides
}

// loadConfig layers the file, environment and flag overrides over the
// defaults and verifies the result.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{confloader.WithOverrides(overrides)}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	r := cfg.Server.Redis
	return &redisserver.Config{
		Addr:         r.Addr,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,
		IdleTimeout:  r.IdleTimeout,
		RateLimit:    r.RateLimit,
		Limits:       r.Limits(),
	}
}

// watchConfig reloads the log level when the config file changes. Other
// settings need a restart.
func watchConfig(path string, overrides map[string]any, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(string) { reloadLogLevel(path, overrides, log) })
	w.StartAsync()
	return w, nil
}

// reloadLogLevel applies the log level from a fresh load of every config
// layer, so flags given at startup still win over the file.
func reloadLogLevel(path string, overrides map[string]any, log logger.Logger) {
	cfg, err := loadConfig(path, overrides)
	if err != nil {
		log.Warn("config reload failed", "error", err)
		return
	}
	if cfg.Log.Level != logger.GetLevel() {
		logger.SetLevel(cfg.Log.Level)
		log.Info("log level changed", "level", cfg.Log.Level)
	}
}
