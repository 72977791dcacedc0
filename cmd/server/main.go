package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Ruilesser/HackTheChange2025/internal/cache"
	"github.com/Ruilesser/HackTheChange2025/internal/cache/redisstore"
	"github.com/Ruilesser/HackTheChange2025/internal/core/config"
	"github.com/Ruilesser/HackTheChange2025/internal/core/httpclient"
	"github.com/Ruilesser/HackTheChange2025/internal/core/observability"
	"github.com/Ruilesser/HackTheChange2025/internal/core/server"
	"github.com/Ruilesser/HackTheChange2025/internal/elevation"
	"github.com/Ruilesser/HackTheChange2025/internal/invalidation/kafkaconsumer"
	"github.com/Ruilesser/HackTheChange2025/internal/logger"
	"github.com/Ruilesser/HackTheChange2025/internal/modes"
	_ "github.com/Ruilesser/HackTheChange2025/internal/modes/cached"
	_ "github.com/Ruilesser/HackTheChange2025/internal/modes/passthrough"
	"github.com/Ruilesser/HackTheChange2025/internal/pipeline"
	"github.com/Ruilesser/HackTheChange2025/internal/upstream"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func run() int {
	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		SampleN:   envInt("LOG_SAMPLE_N", 0),
		Component: "server",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting feature server",
		"addr", cfg.Addr,
		"version", Version,
		"mode", cfg.Mode,
		"overpass", cfg.OverpassURL,
		"elevation", cfg.ElevationURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := httpclient.NewOutbound()

	up, err := upstream.New(appLog, httpClient, cfg.OverpassURL)
	if err != nil {
		appLog.Error("failed to initialize overpass client", "err", err)
		return 1
	}

	elevClient, err := elevation.NewClient(appLog, httpClient, cfg.ElevationURL)
	if err != nil {
		appLog.Error("failed to initialize elevation client", "err", err)
		return 1
	}

	// Redis is optional; without it the elevation cache is LRU-only and
	// the cached mode refuses to start.
	var rc *redisstore.Client
	var store cache.Interface
	if cfg.RedisAddr != "" {
		rc, err = redisstore.New(ctx, cfg.RedisAddr)
		if err != nil {
			appLog.Warn("redis unavailable, continuing without shared cache", "err", err)
		} else {
			defer func() { _ = rc.Close() }()
			store = cache.NewAdapter(rc, cfg.CacheOpTimeout)
		}
	}

	elev, err := elevation.NewCached(elevClient, appLog, store,
		cfg.ElevationLRUSize, cfg.ElevationCellRes, cfg.ElevationTTL)
	if err != nil {
		appLog.Error("failed to initialize elevation cache", "err", err)
		return 1
	}

	pipe := pipeline.New(appLog, elev, pipeline.WithWorkers(cfg.PipelineWorkers))

	handler, err := modes.New(cfg.Mode, cfg, appLog, modes.Deps{
		Upstream: up,
		Pipeline: pipe,
		Store:    store,
	})
	if err != nil {
		appLog.Error("mode setup failed", "err", err)
		return 1
	}

	if cfg.Invalidation.Enabled {
		if rc == nil {
			appLog.Warn("invalidation enabled but redis unavailable; consumer not started")
		} else {
			consumer := kafkaconsumer.New(kafkaconsumer.FromService(cfg.Invalidation), appLog, rc)
			go func() {
				if err := consumer.Start(ctx); err != nil {
					appLog.Error("invalidation consumer exited", "err", err)
				}
			}()
		}
	}

	if err := server.Run(ctx, cfg, appLog, handler); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}
