package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type InvalidationCfg struct {
	Enabled bool
	Topic   string
	Brokers string
	GroupID string
}

type Config struct {
	Addr     string
	LogLevel string
	Mode     string

	OverpassURL  string
	ElevationURL string
	RedisAddr    string

	PipelineWorkers int

	CacheTTL       time.Duration
	CacheOpTimeout time.Duration

	ElevationCellRes int
	ElevationLRUSize int
	ElevationTTL     time.Duration

	Invalidation InvalidationCfg
}

func FromEnv() Config {
	return Config{
		Addr:     getenv("ADDR", ":8090"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		Mode:     getenv("MODE", "passthrough"),

		OverpassURL:  getenv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		ElevationURL: getenv("ELEVATION_URL", "https://api.open-elevation.com"),
		RedisAddr:    getenv("REDIS_ADDR", ""),

		PipelineWorkers: getint("PIPELINE_WORKERS", 4),

		CacheTTL:       getduration("CACHE_TTL", 5*time.Minute),
		CacheOpTimeout: getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),

		ElevationCellRes: getint("ELEVATION_CELL_RES", 12),
		ElevationLRUSize: getint("ELEVATION_LRU_SIZE", 4096),
		ElevationTTL:     getduration("ELEVATION_TTL", 24*time.Hour),

		Invalidation: InvalidationCfg{
			Enabled: getbool("INVALIDATION_ENABLED", false),
			Topic:   getenv("KAFKA_TOPIC", "map-data-refresh"),
			Brokers: getenv("KAFKA_BROKERS", "localhost:9092"),
			GroupID: getenv("KAFKA_GROUP_ID", "feature-cache-invalidator"),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
