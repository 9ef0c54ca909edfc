package adapter

import (
	"os"
	"strconv"
)

// Config holds the adapter's runtime tuning, sourced from environment
// variables per spec.md §6, optionally overlaid by internal/config's
// YAML file (env vars always win when both are set).
type Config struct {
	Host        string
	Port        int
	Disabled    bool
	ObsHz       int
	MaxPending  int
	LogPath     string
	LogEveryN   int
	LogMaxLines int
}

// DefaultConfig returns the specification's documented defaults.
func DefaultConfig() Config {
	return Config{
		Host:        "127.0.0.1",
		Port:        7777,
		Disabled:    false,
		ObsHz:       20,
		MaxPending:  10,
		LogEveryN:   1,
		LogMaxLines: 0,
	}
}

// LoadFromEnv reads the TETRIS_AI_* environment variables over top of a
// base configuration (typically DefaultConfig() or a YAML overlay
// already applied by internal/config.LoadAdapterConfig).
func LoadFromEnv(base Config) Config {
	cfg := base
	if v := os.Getenv("TETRIS_AI_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("TETRIS_AI_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("TETRIS_AI_DISABLED"); v != "" {
		cfg.Disabled = v == "1" || v == "true"
	}
	if v := os.Getenv("TETRIS_AI_OBS_HZ"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 60 {
			cfg.ObsHz = n
		}
	}
	if v := os.Getenv("TETRIS_AI_MAX_PENDING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxPending = n
		}
	}
	if v := os.Getenv("TETRIS_AI_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("TETRIS_AI_LOG_EVERY_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LogEveryN = n
		}
	}
	if v := os.Getenv("TETRIS_AI_LOG_MAX_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.LogMaxLines = n
		}
	}
	return cfg
}

// ObsIntervalMS is the minimum spacing between throttled observation
// sends to a single streaming observer.
func (c Config) ObsIntervalMS() int64 {
	if c.ObsHz <= 0 {
		return 1000 / 20
	}
	return int64(1000 / c.ObsHz)
}
