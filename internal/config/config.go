// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/recipebox/internal/logging"
	"github.com/tomtom215/recipebox/internal/recommend"
	"github.com/tomtom215/recipebox/internal/recommend/storage"
)

// Config holds all application configuration.
//
// Loading order (koanf v2):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables mapped by envTransformFunc
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	engine, err := recommend.NewEngine(cfg.EngineConfig(), activityLog, logger)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// StorageConfig selects the activity log backend.
type StorageConfig struct {
	Backend     string        `koanf:"backend" validate:"oneof=badger file memory"`
	Path        string        `koanf:"path"`                         // BadgerDB directory or JSON state file
	SyncWrites  bool          `koanf:"sync_writes"`                  // fsync every BadgerDB write
	Compression bool          `koanf:"compression"`                  // Snappy table compression
	GCInterval  time.Duration `koanf:"gc_interval" validate:"gte=0"` // BadgerDB value log GC, 0 disables
	Breaker     BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around the storage backend.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"min=1"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	Interval         time.Duration `koanf:"interval" validate:"gte=0"`
	MaxRequests      uint32        `koanf:"max_requests" validate:"min=1"`
}

// RecommendConfig holds the scoring parameters.
type RecommendConfig struct {
	Weights   WeightsConfig `koanf:"weights"`
	Windows   WindowsConfig `koanf:"windows"`
	Neighbors int           `koanf:"neighbors" validate:"min=1,max=100"`

	MaxPerCategory int `koanf:"max_per_category" validate:"min=1"`
	DefaultLimit   int `koanf:"default_limit" validate:"min=1"`
	MaxLimit       int `koanf:"max_limit" validate:"min=1,max=1000"`
}

// WeightsConfig holds the linear combination weights.
type WeightsConfig struct {
	Collaborative float64 `koanf:"collaborative" validate:"gte=0"`
	Content       float64 `koanf:"content" validate:"gte=0"`
	Trend         float64 `koanf:"trend" validate:"gte=0"`
	Diversity     float64 `koanf:"diversity" validate:"gte=0"`
}

// WindowsConfig holds the look-back windows.
type WindowsConfig struct {
	Trend        time.Duration `koanf:"trend" validate:"gt=0"`
	Recent       time.Duration `koanf:"recent" validate:"gt=0"`
	Exclusion    time.Duration `koanf:"exclusion" validate:"gte=0"`
	RecentCooked time.Duration `koanf:"recent_cooked" validate:"gt=0"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// EngineConfig maps the recommend section onto the engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Weights: recommend.ComponentWeights{
			Collaborative: r.Weights.Collaborative,
			Content:       r.Weights.Content,
			Trend:         r.Weights.Trend,
			Diversity:     r.Weights.Diversity,
		},
		Windows: recommend.WindowConfig{
			Trend:        r.Windows.Trend,
			Recent:       r.Windows.Recent,
			Exclusion:    r.Windows.Exclusion,
			RecentCooked: r.Windows.RecentCooked,
		},
		Neighbors: recommend.NeighborConfig{K: r.Neighbors},
		Diversity: recommend.DiversityConfig{MaxPerCategory: r.MaxPerCategory},
		Limits: recommend.LimitsConfig{
			DefaultLimit: r.DefaultLimit,
			MaxLimit:     r.MaxLimit,
		},
	}
}

// StorageOptions maps the storage section onto backend options.
func (c *Config) StorageOptions() storage.Options {
	s := c.Storage
	return storage.Options{
		Backend:     s.Backend,
		Path:        s.Path,
		SyncWrites:  s.SyncWrites,
		Compression: s.Compression,
		Breaker: storage.BreakerConfig{
			Enabled:          s.Breaker.Enabled,
			FailureThreshold: s.Breaker.FailureThreshold,
			Timeout:          s.Breaker.Timeout,
			Interval:         s.Breaker.Interval,
			MaxRequests:      s.Breaker.MaxRequests,
		},
	}
}

// LoggerConfig maps the logging section onto logger settings.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
