// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/recipebox/internal/recommend"
)

// DefaultConfigPaths lists the config file locations in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/recipebox/config.yaml",
	"/etc/recipebox/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. The recommend section mirrors
// recommend.DefaultConfig.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend:     "badger",
			Path:        "/data/recipebox",
			SyncWrites:  true,
			Compression: true,
			GCInterval:  10 * time.Minute,
			Breaker: BreakerConfig{
				Enabled:          true,
				FailureThreshold: 5,
				Timeout:          30 * time.Second,
				Interval:         time.Minute,
				MaxRequests:      1,
			},
		},
		Recommend: RecommendConfig{
			Weights: WeightsConfig{
				Collaborative: engine.Weights.Collaborative,
				Content:       engine.Weights.Content,
				Trend:         engine.Weights.Trend,
				Diversity:     engine.Weights.Diversity,
			},
			Windows: WindowsConfig{
				Trend:        engine.Windows.Trend,
				Recent:       engine.Windows.Recent,
				Exclusion:    engine.Windows.Exclusion,
				RecentCooked: engine.Windows.RecentCooked,
			},
			Neighbors:      engine.Neighbors.K,
			MaxPerCategory: engine.Diversity.MaxPerCategory,
			DefaultLimit:   engine.Limits.DefaultLimit,
			MaxLimit:       engine.Limits.MaxLimit,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > file > defaults,
// then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated string values of slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Storage
	"storage_backend":                   "storage.backend",
	"storage_path":                      "storage.path",
	"storage_sync_writes":               "storage.sync_writes",
	"storage_compression":               "storage.compression",
	"storage_gc_interval":               "storage.gc_interval",
	"storage_breaker_enabled":           "storage.breaker.enabled",
	"storage_breaker_failure_threshold": "storage.breaker.failure_threshold",
	"storage_breaker_timeout":           "storage.breaker.timeout",
	"storage_breaker_interval":          "storage.breaker.interval",
	"storage_breaker_max_requests":      "storage.breaker.max_requests",

	// Recommendation engine
	"recommend_weight_collaborative": "recommend.weights.collaborative",
	"recommend_weight_content":       "recommend.weights.content",
	"recommend_weight_trend":         "recommend.weights.trend",
	"recommend_weight_diversity":     "recommend.weights.diversity",
	"recommend_trend_window":         "recommend.windows.trend",
	"recommend_recent_window":        "recommend.windows.recent",
	"recommend_exclusion_window":     "recommend.windows.exclusion",
	"recommend_recent_cooked_window": "recommend.windows.recent_cooked",
	"recommend_neighbors":            "recommend.neighbors",
	"recommend_max_per_category":     "recommend.max_per_category",
	"recommend_default_limit":        "recommend.default_limit",
	"recommend_max_limit":            "recommend.max_limit",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables are skipped.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - STORAGE_BACKEND -> storage.backend
//   - RECOMMEND_WEIGHT_CONTENT -> recommend.weights.content
//   - CORS_ORIGINS -> security.cors_origins
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
