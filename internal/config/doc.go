// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

/*
Package config loads RecipeBox configuration with koanf v2.

# Configuration Sources

Values are layered, later sources winning:
  - Built-in defaults (defaultConfig)
  - An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/recipebox/config.yaml or /etc/recipebox/config.yml
  - Environment variables listed in envMappings

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Storage:
  - STORAGE_BACKEND: badger (default), file or memory
  - STORAGE_PATH: BadgerDB directory or JSON state file (default /data/recipebox)
  - STORAGE_SYNC_WRITES, STORAGE_COMPRESSION
  - STORAGE_GC_INTERVAL: BadgerDB value log GC period (default 10m, 0 disables)
  - STORAGE_BREAKER_ENABLED, STORAGE_BREAKER_FAILURE_THRESHOLD,
    STORAGE_BREAKER_TIMEOUT, STORAGE_BREAKER_INTERVAL, STORAGE_BREAKER_MAX_REQUESTS

Recommendation engine:
  - RECOMMEND_WEIGHT_COLLABORATIVE, RECOMMEND_WEIGHT_CONTENT,
    RECOMMEND_WEIGHT_TREND, RECOMMEND_WEIGHT_DIVERSITY
  - RECOMMEND_TREND_WINDOW, RECOMMEND_RECENT_WINDOW,
    RECOMMEND_EXCLUSION_WINDOW, RECOMMEND_RECENT_COOKED_WINDOW
  - RECOMMEND_NEIGHBORS, RECOMMEND_MAX_PER_CATEGORY,
    RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT (json or console), LOG_CALLER

Security:
  - CORS_ORIGINS: comma-separated list (default *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Durations use Go syntax ("30s", "720h").

# Validation

Validate applies go-playground/validator struct tags through the shared
validation package, then cross-field checks: a path for persistent
backends, the engine's own constraints, a known log level and CORS
origins that do not mix "*" with explicit entries.
*/
package config
