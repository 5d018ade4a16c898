// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines how the four component scores are combined.
	Weights ComponentWeights `json:"weights"`

	// Windows defines the look-back periods used by the scoring components.
	Windows WindowConfig `json:"windows"`

	// Neighbors contains parameters for the similar-user search.
	Neighbors NeighborConfig `json:"neighbors"`

	// Diversity contains parameters for the category cap.
	Diversity DiversityConfig `json:"diversity"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`
}

// ComponentWeights defines the linear combination
//
//	total = Collaborative*collab + Content*content + Trend*trend - Diversity*penalty
//
// Unlike ensemble weights these are not normalized.
type ComponentWeights struct {
	// Collaborative is the weight for the similar-user score.
	// Default: 0.3.
	Collaborative float64 `json:"collaborative"`

	// Content is the weight for the feature-similarity score.
	// Default: 0.5.
	Content float64 `json:"content"`

	// Trend is the weight for the cross-household popularity score.
	// Default: 0.1.
	Trend float64 `json:"trend"`

	// Diversity is the weight subtracted per unit of diversity penalty.
	// Default: 0.1.
	Diversity float64 `json:"diversity"`
}

// WindowConfig contains look-back windows.
type WindowConfig struct {
	// Trend is the window counted by the trend score.
	// Default: 30 days.
	Trend time.Duration `json:"trend"`

	// Recent is the window used by the diversity penalty.
	// Default: 7 days.
	Recent time.Duration `json:"recent"`

	// Exclusion is how long a not-interested or dismissed recipe stays hidden.
	// Default: 30 days.
	Exclusion time.Duration `json:"exclusion"`

	// RecentCooked is the window for the preference profile's cooked count.
	// Default: 30 days.
	RecentCooked time.Duration `json:"recent_cooked"`
}

// NeighborConfig contains parameters for the similar-user search.
type NeighborConfig struct {
	// K is the number of most similar users consulted.
	// Default: 5.
	K int `json:"k"`
}

// DiversityConfig contains parameters for the category cap.
type DiversityConfig struct {
	// MaxPerCategory caps how many picks share one category before backfill.
	// Default: 3.
	MaxPerCategory int `json:"max_per_category"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is used when a request asks for zero or fewer results.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit is the largest number of results returned by one call.
	// Default: 100.
	MaxLimit int `json:"max_limit"`
}

const day = 24 * time.Hour

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: ComponentWeights{
			Collaborative: 0.3,
			Content:       0.5,
			Trend:         0.1,
			Diversity:     0.1,
		},
		Windows: WindowConfig{
			Trend:        30 * day,
			Recent:       7 * day,
			Exclusion:    30 * day,
			RecentCooked: 30 * day,
		},
		Neighbors: NeighborConfig{
			K: 5,
		},
		Diversity: DiversityConfig{
			MaxPerCategory: 3,
		},
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	w := c.Weights
	if w.Collaborative < 0 || w.Content < 0 || w.Trend < 0 || w.Diversity < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", w)
	}
	if w.Collaborative+w.Content+w.Trend == 0 {
		return fmt.Errorf("at least one positive scoring weight is required")
	}

	if c.Windows.Trend <= 0 {
		return fmt.Errorf("windows.trend must be positive, got %v", c.Windows.Trend)
	}
	if c.Windows.Recent <= 0 {
		return fmt.Errorf("windows.recent must be positive, got %v", c.Windows.Recent)
	}
	if c.Windows.Exclusion < 0 {
		return fmt.Errorf("windows.exclusion must be non-negative, got %v", c.Windows.Exclusion)
	}
	if c.Windows.RecentCooked <= 0 {
		return fmt.Errorf("windows.recent_cooked must be positive, got %v", c.Windows.RecentCooked)
	}

	if c.Neighbors.K < 1 {
		return fmt.Errorf("neighbors.k must be positive, got %d", c.Neighbors.K)
	}
	if c.Diversity.MaxPerCategory < 1 {
		return fmt.Errorf("diversity.max_per_category must be positive, got %d", c.Diversity.MaxPerCategory)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs are value types.
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings ("720h0m0s") rather than nanoseconds.
func (c *Config) MarshalJSON() ([]byte, error) {
	type windows struct {
		Trend        string `json:"trend"`
		Recent       string `json:"recent"`
		Exclusion    string `json:"exclusion"`
		RecentCooked string `json:"recent_cooked"`
	}
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Windows windows `json:"windows"`
	}{
		Alias: (*Alias)(c),
		Windows: windows{
			Trend:        c.Windows.Trend.String(),
			Recent:       c.Windows.Recent.String(),
			Exclusion:    c.Windows.Exclusion.String(),
			RecentCooked: c.Windows.RecentCooked.String(),
		},
	})
}
