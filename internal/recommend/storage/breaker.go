// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package storage

import (
	"context"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recipebox/internal/logging"
	"github.com/tomtom215/recipebox/internal/metrics"
	"github.com/tomtom215/recipebox/internal/recommend"
)

// GuardedStore decorates a Store with a circuit breaker. While the breaker is
// open every call fails immediately with gobreaker.ErrOpenState.
type GuardedStore struct {
	inner   recommend.Store
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewGuardedStore wraps inner. name labels the breaker in logs and metrics.
func NewGuardedStore(inner recommend.Store, name string, cfg BreakerConfig) *GuardedStore {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        "storage-" + name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.StorageBreakerState.WithLabelValues(name).Set(float64(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("storage circuit breaker state changed")
		},
	}
	metrics.StorageBreakerState.WithLabelValues(settings.Name).Set(float64(gobreaker.StateClosed))

	return &GuardedStore{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// Load loads through the breaker.
func (g *GuardedStore) Load(ctx context.Context) (*recommend.Snapshot, error) {
	var snap *recommend.Snapshot
	_, err := g.breaker.Execute(func() (struct{}, error) {
		var err error
		snap, err = g.inner.Load(ctx)
		return struct{}{}, err
	})
	return snap, err
}

// SaveActivities saves through the breaker.
func (g *GuardedStore) SaveActivities(ctx context.Context, userID string, records []recommend.ActivityRecord) error {
	_, err := g.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, g.inner.SaveActivities(ctx, userID, records)
	})
	return err
}

// SaveFeedback saves through the breaker.
func (g *GuardedStore) SaveFeedback(ctx context.Context, userID string, records []recommend.FeedbackRecord) error {
	_, err := g.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, g.inner.SaveFeedback(ctx, userID, records)
	})
	return err
}

// State returns the breaker state.
func (g *GuardedStore) State() gobreaker.State {
	return g.breaker.State()
}

// Close closes the wrapped store. It bypasses the breaker.
func (g *GuardedStore) Close() error {
	return g.inner.Close()
}

// Unwrap returns the wrapped store.
func (g *GuardedStore) Unwrap() recommend.Store {
	return g.inner
}
