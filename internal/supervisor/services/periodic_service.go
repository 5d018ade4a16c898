// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/recipebox/internal/logging"
)

// DefaultMaxConsecutiveFailures is how many task failures in a row a
// PeriodicService tolerates before returning an error to its supervisor.
const DefaultMaxConsecutiveFailures = 3

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// PeriodicService runs a task on a fixed interval under suture.
//
// Failures are logged and retried on the next tick. After
// MaxConsecutiveFailures in a row Serve returns, handing the problem to the
// supervisor's backoff.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     Task

	// MaxConsecutiveFailures defaults to DefaultMaxConsecutiveFailures.
	MaxConsecutiveFailures int

	// RunOnStart runs the task once before the first tick.
	RunOnStart bool
}

// NewPeriodicService creates a service running task every interval.
func NewPeriodicService(name string, interval time.Duration, task Task) (*PeriodicService, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%s: interval must be positive, got %v", name, interval)
	}
	if task == nil {
		return nil, fmt.Errorf("%s: task is nil", name)
	}
	return &PeriodicService{
		name:                   name,
		interval:               interval,
		task:                   task,
		MaxConsecutiveFailures: DefaultMaxConsecutiveFailures,
	}, nil
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	logger := logging.Component(p.name)
	maxFailures := p.MaxConsecutiveFailures
	if maxFailures <= 0 {
		maxFailures = DefaultMaxConsecutiveFailures
	}

	failures := 0
	run := func() error {
		start := time.Now()
		err := p.task(ctx)
		if err == nil {
			failures = 0
			logger.Debug().Dur("duration", time.Since(start)).Msg("periodic task complete")
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		failures++
		logger.Warn().Err(err).Int("consecutive_failures", failures).Msg("periodic task failed")
		if failures >= maxFailures {
			return fmt.Errorf("%s: %d consecutive failures: %w", p.name, failures, err)
		}
		return nil
	}

	if p.RunOnStart {
		if err := run(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := run(); err != nil {
				return err
			}
		}
	}
}

// String names the service in suture events.
func (p *PeriodicService) String() string {
	return p.name
}
