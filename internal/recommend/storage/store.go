// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/recipebox/internal/recommend"
)

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	// Backend is one of BackendBadger, BackendFile or BackendMemory.
	Backend string

	// Path is the BadgerDB directory or the JSON state file.
	Path string

	// SyncWrites makes BadgerDB fsync every write.
	SyncWrites bool

	// Compression enables Snappy compression for BadgerDB tables.
	Compression bool

	// InMemory runs BadgerDB without touching disk. Tests only.
	InMemory bool

	// Breaker configures the circuit breaker around the backend.
	Breaker BreakerConfig
}

// BreakerConfig configures GuardedStore.
type BreakerConfig struct {
	// Enabled wraps the backend in a circuit breaker.
	Enabled bool

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32

	// Timeout is how long the breaker stays open before a trial request.
	Timeout time.Duration

	// Interval is the cyclic period for clearing counts while closed. Zero never clears.
	Interval time.Duration

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
}

// DefaultBreakerConfig returns the breaker defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		Interval:         time.Minute,
		MaxRequests:      1,
	}
}

// Open creates the configured backend, wrapped in a circuit breaker when enabled.
func Open(ctx context.Context, opts Options) (recommend.Store, error) {
	var (
		store recommend.Store
		err   error
	)

	switch opts.Backend {
	case BackendBadger, "":
		store, err = OpenBadgerStore(opts)
	case BackendFile:
		store, err = NewFileStore(opts.Path)
	case BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	if opts.Breaker.Enabled {
		store = NewGuardedStore(store, backendName(opts.Backend), opts.Breaker)
	}
	return store, nil
}

func backendName(backend string) string {
	if backend == "" {
		return BackendBadger
	}
	return backend
}
