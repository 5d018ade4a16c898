// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// errSimulated is returned by a MockService configured to fail.
var errSimulated = errors.New("simulated failure")

// MockService is a controllable suture.Service for tests.
type MockService struct {
	name     string
	starts   atomic.Int32
	stops    atomic.Int32
	failures atomic.Int32
	started  chan struct{}

	mu       sync.Mutex
	failFor  int32
	fatalErr error
}

// NewMockService creates a service that runs until its context is canceled.
func NewMockService(name string) *MockService {
	return &MockService{name: name, started: make(chan struct{}, 1)}
}

// Serve implements suture.Service.
func (m *MockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	defer m.stops.Add(1)

	select {
	case m.started <- struct{}{}:
	default:
	}

	m.mu.Lock()
	failFor, fatalErr := m.failFor, m.fatalErr
	m.mu.Unlock()

	if failFor > 0 && m.failures.Add(1) <= failFor {
		return errSimulated
	}
	if fatalErr != nil {
		return fatalErr
	}

	<-ctx.Done()
	return ctx.Err()
}

// Started is signaled, without blocking, each time Serve begins.
func (m *MockService) Started() <-chan struct{} {
	return m.started
}

// SetError makes every Serve call return err immediately.
func (m *MockService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fatalErr = err
}

// SetFailCount makes the next n Serve calls fail.
func (m *MockService) SetFailCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFor = int32(n) //nolint:gosec // test helper, n is small
}

// StartCount returns how many times Serve was called.
func (m *MockService) StartCount() int32 {
	return m.starts.Load()
}

// StopCount returns how many times Serve returned.
func (m *MockService) StopCount() int32 {
	return m.stops.Load()
}

// String names the service in suture events.
func (m *MockService) String() string {
	return m.name
}
