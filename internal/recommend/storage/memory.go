// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package storage

import (
	"context"
	"sync"

	"github.com/tomtom215/recipebox/internal/recommend"
)

// MemoryStore keeps both logs in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	state *recommend.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: recommend.NewSnapshot()}
}

// Load returns a copy of the stored state.
func (s *MemoryStore) Load(ctx context.Context) (*recommend.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.state), nil
}

// SaveActivities replaces the user's activity sequence.
func (s *MemoryStore) SaveActivities(ctx context.Context, userID string, records []recommend.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(records) == 0 {
		delete(s.state.Activities, userID)
		return nil
	}
	s.state.Activities[userID] = append([]recommend.ActivityRecord(nil), records...)
	return nil
}

// SaveFeedback replaces the user's feedback sequence.
func (s *MemoryStore) SaveFeedback(ctx context.Context, userID string, records []recommend.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(records) == 0 {
		delete(s.state.Feedback, userID)
		return nil
	}
	s.state.Feedback[userID] = append([]recommend.FeedbackRecord(nil), records...)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
