// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recipebox/internal/logging"
	"github.com/tomtom215/recipebox/internal/recommend"
)

// FileStore keeps both logs in one JSON file. Every save rewrites the file
// through a temporary sibling and an atomic rename.
type FileStore struct {
	path string

	mu    sync.Mutex
	state *recommend.Snapshot
}

// NewFileStore creates a file-backed store. The file is created on first save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	logging.Info().Str("path", path).Msg("activity store opened")
	return &FileStore{path: path}, nil
}

// Load reads the state file. A missing file yields an empty snapshot.
func (s *FileStore) Load(ctx context.Context) (*recommend.Snapshot, error) {
	defer observe(BackendFile, "load", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := recommend.NewSnapshot()
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read state file: %w", err)
	case len(data) > 0:
		if err := json.Unmarshal(data, snap); err != nil {
			return nil, fmt.Errorf("decode state file: %w", err)
		}
	}
	if snap.Activities == nil {
		snap.Activities = make(map[string][]recommend.ActivityRecord)
	}
	if snap.Feedback == nil {
		snap.Feedback = make(map[string][]recommend.FeedbackRecord)
	}

	s.state = cloneSnapshot(snap)
	return snap, nil
}

// SaveActivities replaces the user's activity sequence and rewrites the file.
func (s *FileStore) SaveActivities(ctx context.Context, userID string, records []recommend.ActivityRecord) error {
	defer observe(BackendFile, "save_activities", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSnapshot(s.current())
	if len(records) == 0 {
		delete(next.Activities, userID)
	} else {
		next.Activities[userID] = append([]recommend.ActivityRecord(nil), records...)
	}
	return s.commit(next)
}

// SaveFeedback replaces the user's feedback sequence and rewrites the file.
func (s *FileStore) SaveFeedback(ctx context.Context, userID string, records []recommend.FeedbackRecord) error {
	defer observe(BackendFile, "save_feedback", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSnapshot(s.current())
	if len(records) == 0 {
		delete(next.Feedback, userID)
	} else {
		next.Feedback[userID] = append([]recommend.FeedbackRecord(nil), records...)
	}
	return s.commit(next)
}

// Close is a no-op; every save is already on disk.
func (s *FileStore) Close() error {
	return nil
}

// current returns the last committed state. Must be called with mu held.
func (s *FileStore) current() *recommend.Snapshot {
	if s.state == nil {
		s.state = recommend.NewSnapshot()
	}
	return s.state
}

// commit writes next to disk and, on success, makes it the current state.
// Must be called with mu held.
func (s *FileStore) commit(next *recommend.Snapshot) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}

	s.state = next
	return nil
}

// cloneSnapshot copies the maps. Record slices are never mutated in place,
// so they are shared.
func cloneSnapshot(snap *recommend.Snapshot) *recommend.Snapshot {
	out := &recommend.Snapshot{
		Activities: make(map[string][]recommend.ActivityRecord, len(snap.Activities)),
		Feedback:   make(map[string][]recommend.FeedbackRecord, len(snap.Feedback)),
	}
	for k, v := range snap.Activities {
		out.Activities[k] = v
	}
	for k, v := range snap.Feedback {
		out.Feedback[k] = v
	}
	return out
}
