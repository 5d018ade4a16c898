// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"

	"github.com/tomtom215/recipebox/internal/logging"
	"github.com/tomtom215/recipebox/internal/metrics"
	"github.com/tomtom215/recipebox/internal/recommend"
)

// Key prefixes for BadgerDB storage
const (
	activityKeyPrefix = "activity:"
	feedbackKeyPrefix = "feedback:"
)

// BadgerStore implements recommend.Store using BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) the BadgerDB database at opts.Path.
func OpenBadgerStore(opts Options) (*BadgerStore, error) {
	if opts.Path == "" && !opts.InMemory {
		return nil, fmt.Errorf("badger store requires a path")
	}

	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.SyncWrites = opts.SyncWrites
	if opts.Compression {
		bopts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Bool("sync_writes", opts.SyncWrites).
		Msg("activity store opened")

	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an already opened database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Load reads every user's activity and feedback sequence.
func (s *BadgerStore) Load(ctx context.Context) (*recommend.Snapshot, error) {
	defer observe(BackendBadger, "load", time.Now())

	snap := recommend.NewSnapshot()
	err := s.db.View(func(txn *badger.Txn) error {
		if err := scanPrefix(ctx, txn, activityKeyPrefix, func(userID string, val []byte) error {
			var records []recommend.ActivityRecord
			if err := json.Unmarshal(val, &records); err != nil {
				return fmt.Errorf("decode activities for %q: %w", userID, err)
			}
			snap.Activities[userID] = records
			return nil
		}); err != nil {
			return err
		}

		return scanPrefix(ctx, txn, feedbackKeyPrefix, func(userID string, val []byte) error {
			var records []recommend.FeedbackRecord
			if err := json.Unmarshal(val, &records); err != nil {
				return fmt.Errorf("decode feedback for %q: %w", userID, err)
			}
			snap.Feedback[userID] = records
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load activity log: %w", err)
	}

	return snap, nil
}

// scanPrefix calls fn for every key under prefix with the key's user ID suffix.
func scanPrefix(ctx context.Context, txn *badger.Txn, prefix string, fn func(userID string, val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := it.Item()
		userID := strings.TrimPrefix(string(item.Key()), prefix)
		if err := item.Value(func(val []byte) error {
			return fn(userID, val)
		}); err != nil {
			return err
		}
	}
	return nil
}

// SaveActivities replaces the user's activity sequence.
func (s *BadgerStore) SaveActivities(ctx context.Context, userID string, records []recommend.ActivityRecord) error {
	defer observe(BackendBadger, "save_activities", time.Now())
	return s.put(activityKeyPrefix+userID, len(records), records)
}

// SaveFeedback replaces the user's feedback sequence.
func (s *BadgerStore) SaveFeedback(ctx context.Context, userID string, records []recommend.FeedbackRecord) error {
	defer observe(BackendBadger, "save_feedback", time.Now())
	return s.put(feedbackKeyPrefix+userID, len(records), records)
}

// put stores v under key, or deletes the key when the sequence is empty.
func (s *BadgerStore) put(key string, n int, v any) error {
	if n == 0 {
		return s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
			return nil
		})
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), data); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}

// observe records the latency of one backend operation.
func observe(backend, op string, start time.Time) {
	metrics.StorageOperationDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}
