// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/recipebox/internal/logging"
	"github.com/tomtom215/recipebox/internal/recommend"
)

// gcDiscardRatio is the fraction of a value log file that must be stale
// before BadgerDB rewrites it.
const gcDiscardRatio = 0.5

// Maintainer is a backend with periodic housekeeping.
type Maintainer interface {
	Maintain(ctx context.Context) error
}

// MaintainerOf returns the housekeeping hook of store, looking through a
// GuardedStore. ok is false for backends without housekeeping.
func MaintainerOf(store recommend.Store) (m Maintainer, ok bool) {
	if g, guarded := store.(*GuardedStore); guarded {
		store = g.Unwrap()
	}
	m, ok = store.(Maintainer)
	return m, ok
}

// Maintain runs BadgerDB value log garbage collection until no file
// qualifies for rewrite.
func (s *BadgerStore) Maintain(ctx context.Context) error {
	defer observe(BackendBadger, "value_log_gc", time.Now())

	rewritten := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			if rewritten > 0 {
				logging.Debug().Int("files_rewritten", rewritten).Msg("value log GC complete")
			}
			return nil
		default:
			return fmt.Errorf("value log GC: %w", err)
		}
	}
}
