// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

// Package storage provides durable backends for the activity and feedback logs.
//
// Every backend implements recommend.Store. The log calls Load once at
// startup and then rewrites a user's whole sequence on each append, so a
// backend only needs "replace the value for this user" semantics.
//
// # Backends
//
//   - BadgerStore: one key per user per log in BadgerDB
//     ("activity:<user>", "feedback:<user>"), values are JSON arrays.
//     Writes are synchronous when SyncWrites is set.
//   - FileStore: the whole state in a single JSON file, rewritten through a
//     temporary file and an atomic rename.
//   - MemoryStore: process memory only. Used by tests and by the "memory"
//     backend for throwaway runs.
//
// # Circuit Breaker
//
// GuardedStore wraps any backend with a gobreaker circuit breaker. After
// repeated failures writes fail fast until the breaker half-opens again.
// The activity log reports those failures as recommend.ErrPersistence.
//
// # Usage
//
//	store, err := storage.Open(ctx, storage.Options{
//	    Backend:    storage.BackendBadger,
//	    Path:       "/data/recipebox",
//	    SyncWrites: true,
//	    Breaker:    storage.DefaultBreakerConfig(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
package storage
