// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recipebox/internal/recommend"
)

func sampleActivities(userID string, ids ...string) []recommend.ActivityRecord {
	ts := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	out := make([]recommend.ActivityRecord, len(ids))
	for i, id := range ids {
		out[i] = recommend.ActivityRecord{
			UserID:    userID,
			RecipeID:  id,
			Type:      recommend.ActivityCooked,
			Timestamp: ts.Add(time.Duration(i) * time.Minute),
			Metadata:  recommend.Metadata{"rating": recommend.NumberValue(float64(i + 1))},
		}
	}
	return out
}

func sampleFeedback(userID string, ids ...string) []recommend.FeedbackRecord {
	ts := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	out := make([]recommend.FeedbackRecord, len(ids))
	for i, id := range ids {
		out[i] = recommend.FeedbackRecord{
			UserID:    userID,
			RecipeID:  id,
			Type:      recommend.FeedbackInterested,
			Timestamp: ts,
		}
	}
	return out
}

// testStoreContract exercises the behavior every backend must provide.
func testStoreContract(t *testing.T, store recommend.Store) {
	t.Helper()
	ctx := context.Background()

	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on empty store error = %v", err)
	}
	if len(snap.Activities) != 0 || len(snap.Feedback) != 0 {
		t.Fatalf("Load() on empty store = %+v", snap)
	}

	if err := store.SaveActivities(ctx, "alice", sampleActivities("alice", "r1", "r2")); err != nil {
		t.Fatalf("SaveActivities(alice) error = %v", err)
	}
	if err := store.SaveActivities(ctx, "bob", sampleActivities("bob", "r3")); err != nil {
		t.Fatalf("SaveActivities(bob) error = %v", err)
	}
	if err := store.SaveFeedback(ctx, "alice", sampleFeedback("alice", "r2")); err != nil {
		t.Fatalf("SaveFeedback(alice) error = %v", err)
	}
	// A later save replaces the earlier sequence.
	if err := store.SaveActivities(ctx, "alice", sampleActivities("alice", "r1", "r2", "r4")); err != nil {
		t.Fatalf("SaveActivities(alice) error = %v", err)
	}

	snap, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	alice := snap.Activities["alice"]
	if len(alice) != 3 {
		t.Fatalf("alice activities = %d, want 3", len(alice))
	}
	for i, want := range []string{"r1", "r2", "r4"} {
		if alice[i].RecipeID != want {
			t.Errorf("alice[%d].RecipeID = %q, want %q", i, alice[i].RecipeID, want)
		}
	}
	if alice[1].Type != recommend.ActivityCooked {
		t.Errorf("Type = %v, want cooked", alice[1].Type)
	}
	if rating, ok := alice[1].Metadata.Rating(); !ok || rating != 2 {
		t.Errorf("Rating() = %v, %v; want 2, true", rating, ok)
	}
	if !alice[2].Timestamp.Equal(time.Date(2026, 2, 1, 8, 2, 0, 0, time.UTC)) {
		t.Errorf("Timestamp = %v", alice[2].Timestamp)
	}
	if len(snap.Activities["bob"]) != 1 {
		t.Errorf("bob activities = %d, want 1", len(snap.Activities["bob"]))
	}
	if fb := snap.Feedback["alice"]; len(fb) != 1 || fb[0].Type != recommend.FeedbackInterested {
		t.Errorf("alice feedback = %+v", fb)
	}

	// Empty sequences remove the user.
	if err := store.SaveFeedback(ctx, "alice", nil); err != nil {
		t.Fatalf("SaveFeedback(alice, nil) error = %v", err)
	}
	if err := store.SaveActivities(ctx, "bob", []recommend.ActivityRecord{}); err != nil {
		t.Fatalf("SaveActivities(bob, empty) error = %v", err)
	}
	snap, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := snap.Feedback["alice"]; ok {
		t.Error("alice feedback should be removed")
	}
	if _, ok := snap.Activities["bob"]; ok {
		t.Error("bob activities should be removed")
	}
}

func TestBadgerStore_Contract(t *testing.T) {
	store, err := OpenBadgerStore(Options{InMemory: true})
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	defer store.Close()

	testStoreContract(t, store)
}

func TestFileStore_Contract(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state", "log.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	testStoreContract(t, store)
}

func TestMemoryStore_Contract(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestGuardedStore_Contract(t *testing.T) {
	testStoreContract(t, NewGuardedStore(NewMemoryStore(), "contract", DefaultBreakerConfig()))
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := OpenBadgerStore(Options{Path: dir, SyncWrites: true})
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	if err := store.SaveActivities(ctx, "alice", sampleActivities("alice", "r1")); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadgerStore(Options{Path: dir})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	snap, err := reopened.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Activities["alice"]) != 1 {
		t.Errorf("alice activities after reopen = %d, want 1", len(snap.Activities["alice"]))
	}
}

func TestOpenBadgerStore_RequiresPath(t *testing.T) {
	if _, err := OpenBadgerStore(Options{}); err == nil {
		t.Error("expected error without path")
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log.json")

	first, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := first.SaveActivities(ctx, "alice", sampleActivities("alice", "r1", "r2")); err != nil {
		t.Fatal(err)
	}
	if err := first.SaveFeedback(ctx, "alice", sampleFeedback("alice", "r1")); err != nil {
		t.Fatal(err)
	}

	second, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Activities["alice"]) != 2 || len(snap.Feedback["alice"]) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the state file", len(entries))
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(context.Background()); err == nil {
		t.Error("expected decode error for corrupt file")
	}
}

func TestNewFileStore_RequiresPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("expected error without path")
	}
}

// failingStore fails every write.
type failingStore struct {
	*MemoryStore
	calls int
}

func (f *failingStore) SaveActivities(ctx context.Context, userID string, records []recommend.ActivityRecord) error {
	f.calls++
	return errors.New("disk full")
}

func TestGuardedStore_OpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	inner := &failingStore{MemoryStore: NewMemoryStore()}
	store := NewGuardedStore(inner, "test", BreakerConfig{
		Enabled:          true,
		FailureThreshold: 3,
		Timeout:          time.Hour,
		MaxRequests:      1,
	})

	for i := 0; i < 3; i++ {
		if err := store.SaveActivities(ctx, "alice", sampleActivities("alice", "r1")); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if store.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", store.State())
	}

	err := store.SaveActivities(ctx, "alice", sampleActivities("alice", "r1"))
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner called %d times, want 3", inner.calls)
	}

	// Feedback writes share the breaker.
	if err := store.SaveFeedback(ctx, "alice", sampleFeedback("alice", "r1")); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("SaveFeedback() error = %v, want ErrOpenState", err)
	}
}

func TestGuardedStore_SurfacesAsPersistenceError(t *testing.T) {
	ctx := context.Background()
	inner := &failingStore{MemoryStore: NewMemoryStore()}
	store := NewGuardedStore(inner, "log", BreakerConfig{Enabled: true, FailureThreshold: 1, Timeout: time.Hour})

	log, err := recommend.NewActivityLog(ctx, store, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		_, err := log.RecordActivity(ctx, "alice", "r1", recommend.ActivityViewed, nil)
		if !errors.Is(err, recommend.ErrPersistence) {
			t.Errorf("attempt %d: error = %v, want ErrPersistence", i, err)
		}
	}
	if got := len(log.History("alice")); got != 0 {
		t.Errorf("History len = %d, want 0", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		check   func(t *testing.T, s recommend.Store)
	}{
		{
			name: "memory",
			opts: Options{Backend: BackendMemory},
			check: func(t *testing.T, s recommend.Store) {
				if _, ok := s.(*MemoryStore); !ok {
					t.Errorf("store = %T, want *MemoryStore", s)
				}
			},
		},
		{
			name: "memory with breaker",
			opts: Options{Backend: BackendMemory, Breaker: DefaultBreakerConfig()},
			check: func(t *testing.T, s recommend.Store) {
				if _, ok := s.(*GuardedStore); !ok {
					t.Errorf("store = %T, want *GuardedStore", s)
				}
			},
		},
		{
			name: "badger in memory",
			opts: Options{Backend: BackendBadger, InMemory: true},
			check: func(t *testing.T, s recommend.Store) {
				if _, ok := s.(*BadgerStore); !ok {
					t.Errorf("store = %T, want *BadgerStore", s)
				}
			},
		},
		{
			name: "file",
			opts: Options{Backend: BackendFile, Path: filepath.Join(t.TempDir(), "log.json")},
			check: func(t *testing.T, s recommend.Store) {
				if _, ok := s.(*FileStore); !ok {
					t.Errorf("store = %T, want *FileStore", s)
				}
			},
		},
		{
			name:    "unknown backend",
			opts:    Options{Backend: "postgres"},
			wantErr: true,
		},
		{
			name:    "file without path",
			opts:    Options{Backend: BackendFile},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()
			tt.check(t, s)
		})
	}
}

func TestMaintainerOf(t *testing.T) {
	badgerStore, err := OpenBadgerStore(Options{InMemory: true})
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	defer badgerStore.Close()

	tests := []struct {
		name  string
		store recommend.Store
		want  bool
	}{
		{name: "badger", store: badgerStore, want: true},
		{name: "guarded badger", store: NewGuardedStore(badgerStore, "gc", DefaultBreakerConfig()), want: true},
		{name: "memory", store: NewMemoryStore(), want: false},
		{name: "guarded memory", store: NewGuardedStore(NewMemoryStore(), "gc", DefaultBreakerConfig()), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := MaintainerOf(tt.store); ok != tt.want {
				t.Errorf("MaintainerOf() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestBadgerStore_Maintain(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory is a no-op", func(t *testing.T) {
		store, err := OpenBadgerStore(Options{InMemory: true})
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()

		if err := store.Maintain(ctx); err != nil {
			t.Errorf("Maintain() error = %v", err)
		}
	})

	t.Run("on disk with nothing to rewrite", func(t *testing.T) {
		store, err := OpenBadgerStore(Options{Path: t.TempDir()})
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()

		if err := store.SaveActivities(ctx, "alice", sampleActivities("alice", "r1", "r2")); err != nil {
			t.Fatal(err)
		}
		if err := store.Maintain(ctx); err != nil {
			t.Errorf("Maintain() error = %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		store, err := OpenBadgerStore(Options{InMemory: true})
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		if err := store.Maintain(canceled); !errors.Is(err, context.Canceled) {
			t.Errorf("Maintain() error = %v, want context.Canceled", err)
		}
	})
}
