// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore is an in-memory Store with injectable failures.
type fakeStore struct {
	mu         sync.Mutex
	activities map[string][]ActivityRecord
	feedback   map[string][]FeedbackRecord
	failActs   bool
	failFb     bool
	failLoad   bool
	actSaves   int
	fbSaves    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		activities: make(map[string][]ActivityRecord),
		feedback:   make(map[string][]FeedbackRecord),
	}
}

func (f *fakeStore) Load(ctx context.Context) (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad {
		return nil, errStoreDown
	}
	snap := NewSnapshot()
	for k, v := range f.activities {
		snap.Activities[k] = append([]ActivityRecord(nil), v...)
	}
	for k, v := range f.feedback {
		snap.Feedback[k] = append([]FeedbackRecord(nil), v...)
	}
	return snap, nil
}

func (f *fakeStore) SaveActivities(ctx context.Context, userID string, records []ActivityRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failActs {
		return errStoreDown
	}
	f.actSaves++
	if len(records) == 0 {
		delete(f.activities, userID)
		return nil
	}
	f.activities[userID] = append([]ActivityRecord(nil), records...)
	return nil
}

func (f *fakeStore) SaveFeedback(ctx context.Context, userID string, records []FeedbackRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFb {
		return errStoreDown
	}
	f.fbSaves++
	if len(records) == 0 {
		delete(f.feedback, userID)
		return nil
	}
	f.feedback[userID] = append([]FeedbackRecord(nil), records...)
	return nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) storedFeedback(userID string) []FeedbackRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.feedback[userID]
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// testClock is a settable clock shared by the log and the engine.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// newTestEngine builds an engine over a fresh fake store with a fixed clock.
func newTestEngine(t *testing.T) (*Engine, *fakeStore, *testClock) {
	t.Helper()
	store := newFakeStore()
	clock := newTestClock()

	log, err := NewActivityLog(context.Background(), store, testLogger(), WithLogClock(clock.Now))
	if err != nil {
		t.Fatalf("NewActivityLog() error = %v", err)
	}
	engine, err := NewEngine(DefaultConfig(), log, testLogger(), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine, store, clock
}

// record appends an activity at the given offset before the clock's current time.
func record(t *testing.T, e *Engine, clock *testClock, userID, recipeID string, typ ActivityType, ago time.Duration, md Metadata) {
	t.Helper()
	current := clock.Now()
	clock.Set(current.Add(-ago))
	defer clock.Set(current)

	if _, err := e.RecordActivity(context.Background(), userID, recipeID, typ, md); err != nil {
		t.Fatalf("RecordActivity(%s, %s, %s) error = %v", userID, recipeID, typ, err)
	}
}

func ingredients(names ...string) []Ingredient {
	out := make([]Ingredient, len(names))
	for i, n := range names {
		out[i] = Ingredient{Name: n}
	}
	return out
}

func recipeIDs(items []ScoredRecipe) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].Recipe.ID
	}
	return ids
}

// testCatalog is a small catalog spanning a few categories.
func testCatalog() []Recipe {
	return []Recipe{
		{ID: "pad-thai", Title: "Pad Thai", Category: "thai", Tags: []string{"noodles"}, Ingredients: ingredients("rice noodles", "peanuts", "egg"), CookingTime: 25, Difficulty: "medium"},
		{ID: "green-curry", Title: "Green Curry", Category: "thai", Tags: []string{"spicy"}, Ingredients: ingredients("coconut milk", "chicken", "basil"), CookingTime: 40, Difficulty: "medium"},
		{ID: "tom-yum", Title: "Tom Yum", Category: "thai", Tags: []string{"soup", "spicy"}, Ingredients: ingredients("shrimp", "lemongrass"), CookingTime: 30, Difficulty: "easy"},
		{ID: "larb", Title: "Larb", Category: "thai", Tags: []string{"healthy"}, Ingredients: ingredients("pork", "mint", "lime"), CookingTime: 20, Difficulty: "easy"},
		{ID: "carbonara", Title: "Carbonara", Category: "italian", Tags: []string{"quick"}, Ingredients: ingredients("spaghetti", "egg", "pancetta"), CookingTime: 15, Difficulty: "medium"},
		{ID: "risotto", Title: "Risotto", Category: "italian", Ingredients: ingredients("arborio rice", "parmesan"), CookingTime: 45, Difficulty: "hard"},
		{ID: "tacos", Title: "Tacos", Category: "mexican", Tags: []string{"easy"}, Ingredients: ingredients("tortilla", "beef", "lime"), CookingTime: 20, Difficulty: "easy"},
	}
}
