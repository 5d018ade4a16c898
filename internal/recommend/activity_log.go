// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store is the durable backend behind the activity and feedback logs.
// Implementations live in the storage subpackage.
//
// Load is called once at startup. Each Save call receives the user's complete
// sequence and must replace whatever was stored for that user before
// returning. A nil error means the write is durable.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	SaveActivities(ctx context.Context, userID string, records []ActivityRecord) error
	SaveFeedback(ctx context.Context, userID string, records []FeedbackRecord) error
	Close() error
}

// Snapshot is the full persisted state of both logs.
type Snapshot struct {
	Activities map[string][]ActivityRecord `json:"activities"`
	Feedback   map[string][]FeedbackRecord `json:"feedback"`
}

// NewSnapshot returns an empty snapshot with initialized maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Activities: make(map[string][]ActivityRecord),
		Feedback:   make(map[string][]FeedbackRecord),
	}
}

// ActivityLog holds the per-user activity and feedback sequences.
//
// Writes for the same user are serialized by a per-user mutex and published
// only after the store acknowledges them. Published slices are never mutated
// in place, so readers can hold them without locking.
type ActivityLog struct {
	store  Store
	logger zerolog.Logger
	now    func() time.Time

	mu         sync.RWMutex
	activities map[string][]ActivityRecord
	feedback   map[string][]FeedbackRecord

	userLocks sync.Map // user ID -> *sync.Mutex
}

// LogOption configures an ActivityLog.
type LogOption func(*ActivityLog)

// WithLogClock overrides the clock used to timestamp records.
func WithLogClock(now func() time.Time) LogOption {
	return func(l *ActivityLog) {
		l.now = now
	}
}

// NewActivityLog loads both logs from the store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewActivityLog(ctx context.Context, store Store, logger zerolog.Logger, opts ...LogOption) (*ActivityLog, error) {
	if store == nil {
		return nil, fmt.Errorf("activity log store is nil")
	}

	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load activity log: %w", ErrPersistence, err)
	}
	if snap == nil {
		snap = NewSnapshot()
	}

	l := &ActivityLog{
		store:      store,
		logger:     logger.With().Str("component", "activity_log").Logger(),
		now:        time.Now,
		activities: snap.Activities,
		feedback:   snap.Feedback,
	}
	if l.activities == nil {
		l.activities = make(map[string][]ActivityRecord)
	}
	if l.feedback == nil {
		l.feedback = make(map[string][]FeedbackRecord)
	}
	for _, opt := range opts {
		opt(l)
	}

	stats := l.Stats()
	l.logger.Info().
		Int("users", stats.Users).
		Int("activities", stats.Activities).
		Int("feedback", stats.Feedback).
		Msg("activity log loaded")

	return l, nil
}

// RecordActivity appends an activity record for the user and persists the
// user's sequence.
func (l *ActivityLog) RecordActivity(ctx context.Context, userID, recipeID string, activityType ActivityType, md Metadata) (ActivityRecord, error) {
	if err := validateIdentifiers(userID, recipeID); err != nil {
		return ActivityRecord{}, err
	}
	if !activityType.Valid() {
		return ActivityRecord{}, fmt.Errorf("%w: %d", ErrInvalidActivityType, int(activityType))
	}

	unlock := l.lockUser(userID)
	defer unlock()

	rec := ActivityRecord{
		UserID:    userID,
		RecipeID:  recipeID,
		Type:      activityType,
		Timestamp: l.now().UTC(),
		Metadata:  md.Clone(),
	}
	if _, err := l.appendActivity(ctx, rec); err != nil {
		return ActivityRecord{}, err
	}

	l.logger.Debug().
		Str("user_id", userID).
		Str("recipe_id", recipeID).
		Str("type", activityType.String()).
		Msg("activity recorded")

	return rec, nil
}

// SubmitFeedback appends one feedback record and one activity record with the
// same type, timestamp and metadata. Either both are persisted or neither is.
func (l *ActivityLog) SubmitFeedback(ctx context.Context, userID, recipeID string, feedbackType FeedbackType, md Metadata) (FeedbackRecord, error) {
	if err := validateIdentifiers(userID, recipeID); err != nil {
		return FeedbackRecord{}, err
	}
	if !feedbackType.Valid() {
		return FeedbackRecord{}, fmt.Errorf("%w: %d", ErrInvalidFeedbackType, int(feedbackType))
	}

	unlock := l.lockUser(userID)
	defer unlock()

	ts := l.now().UTC()
	fb := FeedbackRecord{
		UserID:    userID,
		RecipeID:  recipeID,
		Type:      feedbackType,
		Timestamp: ts,
		Metadata:  md.Clone(),
	}
	previous, err := l.appendFeedback(ctx, fb)
	if err != nil {
		return FeedbackRecord{}, err
	}

	act := ActivityRecord{
		UserID:    userID,
		RecipeID:  recipeID,
		Type:      feedbackType.Activity(),
		Timestamp: ts,
		Metadata:  md.Clone(),
	}
	if _, err := l.appendActivity(ctx, act); err != nil {
		l.revertFeedback(ctx, userID, previous)
		return FeedbackRecord{}, err
	}

	l.logger.Debug().
		Str("user_id", userID).
		Str("recipe_id", recipeID).
		Str("type", feedbackType.String()).
		Msg("feedback submitted")

	return fb, nil
}

// History returns a copy of the user's activity records in insertion order.
func (l *ActivityLog) History(userID string) []ActivityRecord {
	l.mu.RLock()
	records := l.activities[userID]
	l.mu.RUnlock()

	out := make([]ActivityRecord, len(records))
	copy(out, records)
	return out
}

// FeedbackHistory returns a copy of the user's feedback records in insertion order.
func (l *ActivityLog) FeedbackHistory(userID string) []FeedbackRecord {
	l.mu.RLock()
	records := l.feedback[userID]
	l.mu.RUnlock()

	out := make([]FeedbackRecord, len(records))
	copy(out, records)
	return out
}

// Users returns the IDs of all users with at least one activity, sorted.
func (l *ActivityLog) Users() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	users := make([]string, 0, len(l.activities))
	for id, records := range l.activities {
		if len(records) > 0 {
			users = append(users, id)
		}
	}
	sort.Strings(users)
	return users
}

// Stats returns record counts across both logs.
func (l *ActivityLog) Stats() LogStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var stats LogStats
	for _, records := range l.activities {
		if len(records) > 0 {
			stats.Users++
		}
		stats.Activities += len(records)
	}
	for _, records := range l.feedback {
		stats.Feedback += len(records)
	}
	return stats
}

// snapshot returns the current per-user activity sequences. The returned
// slices are shared and must not be modified.
func (l *ActivityLog) snapshot() map[string][]ActivityRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string][]ActivityRecord, len(l.activities))
	for id, records := range l.activities {
		if len(records) > 0 {
			out[id] = records
		}
	}
	return out
}

// appendActivity persists the extended sequence and publishes it.
// Must be called with the user's lock held.
func (l *ActivityLog) appendActivity(ctx context.Context, rec ActivityRecord) ([]ActivityRecord, error) {
	l.mu.RLock()
	current := l.activities[rec.UserID]
	l.mu.RUnlock()

	next := make([]ActivityRecord, len(current), len(current)+1)
	copy(next, current)
	next = append(next, rec)

	if err := l.store.SaveActivities(ctx, rec.UserID, next); err != nil {
		l.logger.Error().Err(err).Str("user_id", rec.UserID).Msg("failed to persist activity log")
		return nil, fmt.Errorf("%w: save activities for %q: %w", ErrPersistence, rec.UserID, err)
	}

	l.mu.Lock()
	l.activities[rec.UserID] = next
	l.mu.Unlock()

	return current, nil
}

// appendFeedback persists the extended sequence and publishes it.
// Must be called with the user's lock held.
func (l *ActivityLog) appendFeedback(ctx context.Context, rec FeedbackRecord) ([]FeedbackRecord, error) {
	l.mu.RLock()
	current := l.feedback[rec.UserID]
	l.mu.RUnlock()

	next := make([]FeedbackRecord, len(current), len(current)+1)
	copy(next, current)
	next = append(next, rec)

	if err := l.store.SaveFeedback(ctx, rec.UserID, next); err != nil {
		l.logger.Error().Err(err).Str("user_id", rec.UserID).Msg("failed to persist feedback log")
		return nil, fmt.Errorf("%w: save feedback for %q: %w", ErrPersistence, rec.UserID, err)
	}

	l.mu.Lock()
	l.feedback[rec.UserID] = next
	l.mu.Unlock()

	return current, nil
}

// revertFeedback restores a user's feedback sequence after a failed paired write.
func (l *ActivityLog) revertFeedback(ctx context.Context, userID string, previous []FeedbackRecord) {
	l.mu.Lock()
	if len(previous) == 0 {
		delete(l.feedback, userID)
	} else {
		l.feedback[userID] = previous
	}
	l.mu.Unlock()

	if err := l.store.SaveFeedback(ctx, userID, previous); err != nil {
		// The store now holds one feedback record the log does not; it is
		// dropped on the next successful feedback write for this user.
		l.logger.Error().Err(err).Str("user_id", userID).Msg("failed to revert feedback log")
	}
}

// lockUser acquires the user's write lock and returns its release function.
func (l *ActivityLog) lockUser(userID string) func() {
	v, _ := l.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func validateIdentifiers(userID, recipeID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidIdentifier)
	}
	if strings.TrimSpace(recipeID) == "" {
		return fmt.Errorf("%w: empty recipe id", ErrInvalidIdentifier)
	}
	return nil
}
