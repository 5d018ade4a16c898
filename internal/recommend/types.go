// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"fmt"
	"time"
)

// ActivityType classifies what a user did with a recipe.
type ActivityType int

const (
	// ActivityViewed indicates the recipe was opened.
	ActivityViewed ActivityType = iota + 1
	// ActivityCooked indicates the recipe was cooked.
	ActivityCooked
	// ActivityRated indicates the recipe was rated (metadata carries "rating").
	ActivityRated
	// ActivityFavorited indicates the recipe was added to favorites.
	ActivityFavorited
	// ActivityDismissed indicates a suggestion was swiped away.
	ActivityDismissed
	// ActivityNotInterested indicates the user asked not to see the recipe.
	ActivityNotInterested
	// ActivityInterested indicates explicit positive feedback on a suggestion.
	ActivityInterested
)

// activityTypeNames maps each activity type to its wire name.
var activityTypeNames = map[ActivityType]string{
	ActivityViewed:        "viewed",
	ActivityCooked:        "cooked",
	ActivityRated:         "rated",
	ActivityFavorited:     "favorited",
	ActivityDismissed:     "dismissed",
	ActivityNotInterested: "not_interested",
	ActivityInterested:    "interested",
}

// String returns the wire name for the activity type.
func (t ActivityType) String() string {
	if name, ok := activityTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is one of the declared activity types.
func (t ActivityType) Valid() bool {
	_, ok := activityTypeNames[t]
	return ok
}

// ParseActivityType converts a wire name into an ActivityType.
func ParseActivityType(s string) (ActivityType, error) {
	for t, name := range activityTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidActivityType, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t ActivityType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidActivityType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ActivityType) UnmarshalText(text []byte) error {
	parsed, err := ParseActivityType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FeedbackType is the subset of activity types accepted as explicit
// feedback on a recommendation.
type FeedbackType int

const (
	// FeedbackInterested marks a suggestion as wanted.
	FeedbackInterested FeedbackType = iota + 1
	// FeedbackNotInterested hides a suggestion.
	FeedbackNotInterested
	// FeedbackFavorited saves a suggestion to favorites.
	FeedbackFavorited
	// FeedbackCooked reports that a suggestion was cooked.
	FeedbackCooked
)

// Activity returns the activity type recorded alongside the feedback.
func (f FeedbackType) Activity() ActivityType {
	switch f {
	case FeedbackInterested:
		return ActivityInterested
	case FeedbackNotInterested:
		return ActivityNotInterested
	case FeedbackFavorited:
		return ActivityFavorited
	case FeedbackCooked:
		return ActivityCooked
	default:
		return 0
	}
}

// Valid reports whether f is one of the declared feedback types.
func (f FeedbackType) Valid() bool {
	return f.Activity() != 0
}

// String returns the wire name for the feedback type.
func (f FeedbackType) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return f.Activity().String()
}

// ParseFeedbackType converts a wire name into a FeedbackType.
func ParseFeedbackType(s string) (FeedbackType, error) {
	for _, f := range []FeedbackType{FeedbackInterested, FeedbackNotInterested, FeedbackFavorited, FeedbackCooked} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFeedbackType, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f FeedbackType) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFeedbackType, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FeedbackType) UnmarshalText(text []byte) error {
	parsed, err := ParseFeedbackType(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ActivityRecord is one immutable entry in a user's activity log.
type ActivityRecord struct {
	// UserID identifies the household member.
	UserID string `json:"user_id"`

	// RecipeID identifies the recipe acted upon.
	RecipeID string `json:"recipe_id"`

	// Type is what the user did.
	Type ActivityType `json:"activity_type"`

	// Timestamp is when the activity was recorded (UTC).
	Timestamp time.Time `json:"timestamp"`

	// Metadata carries optional typed attributes such as "rating".
	Metadata Metadata `json:"metadata,omitempty"`
}

// FeedbackRecord is one immutable entry in a user's feedback log.
type FeedbackRecord struct {
	UserID    string       `json:"user_id"`
	RecipeID  string       `json:"recipe_id"`
	Type      FeedbackType `json:"feedback_type"`
	Timestamp time.Time    `json:"timestamp"`
	Metadata  Metadata     `json:"metadata,omitempty"`
}

// Ingredient is a single recipe ingredient. Only the name takes part in scoring.
type Ingredient struct {
	Name string `json:"name" validate:"required"`
}

// Recipe is a catalog record supplied by the caller.
type Recipe struct {
	// ID is the catalog identifier.
	ID string `json:"id" validate:"required"`

	// Title is the display title. It does not take part in scoring.
	Title string `json:"title,omitempty"`

	// Category is the primary course or cuisine bucket.
	Category string `json:"category,omitempty"`

	// Tags are free-form labels such as "quick" or "vegetarian".
	Tags []string `json:"tags,omitempty"`

	// Ingredients lists the recipe ingredients.
	Ingredients []Ingredient `json:"ingredients,omitempty" validate:"dive"`

	// CookingTime is the total time in minutes. Zero means unknown.
	CookingTime int `json:"cooking_time,omitempty" validate:"gte=0"`

	// Difficulty is a label such as "easy", "medium" or "hard".
	Difficulty string `json:"difficulty,omitempty"`
}

// ComponentScores is the per-component breakdown behind a recommendation.
type ComponentScores struct {
	Collaborative    float64 `json:"collaborative"`
	Content          float64 `json:"content"`
	Trend            float64 `json:"trend"`
	DiversityPenalty float64 `json:"diversity_penalty"`
}

// ScoredRecipe is a recipe with its combined recommendation score.
type ScoredRecipe struct {
	// Recipe is the candidate as supplied by the caller.
	Recipe Recipe `json:"recipe"`

	// Score is the combined score. Personalized scores may be slightly negative.
	Score float64 `json:"score"`

	// Scores is the breakdown by component.
	Scores ComponentScores `json:"scores"`

	// Reason is a human-readable explanation.
	Reason string `json:"reason"`

	// MatchPercentage is the score rendered as 0-100.
	MatchPercentage int `json:"match_percentage"`
}

// PreferenceCount is a named attribute with its frequency in a user's history.
type PreferenceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// UserPreferences is a preference profile aggregated from a user's history.
type UserPreferences struct {
	UserID              string            `json:"user_id"`
	TopIngredients      []PreferenceCount `json:"top_ingredients"`
	TopCategories       []PreferenceCount `json:"top_categories"`
	TopTags             []PreferenceCount `json:"top_tags"`
	AverageCookingTime  int               `json:"average_cooking_time"`
	PreferredDifficulty string            `json:"preferred_difficulty"`
	RecentCookedCount   int               `json:"recent_cooked_count"`
	TotalActivities     int               `json:"total_activities"`
}

// LogStats summarizes the activity and feedback logs.
type LogStats struct {
	Users      int `json:"users"`
	Activities int `json:"activities"`
	Feedback   int `json:"feedback"`
}
