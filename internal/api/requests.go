// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package api

import (
	"github.com/tomtom215/recipebox/internal/recommend"
)

// ActivityRequest is the body of POST /users/{userID}/activities.
type ActivityRequest struct {
	RecipeID     string             `json:"recipe_id" validate:"required,identifier"`
	ActivityType string             `json:"activity_type" validate:"required"`
	Metadata     recommend.Metadata `json:"metadata,omitempty"`
}

// FeedbackRequest is the body of POST /users/{userID}/feedback.
type FeedbackRequest struct {
	RecipeID     string             `json:"recipe_id" validate:"required,identifier"`
	FeedbackType string             `json:"feedback_type" validate:"required"`
	Metadata     recommend.Metadata `json:"metadata,omitempty"`
}

// RankRequest is the body of the personalized, trending and similar endpoints.
// A zero limit selects the engine default. At most 10000 candidates are accepted.
type RankRequest struct {
	Candidates []recommend.Recipe `json:"candidates" validate:"max=10000,dive"`
	Limit      int                `json:"limit" validate:"gte=0"`
}

// PreferencesRequest is the body of POST /users/{userID}/preferences.
type PreferencesRequest struct {
	Catalog []recommend.Recipe `json:"catalog" validate:"max=10000,dive"`
}

// pathIDs validates identifiers taken from the URL.
type pathIDs struct {
	UserID   string `json:"user_id" validate:"omitempty,identifier"`
	RecipeID string `json:"recipe_id" validate:"omitempty,identifier"`
}
