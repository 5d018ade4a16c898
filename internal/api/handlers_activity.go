// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/recipebox/internal/logging"
	"github.com/tomtom215/recipebox/internal/metrics"
	"github.com/tomtom215/recipebox/internal/models"
	"github.com/tomtom215/recipebox/internal/recommend"
)

// RecordActivity handles POST /api/v1/users/{userID}/activities.
// The record is returned with 201 once the store has acknowledged it.
func (h *Handler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		metrics.RecordActivityWrite(kindActivity, resultInvalid)
		return
	}
	var req ActivityRequest
	if !decodeJSON(w, r, &req) {
		metrics.RecordActivityWrite(kindActivity, resultInvalid)
		return
	}

	activityType, err := recommend.ParseActivityType(req.ActivityType)
	if err != nil {
		metrics.RecordActivityWrite(kindActivity, resultInvalid)
		respondError(w, r, http.StatusBadRequest, CodeInvalidActivityType, err.Error(), nil)
		return
	}

	rec, err := h.engine.RecordActivity(r.Context(), userID, req.RecipeID, activityType, req.Metadata)
	if err != nil {
		_, _, result := classifyError(err)
		metrics.RecordActivityWrite(kindActivity, result)
		respondEngineError(w, r, err)
		return
	}

	metrics.RecordActivityWrite(kindActivity, resultOK)
	h.refreshUserGauge()
	logging.Ctx(r.Context()).Debug().
		Str("user_id", sanitizeLogValue(userID)).
		Str("recipe_id", sanitizeLogValue(rec.RecipeID)).
		Str("activity_type", rec.Type.String()).
		Msg("activity recorded")

	respondJSON(w, http.StatusCreated, models.Success(rec, time.Since(start)))
}

// ActivityHistory handles GET /api/v1/users/{userID}/activities.
// Unknown users get an empty list.
func (h *Handler) ActivityHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	history := h.engine.History(userID)
	if history == nil {
		history = []recommend.ActivityRecord{}
	}
	respondJSON(w, http.StatusOK, models.Success(history, 0).WithCount(len(history)))
}

// SubmitFeedback handles POST /api/v1/users/{userID}/feedback.
// The feedback is also appended to the activity log as its mapped activity.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		metrics.RecordActivityWrite(kindFeedback, resultInvalid)
		return
	}
	var req FeedbackRequest
	if !decodeJSON(w, r, &req) {
		metrics.RecordActivityWrite(kindFeedback, resultInvalid)
		return
	}

	feedbackType, err := recommend.ParseFeedbackType(req.FeedbackType)
	if err != nil {
		metrics.RecordActivityWrite(kindFeedback, resultInvalid)
		respondError(w, r, http.StatusBadRequest, CodeInvalidFeedbackType, err.Error(), nil)
		return
	}

	rec, err := h.engine.SubmitFeedback(r.Context(), userID, req.RecipeID, feedbackType, req.Metadata)
	if err != nil {
		_, _, result := classifyError(err)
		metrics.RecordActivityWrite(kindFeedback, result)
		respondEngineError(w, r, err)
		return
	}

	metrics.RecordActivityWrite(kindFeedback, resultOK)
	h.refreshUserGauge()
	logging.Ctx(r.Context()).Debug().
		Str("user_id", sanitizeLogValue(userID)).
		Str("recipe_id", sanitizeLogValue(rec.RecipeID)).
		Str("feedback_type", rec.Type.String()).
		Msg("feedback recorded")

	respondJSON(w, http.StatusCreated, models.Success(rec, time.Since(start)))
}

// FeedbackHistory handles GET /api/v1/users/{userID}/feedback.
func (h *Handler) FeedbackHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	history := h.engine.FeedbackHistory(userID)
	if history == nil {
		history = []recommend.FeedbackRecord{}
	}
	respondJSON(w, http.StatusOK, models.Success(history, 0).WithCount(len(history)))
}
