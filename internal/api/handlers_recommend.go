// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/recipebox/internal/metrics"
	"github.com/tomtom215/recipebox/internal/models"
	"github.com/tomtom215/recipebox/internal/recommend"
)

// PersonalizedRecommendations handles POST /api/v1/users/{userID}/recommendations.
func (h *Handler) PersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var req RankRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	recs, err := h.engine.PersonalizedRecommendations(r.Context(), userID, req.Candidates, req.Limit)
	h.respondRanking(w, r, metrics.ModePersonalized, start, recs, err)
}

// TrendingRecommendations handles POST /api/v1/recommendations/trending.
func (h *Handler) TrendingRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RankRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	recs, err := h.engine.TrendingRecommendations(r.Context(), req.Candidates, req.Limit)
	h.respondRanking(w, r, metrics.ModeTrending, start, recs, err)
}

// SimilarRecipes handles POST /api/v1/recipes/{recipeID}/similar. The recipe
// itself must be among the candidates; otherwise the result is empty.
func (h *Handler) SimilarRecipes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recipeID, ok := recipeIDParam(w, r)
	if !ok {
		return
	}
	var req RankRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	recs, err := h.engine.SimilarRecipes(r.Context(), recipeID, req.Candidates, req.Limit)
	h.respondRanking(w, r, metrics.ModeSimilar, start, recs, err)
}

// UserPreferences handles POST /api/v1/users/{userID}/preferences.
func (h *Handler) UserPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var req PreferencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prefs, err := h.engine.UserPreferences(r.Context(), userID, req.Catalog)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(metrics.ModePreferences, elapsed, len(prefs.TopIngredients))
	respondJSON(w, http.StatusOK, models.Success(prefs, elapsed))
}

func (h *Handler) respondRanking(w http.ResponseWriter, r *http.Request, mode string, start time.Time, recs []recommend.ScoredRecipe, err error) {
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if recs == nil {
		recs = []recommend.ScoredRecipe{}
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(mode, elapsed, len(recs))
	respondJSON(w, http.StatusOK, models.Success(recs, elapsed).WithCount(len(recs)))
}
