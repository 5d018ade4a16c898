// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Reason fragments attached to recommendations.
const (
	reasonTaste          = "matches your taste"
	reasonSimilarUsers   = "popular with similar users"
	reasonRising         = "rising in popularity"
	reasonQuick          = "quick to make"
	reasonEasy           = "easy to prepare"
	reasonHealthy        = "healthy choice"
	reasonDefault        = "recommended for you"
	reasonPopularRecent  = "popular recently"
	reasonSimilarRecipe  = "similar ingredients and style"
	strongContentScore   = 0.7
	strongCollabScore    = 0.7
	strongTrendScore     = 0.5
	percentageMultiplier = 100
)

// Engine produces recipe recommendations from the activity log.
// It never mutates the caller's catalog. It is safe for concurrent use.
type Engine struct {
	config *Config
	log    *ActivityLog
	logger zerolog.Logger
	now    func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the clock used for time windows.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a recommendation engine over an activity log.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, log *ActivityLog, logger zerolog.Logger, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		return nil, fmt.Errorf("activity log is nil")
	}

	e := &Engine{
		config: cfg.Clone(),
		log:    log,
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Log returns the underlying activity log.
func (e *Engine) Log() *ActivityLog {
	return e.log
}

// RecordActivity appends an activity for the user. See ActivityLog.RecordActivity.
func (e *Engine) RecordActivity(ctx context.Context, userID, recipeID string, activityType ActivityType, md Metadata) (ActivityRecord, error) {
	return e.log.RecordActivity(ctx, userID, recipeID, activityType, md)
}

// SubmitFeedback appends explicit feedback for the user. See ActivityLog.SubmitFeedback.
func (e *Engine) SubmitFeedback(ctx context.Context, userID, recipeID string, feedbackType FeedbackType, md Metadata) (FeedbackRecord, error) {
	return e.log.SubmitFeedback(ctx, userID, recipeID, feedbackType, md)
}

// History returns the user's activity records in insertion order.
func (e *Engine) History(userID string) []ActivityRecord {
	return e.log.History(userID)
}

// FeedbackHistory returns the user's feedback records in insertion order.
func (e *Engine) FeedbackHistory(userID string) []FeedbackRecord {
	return e.log.FeedbackHistory(userID)
}

// CollaborativeScore returns the similar-user score of a recipe for a user.
func (e *Engine) CollaborativeScore(userID, recipeID string, catalog []Recipe) float64 {
	return e.newScorer(catalog).collaborative(userID, recipeID)
}

// ContentScore returns the feature-similarity score of a recipe for a user.
//
//nolint:gocritic // hugeParam: recipe passed by value for immutability
func (e *Engine) ContentScore(userID string, recipe Recipe, catalog []Recipe) float64 {
	return e.newScorer(catalog).content(userID, &recipe)
}

// TrendScore returns the cross-household popularity of a recipe.
func (e *Engine) TrendScore(recipeID string) float64 {
	return e.newScorer(nil).trendScore(recipeID)
}

// DiversityPenalty returns how much of the user's recent history shares the
// recipe's category.
//
//nolint:gocritic // hugeParam: recipe passed by value for immutability
func (e *Engine) DiversityPenalty(userID string, recipe Recipe, catalog []Recipe) float64 {
	return e.newScorer(catalog).diversityPenalty(userID, &recipe)
}

// PersonalizedRecommendations ranks candidates for a user. Users without any
// history receive the trending ranking.
func (e *Engine) PersonalizedRecommendations(ctx context.Context, userID string, candidates []Recipe, limit int) ([]ScoredRecipe, error) {
	start := e.now()
	limit = e.clampLimit(limit)
	candidates = uniqueCandidates(candidates)

	s := e.newScorer(candidates)
	if len(s.histories[userID]) == 0 {
		e.logger.Debug().Str("user_id", userID).Msg("no history, falling back to trending")
		return e.rankTrending(ctx, s, candidates, limit)
	}

	excluded := s.excludedRecipes(userID)
	scored := make([]ScoredRecipe, 0, len(candidates))
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := &candidates[i]
		if _, skip := excluded[r.ID]; skip {
			continue
		}
		scored = append(scored, e.scorePersonalized(s, userID, r))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	result := applyCategoryCap(scored, limit, e.config.Diversity.MaxPerCategory)

	e.logger.Debug().
		Str("user_id", userID).
		Int("candidates", len(candidates)).
		Int("excluded", len(excluded)).
		Int("users_scanned", len(s.users)).
		Int("returned", len(result)).
		Dur("latency", e.now().Sub(start)).
		Msg("personalized recommendations complete")

	return result, nil
}

// scorePersonalized computes the combined score, reason and match percentage.
func (e *Engine) scorePersonalized(s *scorer, userID string, r *Recipe) ScoredRecipe {
	scores := ComponentScores{
		Collaborative:    s.collaborative(userID, r.ID),
		Content:          s.content(userID, r),
		Trend:            s.trendScore(r.ID),
		DiversityPenalty: s.diversityPenalty(userID, r),
	}

	w := e.config.Weights
	total := w.Collaborative*scores.Collaborative +
		w.Content*scores.Content +
		w.Trend*scores.Trend -
		w.Diversity*scores.DiversityPenalty

	return ScoredRecipe{
		Recipe:          *r,
		Score:           total,
		Scores:          scores,
		Reason:          buildReason(r, scores),
		MatchPercentage: toPercentage(total),
	}
}

// buildReason explains a recommendation from its dominant components and the
// recipe's own attributes.
func buildReason(r *Recipe, scores ComponentScores) string {
	reasons := make([]string, 0, 4)
	if scores.Content > strongContentScore {
		reasons = append(reasons, reasonTaste)
	}
	if scores.Collaborative > strongCollabScore {
		reasons = append(reasons, reasonSimilarUsers)
	}
	if scores.Trend > strongTrendScore {
		reasons = append(reasons, reasonRising)
	}
	if hasTag(r, "quick") || (r.CookingTime > 0 && r.CookingTime <= quickMaxMinutes) {
		reasons = append(reasons, reasonQuick)
	}
	if hasTag(r, "easy") || normalizeName(r.Difficulty) == "easy" {
		reasons = append(reasons, reasonEasy)
	}
	if hasTag(r, "healthy") {
		reasons = append(reasons, reasonHealthy)
	}

	if len(reasons) == 0 {
		return reasonDefault
	}
	return strings.Join(reasons, ", ")
}

// TrendingRecommendations ranks candidates by trend score alone.
func (e *Engine) TrendingRecommendations(ctx context.Context, candidates []Recipe, limit int) ([]ScoredRecipe, error) {
	limit = e.clampLimit(limit)
	candidates = uniqueCandidates(candidates)
	return e.rankTrending(ctx, e.newScorer(candidates), candidates, limit)
}

func (e *Engine) rankTrending(ctx context.Context, s *scorer, candidates []Recipe, limit int) ([]ScoredRecipe, error) {
	scored := make([]ScoredRecipe, 0, len(candidates))
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		trend := s.trendScore(candidates[i].ID)
		scored = append(scored, ScoredRecipe{
			Recipe:          candidates[i],
			Score:           trend,
			Scores:          ComponentScores{Trend: trend},
			Reason:          reasonPopularRecent,
			MatchPercentage: toPercentage(trend),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// SimilarRecipes ranks the other candidates by feature similarity to the
// recipe with the given ID. An ID not present in candidates yields no results.
func (e *Engine) SimilarRecipes(ctx context.Context, recipeID string, candidates []Recipe, limit int) ([]ScoredRecipe, error) {
	limit = e.clampLimit(limit)
	candidates = uniqueCandidates(candidates)

	var target *Recipe
	for i := range candidates {
		if candidates[i].ID == recipeID {
			target = &candidates[i]
			break
		}
	}
	if target == nil {
		return []ScoredRecipe{}, nil
	}

	targetFeatures := ExtractFeatures(*target)
	scored := make([]ScoredRecipe, 0, len(candidates))
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := &candidates[i]
		if r.ID == recipeID {
			continue
		}
		sim := Cosine(targetFeatures, ExtractFeatures(*r))
		scored = append(scored, ScoredRecipe{
			Recipe:          *r,
			Score:           sim,
			Scores:          ComponentScores{Content: sim},
			Reason:          reasonSimilarRecipe,
			MatchPercentage: int(math.Round(sim * percentageMultiplier)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// uniqueCandidates drops repeated recipe IDs, keeping the first entry for
// each ID as the scorer's catalog does.
func uniqueCandidates(candidates []Recipe) []Recipe {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Recipe, 0, len(candidates))
	for i := range candidates {
		if _, dup := seen[candidates[i].ID]; dup {
			continue
		}
		seen[candidates[i].ID] = struct{}{}
		out = append(out, candidates[i])
	}
	return out
}

// newScorer builds a scorer over the current log snapshot.
func (e *Engine) newScorer(catalog []Recipe) *scorer {
	return newScorer(e.config, e.now(), e.log.snapshot(), catalog)
}

// clampLimit applies the default and maximum result limits.
func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return e.config.Limits.DefaultLimit
	}
	if limit > e.config.Limits.MaxLimit {
		return e.config.Limits.MaxLimit
	}
	return limit
}

// toPercentage renders a score as a 0-100 integer.
func toPercentage(score float64) int {
	p := int(math.Round(score * percentageMultiplier))
	switch {
	case p < 0:
		return 0
	case p > percentageMultiplier:
		return percentageMultiplier
	default:
		return p
	}
}
