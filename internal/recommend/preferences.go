// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"context"
	"math"
	"sort"
)

// Profile sizes.
const (
	topIngredients = 10
	topCategories  = 5
	topTags        = 10
)

// UserPreferences aggregates the user's history into a preference profile.
// A user without history gets a zero-valued profile.
func (e *Engine) UserPreferences(ctx context.Context, userID string, catalog []Recipe) (*UserPreferences, error) {
	prefs := &UserPreferences{
		UserID:         userID,
		TopIngredients: []PreferenceCount{},
		TopCategories:  []PreferenceCount{},
		TopTags:        []PreferenceCount{},
	}

	history := e.log.History(userID)
	if len(history) == 0 {
		return prefs, nil
	}
	prefs.TotalActivities = len(history)

	s := e.newScorer(catalog)

	ingredients := make(map[string]int)
	categories := make(map[string]int)
	tags := make(map[string]int)
	difficulties := make(map[string]int)
	var cookTimeSum, cookTimeCount int

	// Every resolved record counts, so repeat interactions weigh more.
	for _, rec := range history {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, ok := s.catalog[rec.RecipeID]
		if !ok {
			continue
		}

		for _, ing := range r.Ingredients {
			countName(ingredients, ing.Name)
		}
		countName(categories, r.Category)
		for _, t := range r.Tags {
			countName(tags, t)
		}
		countName(difficulties, r.Difficulty)
		if r.CookingTime > 0 {
			cookTimeSum += r.CookingTime
			cookTimeCount++
		}
	}

	prefs.TopIngredients = topCounts(ingredients, topIngredients)
	prefs.TopCategories = topCounts(categories, topCategories)
	prefs.TopTags = topCounts(tags, topTags)
	if best := topCounts(difficulties, 1); len(best) == 1 {
		prefs.PreferredDifficulty = best[0].Name
	}
	if cookTimeCount > 0 {
		prefs.AverageCookingTime = int(math.Round(float64(cookTimeSum) / float64(cookTimeCount)))
	}

	cutoff := s.now.Add(-e.config.Windows.RecentCooked)
	for _, rec := range history {
		if rec.Type == ActivityCooked && !rec.Timestamp.Before(cutoff) {
			prefs.RecentCookedCount++
		}
	}

	return prefs, nil
}

func countName(counts map[string]int, name string) {
	if n := normalizeName(name); n != "" {
		counts[n]++
	}
}

// topCounts returns the n most frequent names, ties broken alphabetically.
func topCounts(counts map[string]int, n int) []PreferenceCount {
	out := make([]PreferenceCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, PreferenceCount{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
