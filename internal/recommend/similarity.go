// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"math"
	"sort"
)

// Jaccard returns |a ∩ b| / |a ∪ b|. An empty union yields 0.
func Jaccard(a, b map[string]struct{}) float64 {
	// Iterate the smaller set for the intersection.
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Cosine returns the cosine similarity of two feature vectors.
// It is 0 when either vector is empty or the vectors share no key.
// Keys are summed in sorted order so Cosine(a, b) == Cosine(b, a) exactly.
func Cosine(v1, v2 FeatureVector) float64 {
	var dot float64
	for _, k := range sortedKeys(v1) {
		if w2, ok := v2[k]; ok {
			dot += v1[k] * w2
		}
	}

	norm1, norm2 := squaredNorm(v1), squaredNorm(v2)

	if dot == 0 || norm1 == 0 || norm2 == 0 {
		return 0
	}

	return clamp01(dot / (math.Sqrt(norm1) * math.Sqrt(norm2)))
}

func squaredNorm(v FeatureVector) float64 {
	var sum float64
	for _, k := range sortedKeys(v) {
		sum += v[k] * v[k]
	}
	return sum
}

func sortedKeys(v FeatureVector) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// recipeSet returns the distinct recipe IDs appearing in a history.
func recipeSet(history []ActivityRecord) map[string]struct{} {
	set := make(map[string]struct{}, len(history))
	for i := range history {
		set[history[i].RecipeID] = struct{}{}
	}
	return set
}

// clamp01 bounds x to [0, 1].
func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
