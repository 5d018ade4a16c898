// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import "strings"

// FeatureVector is a sparse weighted feature map derived from a recipe.
type FeatureVector map[string]float64

// Feature weights. They are fixed so that scores stay comparable across calls.
const (
	ingredientWeight = 1.0
	categoryWeight   = 2.0
	tagWeight        = 1.5
	timeWeight       = 1.0
	difficultyWeight = 1.0
)

// Cooking time buckets in minutes.
const (
	quickMaxMinutes  = 15
	mediumMaxMinutes = 30
)

// ExtractFeatures converts a recipe into its feature vector.
// Missing attributes simply produce no keys.
//
//nolint:gocritic // hugeParam: recipe passed by value, callers hold values
func ExtractFeatures(r Recipe) FeatureVector {
	fv := make(FeatureVector, len(r.Ingredients)+len(r.Tags)+3)

	for _, ing := range r.Ingredients {
		if name := normalizeName(ing.Name); name != "" {
			fv["ingredient:"+name] = ingredientWeight
		}
	}

	if cat := normalizeName(r.Category); cat != "" {
		fv["category:"+cat] = categoryWeight
	}

	for _, tag := range r.Tags {
		if t := normalizeName(tag); t != "" {
			fv["tag:"+t] = tagWeight
		}
	}

	if bucket := timeBucket(r.CookingTime); bucket != "" {
		fv["time:"+bucket] = timeWeight
	}

	if d := normalizeName(r.Difficulty); d != "" {
		fv["difficulty:"+d] = difficultyWeight
	}

	return fv
}

// timeBucket maps minutes to quick/medium/long. Unknown times have no bucket.
func timeBucket(minutes int) string {
	switch {
	case minutes <= 0:
		return ""
	case minutes <= quickMaxMinutes:
		return "quick"
	case minutes <= mediumMaxMinutes:
		return "medium"
	default:
		return "long"
	}
}

// normalizeName lower-cases and trims an attribute value.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// hasTag reports whether the recipe carries the (normalized) tag.
func hasTag(r *Recipe, tag string) bool {
	for _, t := range r.Tags {
		if normalizeName(t) == tag {
			return true
		}
	}
	return false
}
