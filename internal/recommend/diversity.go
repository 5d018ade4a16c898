// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

// applyCategoryCap selects up to limit items from a list already sorted by
// score, keeping at most maxPerCategory items per category. Uncategorized
// recipes are not capped. If the cap leaves fewer than limit items, the
// skipped items are appended in their sorted order until limit is reached.
//
//nolint:gocritic // rangeValCopy: ScoredRecipe copied in range, acceptable for clarity
func applyCategoryCap(items []ScoredRecipe, limit, maxPerCategory int) []ScoredRecipe {
	if limit <= 0 || len(items) == 0 {
		return []ScoredRecipe{}
	}
	if limit > len(items) {
		limit = len(items)
	}

	selected := make([]ScoredRecipe, 0, limit)
	skipped := make([]ScoredRecipe, 0)
	perCategory := make(map[string]int)

	for _, item := range items {
		if len(selected) == limit {
			break
		}
		category := normalizeName(item.Recipe.Category)
		if category != "" && perCategory[category] >= maxPerCategory {
			skipped = append(skipped, item)
			continue
		}
		perCategory[category]++
		selected = append(selected, item)
	}

	// Backfill ignores the cap.
	for _, item := range skipped {
		if len(selected) == limit {
			break
		}
		selected = append(selected, item)
	}

	return selected
}
