// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"sort"
	"time"
)

// Implicit rating contributions per activity type.
const (
	cookedContribution        = 1.0
	favoritedContribution     = 0.8
	viewedContribution        = 0.1
	notInterestedContribution = -0.5
	maxStarRating             = 5.0
)

// neighbor is a similar user and their Jaccard similarity.
type neighbor struct {
	userID     string
	similarity float64
}

// scorer evaluates the four scoring components over one consistent view of
// the activity log. It is built per request and is not safe for concurrent use.
type scorer struct {
	cfg        *Config
	now        time.Time
	histories  map[string][]ActivityRecord
	users      []string // sorted, users with at least one record
	catalog    map[string]*Recipe
	features   map[string]FeatureVector
	recipeSets map[string]map[string]struct{}
	neighbors  map[string][]neighbor
	liked      map[string][]*Recipe
	trend      map[string]int
}

// newScorer builds a scorer. Catalog entries with an empty ID are ignored;
// for duplicate IDs the first entry wins.
func newScorer(cfg *Config, now time.Time, histories map[string][]ActivityRecord, catalog []Recipe) *scorer {
	s := &scorer{
		cfg:        cfg,
		now:        now,
		histories:  histories,
		catalog:    make(map[string]*Recipe, len(catalog)),
		features:   make(map[string]FeatureVector, len(catalog)),
		recipeSets: make(map[string]map[string]struct{}, len(histories)),
		neighbors:  make(map[string][]neighbor),
		liked:      make(map[string][]*Recipe),
	}

	for i := range catalog {
		r := &catalog[i]
		if r.ID == "" {
			continue
		}
		if _, dup := s.catalog[r.ID]; !dup {
			s.catalog[r.ID] = r
		}
	}

	s.users = make([]string, 0, len(histories))
	for id := range histories {
		s.users = append(s.users, id)
	}
	sort.Strings(s.users)

	return s
}

// featuresOf returns the (cached) feature vector of a recipe.
func (s *scorer) featuresOf(r *Recipe) FeatureVector {
	if fv, ok := s.features[r.ID]; ok {
		return fv
	}
	fv := ExtractFeatures(*r)
	if r.ID != "" {
		s.features[r.ID] = fv
	}
	return fv
}

// recipeSetOf returns the distinct recipe IDs in a user's whole log.
func (s *scorer) recipeSetOf(userID string) map[string]struct{} {
	if set, ok := s.recipeSets[userID]; ok {
		return set
	}
	set := recipeSet(s.histories[userID])
	s.recipeSets[userID] = set
	return set
}

// similarUsers returns up to Neighbors.K users with Jaccard similarity > 0,
// most similar first. Ties keep ascending user ID order.
func (s *scorer) similarUsers(userID string) []neighbor {
	if n, ok := s.neighbors[userID]; ok {
		return n
	}

	target := s.recipeSetOf(userID)
	found := make([]neighbor, 0)
	if len(target) > 0 {
		for _, other := range s.users {
			if other == userID {
				continue
			}
			if sim := Jaccard(target, s.recipeSetOf(other)); sim > 0 {
				found = append(found, neighbor{userID: other, similarity: sim})
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].similarity > found[j].similarity
	})
	if len(found) > s.cfg.Neighbors.K {
		found = found[:s.cfg.Neighbors.K]
	}

	s.neighbors[userID] = found
	return found
}

// collaborative returns the similarity-weighted mean implicit rating that the
// user's nearest neighbors gave the recipe. Neighbors without any record for
// the recipe do not contribute to either sum.
func (s *scorer) collaborative(userID, recipeID string) float64 {
	var weighted, totalSim float64
	for _, n := range s.similarUsers(userID) {
		rating, ok := implicitRating(s.histories[n.userID], recipeID)
		if !ok {
			continue
		}
		weighted += rating * n.similarity
		totalSim += n.similarity
	}
	if totalSim == 0 {
		return 0
	}
	return weighted / totalSim
}

// implicitRating folds a user's records for one recipe into a [0, 1]
// preference strength. ok is false when the user never touched the recipe.
func implicitRating(history []ActivityRecord, recipeID string) (rating float64, ok bool) {
	for i := range history {
		rec := &history[i]
		if rec.RecipeID != recipeID {
			continue
		}
		ok = true
		rating += implicitContribution(rec)
	}
	return clamp01(rating), ok
}

// implicitContribution is the signed contribution of one record.
// Every ActivityType is listed; new types must be added here.
func implicitContribution(rec *ActivityRecord) float64 {
	switch rec.Type {
	case ActivityCooked:
		return cookedContribution
	case ActivityFavorited:
		return favoritedContribution
	case ActivityRated:
		stars, _ := rec.Metadata.Rating()
		return stars / maxStarRating
	case ActivityViewed:
		return viewedContribution
	case ActivityNotInterested:
		return notInterestedContribution
	case ActivityDismissed, ActivityInterested:
		return 0
	}
	return 0
}

// likedRecipes returns the distinct catalog recipes the user cooked,
// favorited or rated, in first-interaction order.
func (s *scorer) likedRecipes(userID string) []*Recipe {
	if liked, ok := s.liked[userID]; ok {
		return liked
	}

	seen := make(map[string]struct{})
	liked := make([]*Recipe, 0)
	for _, rec := range s.histories[userID] {
		switch rec.Type {
		case ActivityCooked, ActivityFavorited, ActivityRated:
		default:
			continue
		}
		if _, dup := seen[rec.RecipeID]; dup {
			continue
		}
		r, ok := s.catalog[rec.RecipeID]
		if !ok {
			continue
		}
		seen[rec.RecipeID] = struct{}{}
		liked = append(liked, r)
	}

	s.liked[userID] = liked
	return liked
}

// content returns the mean cosine similarity between the candidate and every
// recipe the user liked.
func (s *scorer) content(userID string, candidate *Recipe) float64 {
	liked := s.likedRecipes(userID)
	if len(liked) == 0 {
		return 0
	}

	fv := s.featuresOf(candidate)
	var sum float64
	for _, r := range liked {
		sum += Cosine(fv, s.featuresOf(r))
	}
	return sum / float64(len(liked))
}

// trendScore returns recent cross-user interactions with the recipe divided
// by the number of tracked users.
func (s *scorer) trendScore(recipeID string) float64 {
	if s.trend == nil {
		s.buildTrendCounts()
	}
	users := len(s.users)
	if users < 1 {
		users = 1
	}
	return clamp01(float64(s.trend[recipeID]) / float64(users))
}

func (s *scorer) buildTrendCounts() {
	cutoff := s.now.Add(-s.cfg.Windows.Trend)
	s.trend = make(map[string]int)
	for _, history := range s.histories {
		for i := range history {
			if !history[i].Timestamp.Before(cutoff) {
				s.trend[history[i].RecipeID]++
			}
		}
	}
}

// diversityPenalty returns the fraction of the user's recent records whose
// recipe shares the candidate's category. Unresolvable records count toward
// the denominator only.
func (s *scorer) diversityPenalty(userID string, candidate *Recipe) float64 {
	category := normalizeName(candidate.Category)
	if category == "" {
		return 0
	}

	cutoff := s.now.Add(-s.cfg.Windows.Recent)
	var recent, matching int
	for _, rec := range s.histories[userID] {
		if rec.Timestamp.Before(cutoff) {
			continue
		}
		recent++
		if r, ok := s.catalog[rec.RecipeID]; ok && normalizeName(r.Category) == category {
			matching++
		}
	}

	if recent == 0 {
		return 0
	}
	return float64(matching) / float64(recent)
}

// excludedRecipes returns recipes the user marked not interested within the
// exclusion window.
func (s *scorer) excludedRecipes(userID string) map[string]struct{} {
	cutoff := s.now.Add(-s.cfg.Windows.Exclusion)
	excluded := make(map[string]struct{})
	for _, rec := range s.histories[userID] {
		if rec.Type != ActivityNotInterested {
			continue
		}
		if !rec.Timestamp.Before(cutoff) {
			excluded[rec.RecipeID] = struct{}{}
		}
	}
	return excluded
}
