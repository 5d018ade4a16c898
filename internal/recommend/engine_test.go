// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package recommend

import (
	"context"
	"math"
	"reflect"
	"testing"
	"time"
)

const epsilon = 1e-9

func TestNewEngine(t *testing.T) {
	log := newTestLog(t, newFakeStore(), newTestClock())

	tests := []struct {
		name    string
		cfg     *Config
		log     *ActivityLog
		wantErr bool
	}{
		{"nil config uses defaults", nil, log, false},
		{"valid config", DefaultConfig(), log, false},
		{"invalid config", &Config{}, log, true},
		{"nil log", DefaultConfig(), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.cfg, tt.log, testLogger())
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if e.Config().Neighbors.K != 5 {
				t.Errorf("Config().Neighbors.K = %d", e.Config().Neighbors.K)
			}
		})
	}
}

func TestEngine_ConfigIsCopied(t *testing.T) {
	cfg := DefaultConfig()
	e, err := NewEngine(cfg, newTestLog(t, newFakeStore(), newTestClock()), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Weights.Content = 0
	e.Config().Weights.Trend = 0

	if got := e.Config().Weights; got.Content != 0.5 || got.Trend != 0.1 {
		t.Errorf("engine config changed through caller copies: %+v", got)
	}
}

func TestEngine_ContentWithoutSimilarUsers(t *testing.T) {
	e, _, clock := newTestEngine(t)
	catalog := []Recipe{
		{ID: "recipe_A", Category: "thai", Ingredients: ingredients("basil")},
		{ID: "recipe_B", Category: "thai", Ingredients: ingredients("lime")},
		{ID: "recipe_C", Category: "thai", Ingredients: ingredients("peanuts")},
	}

	record(t, e, clock, "u1", "recipe_A", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "u1", "recipe_B", ActivityFavorited, time.Hour, nil)

	if got := e.ContentScore("u1", catalog[2], catalog); got <= 0 {
		t.Errorf("ContentScore() = %v, want > 0", got)
	}
	if got := e.CollaborativeScore("u1", "recipe_C", nil); got != 0 {
		t.Errorf("CollaborativeScore() = %v, want 0", got)
	}
}

func TestEngine_CollaborativeScore(t *testing.T) {
	e, _, clock := newTestEngine(t)

	record(t, e, clock, "alice", "r1", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "alice", "r2", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "bob", "r1", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "bob", "r2", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "bob", "r3", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "carol", "r1", ActivityViewed, time.Hour, nil)
	record(t, e, clock, "carol", "r3", ActivityViewed, time.Hour, nil)
	record(t, e, clock, "dave", "r9", ActivityCooked, time.Hour, nil)

	// bob: sim 2/3, rating 1.0. carol: sim 1/3, rating 0.1. dave: no overlap.
	want := (1.0*(2.0/3.0) + 0.1*(1.0/3.0)) / (2.0/3.0 + 1.0/3.0)
	if got := e.CollaborativeScore("alice", "r3", nil); math.Abs(got-want) > epsilon {
		t.Errorf("CollaborativeScore(alice, r3) = %v, want %v", got, want)
	}

	// Neighbors without records for the recipe do not dilute the score.
	if got := e.CollaborativeScore("alice", "r9", nil); got != 0 {
		t.Errorf("CollaborativeScore(alice, r9) = %v, want 0", got)
	}
	if got := e.CollaborativeScore("nobody", "r1", nil); got != 0 {
		t.Errorf("CollaborativeScore(nobody, r1) = %v, want 0", got)
	}
}

func TestEngine_SimilarUsersTopK(t *testing.T) {
	e, _, clock := newTestEngine(t)

	record(t, e, clock, "target", "shared", ActivityViewed, time.Hour, nil)
	// Seven equally similar users (Jaccard 1/2); only the first five by ID
	// are consulted.
	for _, u := range []string{"u7", "u6", "u5", "u4", "u3", "u2", "u1"} {
		record(t, e, clock, u, "shared", ActivityViewed, time.Hour, nil)
		filler := "f-" + u
		if u == "u6" || u == "u7" {
			filler = "pick"
		}
		record(t, e, clock, u, filler, ActivityCooked, time.Hour, nil)
	}

	s := e.newScorer(nil)
	neighbors := s.similarUsers("target")
	if len(neighbors) != 5 {
		t.Fatalf("len(neighbors) = %d, want 5", len(neighbors))
	}
	got := make([]string, len(neighbors))
	for i, n := range neighbors {
		got[i] = n.userID
	}
	if want := []string{"u1", "u2", "u3", "u4", "u5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("neighbors = %v, want %v", got, want)
	}

	// u6 and u7 dropped out of the neighborhood, so "pick" scores 0.
	if score := s.collaborative("target", "pick"); score != 0 {
		t.Errorf("collaborative(target, pick) = %v, want 0", score)
	}
}

func TestImplicitRating_Clipped(t *testing.T) {
	var many []ActivityRecord
	for i := 0; i < 20; i++ {
		many = append(many,
			ActivityRecord{RecipeID: "r", Type: ActivityCooked},
			ActivityRecord{RecipeID: "r", Type: ActivityFavorited},
			ActivityRecord{RecipeID: "r", Type: ActivityRated, Metadata: Metadata{"rating": NumberValue(5)}},
		)
	}

	var negative []ActivityRecord
	for i := 0; i < 10; i++ {
		negative = append(negative, ActivityRecord{RecipeID: "r", Type: ActivityNotInterested})
	}

	tests := []struct {
		name    string
		history []ActivityRecord
		want    float64
		wantOK  bool
	}{
		{"no records", nil, 0, false},
		{"other recipe only", []ActivityRecord{{RecipeID: "x", Type: ActivityCooked}}, 0, false},
		{"many positive", many, 1, true},
		{"many negative", negative, 0, true},
		{"viewed", []ActivityRecord{{RecipeID: "r", Type: ActivityViewed}}, 0.1, true},
		{"rated 3", []ActivityRecord{{RecipeID: "r", Type: ActivityRated, Metadata: Metadata{"rating": NumberValue(3)}}}, 0.6, true},
		{"rated without rating", []ActivityRecord{{RecipeID: "r", Type: ActivityRated}}, 0, true},
		{"rating out of scale", []ActivityRecord{{RecipeID: "r", Type: ActivityRated, Metadata: Metadata{"rating": NumberValue(50)}}}, 1, true},
		{"favorited then not interested", []ActivityRecord{
			{RecipeID: "r", Type: ActivityFavorited},
			{RecipeID: "r", Type: ActivityNotInterested},
		}, 0.3, true},
		{"dismissed and interested add nothing", []ActivityRecord{
			{RecipeID: "r", Type: ActivityDismissed},
			{RecipeID: "r", Type: ActivityInterested},
		}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := implicitRating(tt.history, "r")
			if math.Abs(got-tt.want) > epsilon || ok != tt.wantOK {
				t.Errorf("implicitRating() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
			if got < 0 || got > 1 {
				t.Errorf("implicitRating() = %v out of [0,1]", got)
			}
		})
	}
}

func TestEngine_TrendScore(t *testing.T) {
	e, _, clock := newTestEngine(t)

	record(t, e, clock, "alice", "r1", ActivityViewed, time.Hour, nil)
	record(t, e, clock, "bob", "r1", ActivityCooked, 2*24*time.Hour, nil)
	record(t, e, clock, "bob", "r2", ActivityCooked, 2*24*time.Hour, nil)
	record(t, e, clock, "carol", "r2", ActivityCooked, 40*24*time.Hour, nil)
	record(t, e, clock, "carol", "r1", ActivityViewed, 29*24*time.Hour, nil)
	record(t, e, clock, "carol", "r1", ActivityCooked, 29*24*time.Hour, nil)

	tests := []struct {
		recipe string
		want   float64
	}{
		{"r1", 1},         // 4 recent records / 3 users, clipped
		{"r2", 1.0 / 3.0}, // carol's record is outside the window
		{"r3", 0},
	}

	for _, tt := range tests {
		if got := e.TrendScore(tt.recipe); math.Abs(got-tt.want) > epsilon {
			t.Errorf("TrendScore(%s) = %v, want %v", tt.recipe, got, tt.want)
		}
	}
}

func TestEngine_TrendScore_EmptyLog(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if got := e.TrendScore("r1"); got != 0 {
		t.Errorf("TrendScore() = %v, want 0", got)
	}
}

func TestEngine_DiversityPenalty(t *testing.T) {
	e, _, clock := newTestEngine(t)
	catalog := testCatalog()

	record(t, e, clock, "alice", "pad-thai", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "alice", "green-curry", ActivityViewed, 2*24*time.Hour, nil)
	record(t, e, clock, "alice", "carbonara", ActivityViewed, 3*24*time.Hour, nil)
	record(t, e, clock, "alice", "ghost", ActivityViewed, 4*24*time.Hour, nil)
	record(t, e, clock, "alice", "larb", ActivityCooked, 10*24*time.Hour, nil)

	tests := []struct {
		name   string
		recipe Recipe
		want   float64
	}{
		{"same category", Recipe{ID: "tom-yum", Category: "thai"}, 0.5},
		{"case-insensitive category", Recipe{ID: "x", Category: "THAI"}, 0.5},
		{"other category", Recipe{ID: "risotto", Category: "italian"}, 0.25},
		{"unseen category", Recipe{ID: "tacos", Category: "mexican"}, 0},
		{"no category", Recipe{ID: "plain"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.DiversityPenalty("alice", tt.recipe, catalog); math.Abs(got-tt.want) > epsilon {
				t.Errorf("DiversityPenalty() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := e.DiversityPenalty("nobody", catalog[0], catalog); got != 0 {
		t.Errorf("DiversityPenalty(nobody) = %v, want 0", got)
	}
}

func TestEngine_EmptyHistoryEqualsTrending(t *testing.T) {
	e, _, clock := newTestEngine(t)
	ctx := context.Background()
	catalog := testCatalog()

	record(t, e, clock, "alice", "tacos", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "bob", "tacos", ActivityViewed, time.Hour, nil)
	record(t, e, clock, "bob", "larb", ActivityViewed, time.Hour, nil)

	for _, limit := range []int{0, 1, 3, 100} {
		personalized, err := e.PersonalizedRecommendations(ctx, "newcomer", catalog, limit)
		if err != nil {
			t.Fatalf("PersonalizedRecommendations() error = %v", err)
		}
		trending, err := e.TrendingRecommendations(ctx, catalog, limit)
		if err != nil {
			t.Fatalf("TrendingRecommendations() error = %v", err)
		}
		if !reflect.DeepEqual(personalized, trending) {
			t.Errorf("limit %d: personalized %v != trending %v", limit, recipeIDs(personalized), recipeIDs(trending))
		}
	}
}

func TestEngine_TrendingRecommendations(t *testing.T) {
	e, _, clock := newTestEngine(t)
	ctx := context.Background()
	catalog := testCatalog()

	record(t, e, clock, "alice", "tacos", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "bob", "tacos", ActivityViewed, time.Hour, nil)
	record(t, e, clock, "bob", "larb", ActivityViewed, time.Hour, nil)

	first, err := e.TrendingRecommendations(ctx, catalog, 3)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.TrendingRecommendations(ctx, catalog, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("trending results differ across identical calls")
	}

	// larb and the rest tie on 0 trend after tacos; ties keep candidate order.
	want := []string{"tacos", "larb", "pad-thai"}
	if got := recipeIDs(first); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if first[0].Reason != "popular recently" || first[0].MatchPercentage != 100 {
		t.Errorf("top item = %+v", first[0])
	}
	if first[1].MatchPercentage != 50 {
		t.Errorf("larb MatchPercentage = %d, want 50", first[1].MatchPercentage)
	}
}

func TestEngine_PersonalizedRecommendations(t *testing.T) {
	e, _, clock := newTestEngine(t)
	ctx := context.Background()
	catalog := testCatalog()

	record(t, e, clock, "alice", "pad-thai", ActivityCooked, 10*24*time.Hour, nil)
	record(t, e, clock, "alice", "green-curry", ActivityFavorited, 10*24*time.Hour, nil)
	record(t, e, clock, "bob", "pad-thai", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "bob", "tom-yum", ActivityCooked, time.Hour, nil)

	recs, err := e.PersonalizedRecommendations(ctx, "alice", catalog, 100)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations() error = %v", err)
	}
	if len(recs) != len(catalog) {
		t.Fatalf("len = %d, want %d", len(recs), len(catalog))
	}

	cfg := e.Config()
	for _, r := range recs {
		s := r.Scores
		want := cfg.Weights.Collaborative*s.Collaborative + cfg.Weights.Content*s.Content +
			cfg.Weights.Trend*s.Trend - cfg.Weights.Diversity*s.DiversityPenalty
		if math.Abs(r.Score-want) > epsilon {
			t.Errorf("%s: Score = %v, want %v", r.Recipe.ID, r.Score, want)
		}
		if r.MatchPercentage < 0 || r.MatchPercentage > 100 {
			t.Errorf("%s: MatchPercentage = %d", r.Recipe.ID, r.MatchPercentage)
		}
		if r.Reason == "" {
			t.Errorf("%s: empty reason", r.Recipe.ID)
		}
	}

	// pad-thai and tom-yum were cooked by alice's only neighbor. larb is the
	// fourth thai recipe, so the category cap pushes it to the end.
	if got := recipeIDs(recs[:3]); !reflect.DeepEqual(got, []string{"pad-thai", "tom-yum", "green-curry"}) {
		t.Errorf("top three = %v, want [pad-thai tom-yum green-curry]", got)
	}
	if last := recs[len(recs)-1].Recipe.ID; last != "larb" {
		t.Errorf("last = %s, want larb (order %v)", last, recipeIDs(recs))
	}

	tomYum := recs[1]
	if tomYum.Scores.Collaborative != 1 {
		t.Errorf("tom-yum collaborative = %v, want 1", tomYum.Scores.Collaborative)
	}
	if tomYum.Reason != "popular with similar users, easy to prepare" {
		t.Errorf("tom-yum reason = %q", tomYum.Reason)
	}
}

func TestEngine_PersonalizedRecommendations_CategoryCap(t *testing.T) {
	e, _, clock := newTestEngine(t)
	ctx := context.Background()
	catalog := testCatalog()

	record(t, e, clock, "alice", "pad-thai", ActivityCooked, 10*24*time.Hour, nil)
	record(t, e, clock, "alice", "larb", ActivityCooked, 10*24*time.Hour, nil)

	recs, err := e.PersonalizedRecommendations(ctx, "alice", catalog, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 5 {
		t.Fatalf("len = %d, want 5", len(recs))
	}

	thai := 0
	for _, r := range recs {
		if r.Recipe.Category == "thai" {
			thai++
		}
	}
	if thai != 3 {
		t.Errorf("thai recipes = %d, want 3 (order %v)", thai, recipeIDs(recs))
	}
}

func TestEngine_PersonalizedRecommendations_Exclusions(t *testing.T) {
	e, _, clock := newTestEngine(t)
	ctx := context.Background()
	catalog := testCatalog()

	record(t, e, clock, "u1", "pad-thai", ActivityCooked, time.Hour, nil)
	record(t, e, clock, "u1", "risotto", ActivityNotInterested, 40*24*time.Hour, nil)
	record(t, e, clock, "u1", "tacos", ActivityDismissed, 2*24*time.Hour, nil)
	if _, err := e.SubmitFeedback(ctx, "u1", "green-curry", FeedbackNotInterested, nil); err != nil {
		t.Fatal(err)
	}

	recs, err := e.PersonalizedRecommendations(ctx, "u1", catalog, 100)
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string]bool)
	for _, r := range recs {
		got[r.Recipe.ID] = true
	}
	if got["green-curry"] {
		t.Errorf("green-curry should be excluded, got %v", recipeIDs(recs))
	}
	// A dismissed suggestion is only a swipe, not a request to hide it.
	if !got["tacos"] {
		t.Errorf("dismissed tacos should still be recommended, got %v", recipeIDs(recs))
	}
	if !got["risotto"] {
		t.Error("risotto was hidden more than 30 days ago and should be back")
	}

	// The exclusion expires with the window.
	clock.Advance(31 * 24 * time.Hour)
	recs, err = e.PersonalizedRecommendations(ctx, "u1", catalog, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != len(catalog) {
		t.Errorf("after window len = %d, want %d", len(recs), len(catalog))
	}
}

func TestEngine_DuplicateCandidates(t *testing.T) {
	e, _, clock := newTestEngine(t)
	ctx := context.Background()

	a := Recipe{ID: "a", Category: "thai", Ingredients: ingredients("rice", "lime")}
	x := Recipe{ID: "x", Category: "thai", Ingredients: ingredients("rice", "basil")}
	y := Recipe{ID: "y", Category: "italian", Ingredients: ingredients("pasta")}
	record(t, e, clock, "u1", "a", ActivityCooked, time.Hour, nil)

	candidates := []Recipe{a, x, x, y}

	tests := []struct {
		name string
		rank func() ([]ScoredRecipe, error)
		want []string
	}{
		{
			name: "personalized",
			rank: func() ([]ScoredRecipe, error) { return e.PersonalizedRecommendations(ctx, "u1", candidates, 3) },
			want: []string{"a", "x", "y"},
		},
		{
			name: "trending",
			rank: func() ([]ScoredRecipe, error) { return e.TrendingRecommendations(ctx, candidates, 3) },
			want: []string{"a", "x", "y"},
		},
		{
			name: "similar",
			rank: func() ([]ScoredRecipe, error) { return e.SimilarRecipes(ctx, "a", candidates, 3) },
			want: []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := tt.rank()
			if err != nil {
				t.Fatal(err)
			}
			got := recipeIDs(recs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("first entry wins", func(t *testing.T) {
		renamed := x
		renamed.Title = "second copy"
		recs, err := e.TrendingRecommendations(ctx, []Recipe{x, renamed}, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 1 || recs[0].Recipe.Title != x.Title {
			t.Errorf("got %+v, want only the first x", recs)
		}
	})
}

func TestImplicitContribution_EveryType(t *testing.T) {
	want := map[ActivityType]float64{
		ActivityViewed:        0.1,
		ActivityCooked:        1.0,
		ActivityRated:         0.8,
		ActivityFavorited:     0.8,
		ActivityDismissed:     0,
		ActivityNotInterested: -0.5,
		ActivityInterested:    0,
	}
	if len(want) != len(activityTypeNames) {
		t.Fatalf("table covers %d types, %d are declared", len(want), len(activityTypeNames))
	}

	for typ := range activityTypeNames {
		rec := ActivityRecord{RecipeID: "r", Type: typ, Metadata: Metadata{"rating": NumberValue(4)}}
		if got := implicitContribution(&rec); math.Abs(got-want[typ]) > epsilon {
			t.Errorf("implicitContribution(%s) = %v, want %v", typ, got, want[typ])
		}
	}
}

func TestEngine_FeedbackCountsAsActivity(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	catalog := testCatalog()

	if _, err := e.SubmitFeedback(ctx, "alice", "pad-thai", FeedbackCooked, nil); err != nil {
		t.Fatal(err)
	}
	if got := e.ContentScore("alice", catalog[1], catalog); got <= 0 {
		t.Errorf("ContentScore() = %v, want > 0 from feedback-derived activity", got)
	}
	if len(e.History("alice")) != 1 || len(e.FeedbackHistory("alice")) != 1 {
		t.Error("expected one activity and one feedback record")
	}
}

func TestEngine_SimilarRecipes(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()
	catalog := testCatalog()

	t.Run("unknown recipe", func(t *testing.T) {
		recs, err := e.SimilarRecipes(ctx, "missing", catalog, 5)
		if err != nil {
			t.Fatal(err)
		}
		if recs == nil || len(recs) != 0 {
			t.Errorf("SimilarRecipes(missing) = %v, want empty slice", recs)
		}
	})

	t.Run("ranked by cosine", func(t *testing.T) {
		recs, err := e.SimilarRecipes(ctx, "pad-thai", catalog, 3)
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 3 {
			t.Fatalf("len = %d, want 3", len(recs))
		}
		for i, r := range recs {
			if r.Recipe.ID == "pad-thai" {
				t.Error("target recipe included in its own results")
			}
			if r.Reason != "similar ingredients and style" {
				t.Errorf("Reason = %q", r.Reason)
			}
			if r.MatchPercentage != int(math.Round(r.Score*100)) {
				t.Errorf("MatchPercentage = %d for score %v", r.MatchPercentage, r.Score)
			}
			if i > 0 && recs[i-1].Score < r.Score {
				t.Errorf("results not sorted: %v then %v", recs[i-1].Score, r.Score)
			}
		}
		// green-curry shares category and difficulty; carbonara shares only egg.
		if recs[0].Recipe.ID != "green-curry" {
			t.Errorf("top = %s, want green-curry (order %v)", recs[0].Recipe.ID, recipeIDs(recs))
		}
	})
}

func TestEngine_ClampLimit(t *testing.T) {
	e, _, _ := newTestEngine(t)

	tests := []struct {
		in, want int
	}{
		{-1, 10},
		{0, 10},
		{1, 1},
		{50, 50},
		{100, 100},
		{1000, 100},
	}
	for _, tt := range tests {
		if got := e.clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBuildReason(t *testing.T) {
	tests := []struct {
		name   string
		recipe Recipe
		scores ComponentScores
		want   string
	}{
		{"fallback", Recipe{CookingTime: 60}, ComponentScores{}, "recommended for you"},
		{"strong content", Recipe{}, ComponentScores{Content: 0.8}, "matches your taste"},
		{"threshold is exclusive", Recipe{}, ComponentScores{Content: 0.7, Collaborative: 0.7, Trend: 0.5}, "recommended for you"},
		{"all components", Recipe{}, ComponentScores{Content: 0.9, Collaborative: 0.9, Trend: 0.9},
			"matches your taste, popular with similar users, rising in popularity"},
		{"quick by time", Recipe{CookingTime: 15}, ComponentScores{}, "quick to make"},
		{"quick by tag", Recipe{Tags: []string{"Quick"}, CookingTime: 60}, ComponentScores{}, "quick to make"},
		{"easy by difficulty", Recipe{Difficulty: "Easy"}, ComponentScores{}, "easy to prepare"},
		{"easy and healthy", Recipe{Tags: []string{"easy", "healthy"}}, ComponentScores{}, "easy to prepare, healthy choice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildReason(&tt.recipe, tt.scores); got != tt.want {
				t.Errorf("buildReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToPercentage(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{-0.2, 0},
		{0, 0},
		{0.456, 46},
		{1, 100},
		{1.3, 100},
	}
	for _, tt := range tests {
		if got := toPercentage(tt.score); got != tt.want {
			t.Errorf("toPercentage(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestEngine_ContextCanceled(t *testing.T) {
	e, _, clock := newTestEngine(t)
	record(t, e, clock, "alice", "pad-thai", ActivityCooked, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.PersonalizedRecommendations(ctx, "alice", testCatalog(), 5); err == nil {
		t.Error("PersonalizedRecommendations() expected context error")
	}
	if _, err := e.TrendingRecommendations(ctx, testCatalog(), 5); err == nil {
		t.Error("TrendingRecommendations() expected context error")
	}
}
