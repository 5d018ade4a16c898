// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

// Package recommend implements the hybrid recipe recommendation engine.
//
// # Architecture
//
// The engine reads an append-only, per-user activity log and combines four
// scoring components into one ranked list:
//
//   - Collaborative: implicit ratings of the 5 most similar users (Jaccard
//     over interacted recipe IDs)
//   - Content: mean cosine similarity between the candidate's feature vector
//     and the recipes the user cooked, favorited or rated
//   - Trend: recent cross-household interactions per tracked user
//   - Diversity penalty: share of the last week's activity in the
//     candidate's category
//
// The combined score is
//
//	total = 0.3*collaborative + 0.5*content + 0.1*trend - 0.1*penalty
//
// Results are sorted by score and passed through a category cap (at most 3
// per category, backfilled when the cap leaves the list short).
//
// # Cold Start
//
// Users with no history receive the trending ranking. Recipes missing from
// the supplied catalog contribute nothing; they never cause errors.
//
// # Usage
//
//	store, _ := storage.Open(ctx, storage.Options{Backend: storage.BackendBadger, Path: dir})
//	activityLog, _ := recommend.NewActivityLog(ctx, store, logger)
//	engine, _ := recommend.NewEngine(recommend.DefaultConfig(), activityLog, logger)
//
//	_, err := engine.RecordActivity(ctx, "alice", "pad-thai", recommend.ActivityCooked, nil)
//	recs, err := engine.PersonalizedRecommendations(ctx, "alice", candidates, 10)
//
// # Thread Safety
//
// Writes for one user are serialized and acknowledged by the store before
// they become visible. Scoring works on a consistent snapshot of the log and
// never blocks writers. Cost is O(users x interactions) per call, which is
// fine for a household but has no index for larger deployments.
package recommend
