// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

/*
Package api exposes the recommendation engine over HTTP using the chi router.

# Endpoints

	GET  /api/v1/health                            liveness and log statistics
	GET  /api/v1/users                             users with recorded activity
	POST /api/v1/users/{userID}/activities         record an activity
	GET  /api/v1/users/{userID}/activities         activity history
	POST /api/v1/users/{userID}/feedback           submit feedback
	GET  /api/v1/users/{userID}/feedback           feedback history
	POST /api/v1/users/{userID}/recommendations    personalized ranking of candidates
	POST /api/v1/users/{userID}/preferences        preference profile over a catalog
	POST /api/v1/recipes/{recipeID}/similar        recipes similar to one candidate
	POST /api/v1/recommendations/trending          trending ranking of candidates
	GET  /api/v1/recommendations/config            active scoring configuration
	GET  /metrics                                  Prometheus metrics

The engine does not own a catalog, so ranking endpoints take the candidate
recipes in the request body:

	POST /api/v1/users/alice/recommendations
	{"limit": 5, "candidates": [{"id": "pad-thai", "category": "thai", ...}]}

# Responses

Every JSON response uses the models.APIResponse envelope. Errors carry one
of the codes documented on models.APIError.

# Middleware

Global: request ID, real IP, access log, Prometheus metrics, panic
recovery, CORS (go-chi/cors) and compression. The /api/v1 data routes are
additionally rate limited per client IP (go-chi/httprate).
*/
package api
