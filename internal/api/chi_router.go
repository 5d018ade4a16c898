// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/recipebox/internal/middleware"
)

// NewRouter wires every route onto a chi router.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		// Health is exempt from rate limiting so probes never fail.
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(chimiddleware.AllowContentType("application/json"))

			r.Get("/users", h.ListUsers)
			r.Route("/users/{userID}", func(r chi.Router) {
				r.Post("/activities", h.RecordActivity)
				r.Get("/activities", h.ActivityHistory)
				r.Post("/feedback", h.SubmitFeedback)
				r.Get("/feedback", h.FeedbackHistory)
				r.Post("/recommendations", h.PersonalizedRecommendations)
				r.Post("/preferences", h.UserPreferences)
			})

			r.Post("/recipes/{recipeID}/similar", h.SimilarRecipes)

			r.Route("/recommendations", func(r chi.Router) {
				r.Post("/trending", h.TrendingRecommendations)
				r.Get("/config", h.EngineConfig)
			})
		})
	})

	return r
}
