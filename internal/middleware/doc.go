// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

// Package middleware provides chi-compatible HTTP middleware for request IDs,
// Prometheus metrics and structured access logging.
//
// Order matters: RequestID must run before AccessLog so log lines carry the
// request_id, and PrometheusMetrics must wrap the router so the chi route
// pattern is resolved when the handler returns.
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(middleware.AccessLog)
//	r.Use(middleware.PrometheusMetrics)
package middleware
