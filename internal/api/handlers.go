// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/recipebox/internal/metrics"
	"github.com/tomtom215/recipebox/internal/models"
	"github.com/tomtom215/recipebox/internal/recommend"
)

// Handler serves the recommendation API.
type Handler struct {
	engine    *recommend.Engine
	startTime time.Time
}

// NewHandler creates a handler over an engine.
func NewHandler(engine *recommend.Engine) (*Handler, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is nil")
	}
	h := &Handler{
		engine:    engine,
		startTime: time.Now(),
	}
	h.refreshUserGauge()
	return h, nil
}

// refreshUserGauge publishes the number of users with activity.
func (h *Handler) refreshUserGauge() {
	metrics.SetLogUsers(h.engine.Log().Stats().Users)
}

// NotFound handles unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, CodeNotFound, "Route not found", nil)
}

// MethodNotAllowed handles known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status        string             `json:"status"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	Log           recommend.LogStats `json:"log"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Log().Stats()
	metrics.SetLogUsers(stats.Users)

	respondJSON(w, http.StatusOK, models.Success(HealthStatus{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Log:           stats,
	}, 0))
}

// ListUsers handles GET /api/v1/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.engine.Log().Users()
	respondJSON(w, http.StatusOK, models.Success(users, 0).WithCount(len(users)))
}

// EngineConfig handles GET /api/v1/recommendations/config.
func (h *Handler) EngineConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.Success(h.engine.Config(), 0))
}
