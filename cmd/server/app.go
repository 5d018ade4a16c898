// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/recipebox/internal/api"
	"github.com/tomtom215/recipebox/internal/config"
	"github.com/tomtom215/recipebox/internal/logging"
	"github.com/tomtom215/recipebox/internal/metrics"
	"github.com/tomtom215/recipebox/internal/recommend"
	"github.com/tomtom215/recipebox/internal/recommend/storage"
	"github.com/tomtom215/recipebox/internal/supervisor"
	"github.com/tomtom215/recipebox/internal/supervisor/services"
)

// logStatsInterval is how often the user gauge is refreshed.
const logStatsInterval = 30 * time.Second

// app holds the wired components of a running server.
type app struct {
	store  recommend.Store
	engine *recommend.Engine
	server *http.Server
	tree   *supervisor.SupervisorTree
}

// newApp opens storage, replays the activity log and assembles the
// supervisor tree. The caller must Close the app.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a := &app{store: store}
	if err := a.wire(ctx, cfg); err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context, cfg *config.Config) error {
	logger := logging.Logger()

	activityLog, err := recommend.NewActivityLog(ctx, a.store, logger)
	if err != nil {
		return fmt.Errorf("load activity log: %w", err)
	}
	a.engine, err = recommend.NewEngine(cfg.EngineConfig(), activityLog, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	handler, err := api.NewHandler(a.engine)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}
	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	))

	a.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mw),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	a.tree, err = supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	stats, err := services.NewPeriodicService("log-stats", logStatsInterval, a.refreshStats)
	if err != nil {
		return err
	}
	stats.RunOnStart = true
	a.tree.AddDataService(stats)

	if m, ok := storage.MaintainerOf(a.store); ok && cfg.Storage.GCInterval > 0 {
		gc, err := services.NewPeriodicService("storage-gc", cfg.Storage.GCInterval, m.Maintain)
		if err != nil {
			return err
		}
		a.tree.AddDataService(gc)
		logging.Info().Dur("interval", cfg.Storage.GCInterval).Msg("Storage GC scheduled")
	}

	a.tree.AddAPIService(services.NewHTTPServerService(a.server, cfg.Server.ShutdownTimeout))
	return nil
}

// refreshStats publishes activity log statistics as gauges.
func (a *app) refreshStats(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stats := a.engine.Log().Stats()
	metrics.SetLogUsers(stats.Users)
	logging.Debug().
		Int("users", stats.Users).
		Int("activities", stats.Activities).
		Int("feedback", stats.Feedback).
		Msg("Activity log statistics")
	return nil
}

// Close releases the store.
func (a *app) Close() error {
	return a.store.Close()
}
