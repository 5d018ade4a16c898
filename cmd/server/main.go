// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

// Package main is the entry point for the RecipeBox server.
//
// RecipeBox records what each household member views, cooks, favorites and
// rates, and ranks caller-supplied candidate recipes from that history.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog at LOG_LEVEL / LOG_FORMAT
//  3. Storage: BadgerDB, JSON file or memory backend behind a circuit breaker
//  4. Activity log and recommendation engine, replayed from storage
//  5. HTTP API on HTTP_HOST:HTTP_PORT, with /metrics for Prometheus
//  6. Supervisor tree: HTTP server, storage GC and log statistics
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT, then the store is closed.
//
// # Example
//
//	export STORAGE_PATH=/var/lib/recipebox
//	export LOG_FORMAT=console
//	./recipebox
//
//	curl -X POST localhost:8080/api/v1/users/alice/activities \
//	  -H 'Content-Type: application/json' \
//	  -d '{"recipe_id":"pad-thai","activity_type":"cooked"}'
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/recipebox/internal/config"
	"github.com/tomtom215/recipebox/internal/logging"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggerConfig())
	logging.Info().
		Str("backend", cfg.Storage.Backend).
		Str("path", cfg.Storage.Path).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting RecipeBox")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer func() {
		if err := app.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	logging.Info().Int("users", app.engine.Log().Stats().Users).Msg("Activity log loaded, starting supervisor tree")

	if err := app.tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := app.tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("RecipeBox stopped")
}
