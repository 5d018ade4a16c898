// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

// Package logging provides the process-wide zerolog logger.
//
// Call Init once from main with the configured level and format. Packages
// log through the package-level helpers or derive a component logger:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Str("addr", addr).Msg("server starting")
//
//	log := logging.Component("recommend")
//	log.Debug().Int("candidates", n).Msg("scoring")
//
// Request-scoped logging picks up the request ID stored by the HTTP
// middleware:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("feedback rejected")
//
// SlogHandler bridges log/slog consumers (the suture event hook) onto the
// same zerolog output.
//
// Always finish an event with Msg or Send; an unfinished event is dropped.
package logging
