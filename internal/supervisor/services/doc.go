// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

/*
Package services adapts RecipeBox components to suture.Service.

Each wrapper implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

and returns ctx.Err() on cancellation so suture treats it as a clean stop.
Any other returned error counts as a failure and the service is restarted
under the tree's backoff policy.

# Available Services

HTTPServerService runs *http.Server, translating ListenAndServe into Serve
and calling Shutdown with a bounded timeout on cancellation.

PeriodicService runs a Task on a ticker. RecipeBox uses it for:
  - storage-gc: BadgerDB value log garbage collection (storage.Maintainer)
  - log-stats: refreshing the recipebox_activity_log_users gauge

# Usage

	gc, err := services.NewPeriodicService("storage-gc", cfg.Storage.GCInterval, maintainer.Maintain)
	if err != nil {
	    return err
	}
	tree.AddDataService(gc)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
*/
package services
