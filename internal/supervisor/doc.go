// RecipeBox - Personal Recipe Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipebox

/*
Package supervisor runs RecipeBox's long-lived services under a suture v4
supervisor tree.

# Layout

	recipebox
	├── data-layer
	│   ├── storage-gc   (badger backend, storage.gc_interval > 0)
	│   └── log-stats
	└── api-layer
	    └── http-server

Each layer restarts its own services with exponential backoff, so a storage
housekeeping job that keeps failing does not take the API down with it.
Suture events are logged through sutureslog into the zerolog pipeline via
logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.Logger()), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

After Serve returns, UnstoppedServiceReport lists any service that ignored
the shutdown timeout.
*/
package supervisor
