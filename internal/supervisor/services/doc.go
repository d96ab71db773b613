// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package services adapts gamerec components to suture.Service so they can
run under the supervisor tree.

  - HTTPServerService: ListenAndServe with graceful Shutdown (api layer)
  - CatalogReloadService: periodic and on-demand catalog reloads (data layer)
  - ResultsGCService: periodic badger value log GC (data layer)
  - EventRouterService: the watermill recommendation event router (messaging layer)

Each wrapper implements fmt.Stringer so suture log lines name the service.
Serve returns ctx.Err() on shutdown.

Example:

	reloader := services.NewCatalogReloadService(store, cfg.Catalog.ReloadInterval, logger)
	tree.AddDataService(reloader)

	// SIGHUP
	reloader.Trigger()
*/
package services
