// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

/*
Package catalog ingests the game catalog and applies the hard preference
constraints that decide which games may be ranked at all.

# Sources

A catalog file is a JSON array or a CSV with a header row. Both use the
column names GameID, Name, Genres, Free, Price, Platform, Categories,
Description, Recommendations, Rating and ReleaseDate:

	games, err := catalog.LoadFile("/data/games.csv")

Parsing is lenient in the same places for both formats: Free is true only
for "TRUE" or "true", and non-numeric Recommendations or Rating become 0.

# Snapshots

New builds an immutable Catalog from raw games. It drops entries whose
name contains an exclude word, NFC-normalises names and keeps the first of
any duplicate names. Store holds the current Catalog behind an atomic
pointer so readers never block a reload:

	store := catalog.NewStore(catalog.StoreConfig{Path: path}, logger)
	if _, err := store.Reload(ctx); err != nil { ... }
	games := catalog.Filter(store.Current().Games(), prefs)

Reloads run through a circuit breaker; while it is open Reload returns
ErrReloadUnavailable and the previous snapshot stays in service.
*/
package catalog
