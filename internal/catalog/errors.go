// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import "errors"

var (
	// ErrGameNotFound is returned by Lookup for an unknown name.
	ErrGameNotFound = errors.New("game not found")

	// ErrUnsupportedFormat is returned by LoadFile for an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrReloadUnavailable is returned while the reload breaker is open.
	ErrReloadUnavailable = errors.New("catalog reload temporarily unavailable")

	// ErrNotLoaded is returned when no snapshot has been loaded yet.
	ErrNotLoaded = errors.New("catalog not loaded")
)
