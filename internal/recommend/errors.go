// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

import "errors"

var (
	// ErrDuplicateIdentity is returned when two entities in one request share
	// a display name. Identity-keyed lookups cannot disambiguate them.
	ErrDuplicateIdentity = errors.New("duplicate entity identity")

	// ErrKTooLarge is returned by ResolveK when the requested K exceeds MaxK.
	ErrKTooLarge = errors.New("k exceeds maximum")
)
