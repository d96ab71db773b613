// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

// Package results stores ranked recommendation results so that clients can
// fetch them again by ID (detail pages, graph views) without re-running the
// engine. Results are written once and expire after a TTL.
//
// BadgerStore keeps each result as a JSON value under "result:<id>" with a
// badger TTL. OpenBadger with an empty path opens an in-memory database,
// which is the default for single-instance deployments.
package results
