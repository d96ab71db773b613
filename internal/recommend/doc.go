// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

// Package recommend implements the content-based scoring and ranking engine
// for game recommendations.
//
// # Pipeline
//
// A request flows through four stages:
//
//   - Similarity: weighted Jaccard over genre and category label sets
//     (0.7 genres, 0.3 categories)
//   - Scoring: similarity + quality/100 + 3 * popularity/maxPopularity
//   - Relation: a symmetric adjacency map; an edge between the profile and a
//     candidate exists only when similarity >= 0.5
//   - Selection: stable descending sort of the profile's adjacency list,
//     truncated to K
//
// The weights, the admission threshold and the scoring constants are fixed.
// They are exported for documentation and tests but are not configurable.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	items, err := engine.Recommend(ctx, profile, candidates, 5)
//	if errors.Is(err, recommend.ErrDuplicateIdentity) {
//	    // profile and candidate names must be unique
//	}
//
// Rank returns the same items together with the score range over the
// profile's whole adjacency list, which graph views use for scaling.
//
// # Filtering
//
// The engine does not apply hard preference constraints (free flag, platform,
// release year). Candidates must be filtered by the caller before they reach
// Recommend; see the catalog package.
//
// # Thread Safety
//
// Recommend is a pure function of its inputs. It builds its own relation per
// call, never mutates the candidate slice and holds no locks, so a single
// Engine can serve concurrent requests.
package recommend
