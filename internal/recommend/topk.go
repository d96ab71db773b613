// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

import "sort"

// TopK returns the k highest-scoring neighbors of key, best first.
// Ties keep insertion order. A missing key or k <= 0 yields an empty,
// non-nil slice. The relation is not modified.
func TopK(rel Relation, key string, k int) []Edge {
	edges := rel.Neighbors(key)
	if k <= 0 || len(edges) == 0 {
		return []Edge{}
	}

	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// AdjacencyRange returns the score spread over every neighbor of key. A
// missing key yields the zero range.
func AdjacencyRange(rel Relation, key string) ScoreRange {
	edges := rel.Neighbors(key)
	if len(edges) == 0 {
		return ScoreRange{}
	}
	sr := ScoreRange{Min: edges[0].Score, Max: edges[0].Score, Edges: len(edges)}
	for _, e := range edges[1:] {
		if e.Score < sr.Min {
			sr.Min = e.Score
		}
		if e.Score > sr.Max {
			sr.Max = e.Score
		}
	}
	return sr
}
