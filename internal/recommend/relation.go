// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

// AdmissionThreshold is the minimum similarity for an edge to exist.
const AdmissionThreshold = 0.5

// Edge is one scored neighbor in a Relation.
type Edge struct {
	Neighbor   Entity
	Score      float64
	Similarity float64
}

// Relation maps an entity's identity to its scored neighbors in insertion
// order.
type Relation map[string][]Edge

// Connect inserts an edge between a and b in both directions when similarity
// clears AdmissionThreshold. Both directions carry the same score. It reports
// whether the edge was admitted.
func (r Relation) Connect(a, b Entity, similarity, score float64) bool {
	if similarity < AdmissionThreshold {
		return false
	}

	r[a.Identity()] = append(r[a.Identity()], Edge{Neighbor: b, Score: score, Similarity: similarity})
	r[b.Identity()] = append(r[b.Identity()], Edge{Neighbor: a, Score: score, Similarity: similarity})
	return true
}

// Neighbors returns the adjacency list for key, or nil when key has no edges.
func (r Relation) Neighbors(key string) []Edge {
	return r[key]
}

// BuildRelation scores every candidate against the profile and connects the
// ones that clear the admission threshold. maxPopularity must be computed
// once for the whole request; values below 1 are treated as 1.
//
//nolint:gocritic // hugeParam: profile passed by value for immutability
func BuildRelation(profile Profile, candidates []Candidate, maxPopularity int) (Relation, BuildStats) {
	rel := make(Relation, len(candidates)+1)
	stats := BuildStats{Candidates: len(candidates), MaxPopularity: maxPopularity}

	for i := range candidates {
		c := candidates[i]
		sim := Similarity(profile, c)
		if rel.Connect(profile, c, sim, Score(sim, c, maxPopularity)) {
			stats.Admitted++
		} else {
			stats.Rejected++
		}
	}

	return rel, stats
}
