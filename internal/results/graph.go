// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package results

import "github.com/tomtom215/gamerec/internal/recommend"

// Node kinds in a Graph.
const (
	NodeProfile = "profile"
	NodeGame    = "game"
)

// GraphNode is a vertex of the profile-centred graph.
type GraphNode struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Label string  `json:"label"`
	Score float64 `json:"score,omitempty"`
}

// GraphEdge connects the profile to one recommended game. Weight is the
// score min-max scaled over every edge the profile had, not only the
// returned ones.
type GraphEdge struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
	Weight     float64 `json:"weight"`
}

// Graph is a star graph with the profile at its centre, suitable for a
// client-side network view.
type Graph struct {
	ResultID string      `json:"result_id"`
	Nodes    []GraphNode `json:"nodes"`
	Edges    []GraphEdge `json:"edges"`
}

// Graph builds the profile-centred graph of the stored items.
func (r *Result) Graph() Graph {
	profileID := "profile:" + r.Profile.Name

	g := Graph{
		ResultID: r.ID,
		Nodes:    make([]GraphNode, 0, len(r.Items)+1),
		Edges:    make([]GraphEdge, 0, len(r.Items)),
	}
	g.Nodes = append(g.Nodes, GraphNode{ID: profileID, Kind: NodeProfile, Label: r.Profile.Name})

	scale := r.weightRange()
	for _, it := range r.Items {
		nodeID := "game:" + it.Name
		weight := scale.Normalize(it.Score)

		g.Nodes = append(g.Nodes, GraphNode{ID: nodeID, Kind: NodeGame, Label: it.Name, Score: it.Score})
		g.Edges = append(g.Edges, GraphEdge{
			Source:     profileID,
			Target:     nodeID,
			Score:      it.Score,
			Similarity: it.Similarity,
			Weight:     weight,
		})
	}

	return g
}

// weightRange returns the stored adjacency range, or the range of the items
// for results saved without one.
func (r *Result) weightRange() recommend.ScoreRange {
	if r.ScoreRange.Edges > 0 {
		return r.ScoreRange
	}
	if len(r.Items) == 0 {
		return recommend.ScoreRange{}
	}
	sr := recommend.ScoreRange{Min: r.Items[0].Score, Max: r.Items[0].Score, Edges: len(r.Items)}
	for _, it := range r.Items[1:] {
		sr.Min = min(sr.Min, it.Score)
		sr.Max = max(sr.Max, it.Score)
	}
	return sr
}
