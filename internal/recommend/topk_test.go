// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

import "testing"

func buildTestRelation(scores ...float64) Relation {
	rel := make(Relation)
	profile := Profile{Name: "alice"}
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, score := range scores {
		rel.Connect(profile, Candidate{Name: names[i]}, 1.0, score)
	}
	return rel
}

func names(edges []Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Neighbor.Identity()
	}
	return out
}

func TestTopK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []float64
		key    string
		k      int
		want   []string
	}{
		{name: "sorted descending", scores: []float64{1, 3, 2}, key: "alice", k: 5, want: []string{"b", "c", "a"}},
		{name: "truncated", scores: []float64{1, 3, 2, 5}, key: "alice", k: 2, want: []string{"d", "b"}},
		{name: "ties keep insertion order", scores: []float64{2, 2, 3, 2}, key: "alice", k: 4, want: []string{"c", "a", "b", "d"}},
		{name: "k zero", scores: []float64{1, 2}, key: "alice", k: 0, want: []string{}},
		{name: "k negative", scores: []float64{1, 2}, key: "alice", k: -3, want: []string{}},
		{name: "unknown key", scores: []float64{1, 2}, key: "nobody", k: 5, want: []string{}},
		{name: "empty relation", scores: nil, key: "alice", k: 5, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TopK(buildTestRelation(tt.scores...), tt.key, tt.k)
			if got == nil {
				t.Fatal("TopK() returned nil, want non-nil slice")
			}

			gotNames := names(got)
			if len(gotNames) != len(tt.want) {
				t.Fatalf("TopK() = %v, want %v", gotNames, tt.want)
			}
			for i := range tt.want {
				if gotNames[i] != tt.want[i] {
					t.Errorf("TopK()[%d] = %s, want %s", i, gotNames[i], tt.want[i])
				}
			}
		})
	}
}

func TestTopK_DoesNotReorderRelation(t *testing.T) {
	t.Parallel()

	rel := buildTestRelation(1, 3, 2)
	TopK(rel, "alice", 3)

	got := names(rel.Neighbors("alice"))
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("relation order after TopK = %v, want %v", got, want)
			break
		}
	}
}

func TestAdjacencyRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []float64
		key    string
		want   ScoreRange
	}{
		{name: "spread", scores: []float64{2, 4.5, 1, 3}, key: "alice", want: ScoreRange{Min: 1, Max: 4.5, Edges: 4}},
		{name: "single edge", scores: []float64{2}, key: "alice", want: ScoreRange{Min: 2, Max: 2, Edges: 1}},
		{name: "candidate side", scores: []float64{2, 3}, key: "b", want: ScoreRange{Min: 3, Max: 3, Edges: 1}},
		{name: "unknown key", scores: []float64{2, 3}, key: "nobody", want: ScoreRange{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := AdjacencyRange(buildTestRelation(tt.scores...), tt.key); got != tt.want {
				t.Errorf("AdjacencyRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreRange_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sr    ScoreRange
		score float64
		want  float64
	}{
		{name: "minimum", sr: ScoreRange{Min: 1, Max: 3, Edges: 3}, score: 1, want: 0},
		{name: "maximum", sr: ScoreRange{Min: 1, Max: 3, Edges: 3}, score: 3, want: 1},
		{name: "midpoint", sr: ScoreRange{Min: 1, Max: 3, Edges: 3}, score: 2, want: 0.5},
		{name: "below range clamps", sr: ScoreRange{Min: 1, Max: 3, Edges: 3}, score: 0, want: 0},
		{name: "degenerate range", sr: ScoreRange{Min: 2, Max: 2, Edges: 1}, score: 2, want: 1},
		{name: "zero range", sr: ScoreRange{}, score: 4, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.sr.Normalize(tt.score); got != tt.want {
				t.Errorf("Normalize(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}
