// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

// Labels holds the two comma-separated label strings compared by Similarity.
type Labels struct {
	// Genres is a comma-separated list such as "Action, RPG".
	Genres string `json:"genres"`

	// Categories is a comma-separated list such as "Single-player, Co-op".
	Categories string `json:"categories"`
}

// Entity is anything that can be placed in a Relation: a Candidate or a
// Profile. The identity is the display name and must be unique within one
// Recommend call.
type Entity interface {
	Identity() string
	Attributes() Labels
}

// Candidate is a recommendable game.
type Candidate struct {
	// ID is the catalog identifier (for example a Steam app id).
	ID string `json:"id"`

	// Name is the display name and identity key.
	Name string `json:"name"`

	// Genres is the comma-separated genre label string.
	Genres string `json:"genres"`

	// Categories is the comma-separated category label string.
	Categories string `json:"categories"`

	// Quality is a 0-100 rating. 0 means unknown.
	Quality int `json:"quality"`

	// Popularity is a non-negative recommendation count. 0 means unknown.
	Popularity int `json:"popularity"`
}

// Identity implements Entity.
func (c Candidate) Identity() string { return c.Name }

// Attributes implements Entity.
func (c Candidate) Attributes() Labels {
	return Labels{Genres: c.Genres, Categories: c.Categories}
}

// Profile is the query entity built from a user's stated preferences.
// It carries no quality or popularity signal.
type Profile struct {
	Name       string `json:"name"`
	Genres     string `json:"genres"`
	Categories string `json:"categories"`
}

// Identity implements Entity.
func (p Profile) Identity() string { return p.Name }

// Attributes implements Entity.
func (p Profile) Attributes() Labels {
	return Labels{Genres: p.Genres, Categories: p.Categories}
}

// ScoredCandidate is one entry of a ranked result.
type ScoredCandidate struct {
	// Candidate is the recommended game.
	Candidate Candidate `json:"candidate"`

	// Score is the composite ranking score.
	Score float64 `json:"score"`

	// Similarity is the attribute similarity that admitted the edge.
	Similarity float64 `json:"similarity"`
}

// BuildStats summarizes one relation build.
type BuildStats struct {
	Candidates    int
	Admitted      int
	Rejected      int
	MaxPopularity int
}

// ScoreRange is the spread of scores over an entity's full adjacency list.
type ScoreRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Edges int     `json:"edges"`
}

// Normalize maps score into [0, 1] by min-max scaling. A degenerate range
// maps every score to 1.
func (sr ScoreRange) Normalize(score float64) float64 {
	if sr.Max <= sr.Min {
		return 1
	}
	n := (score - sr.Min) / (sr.Max - sr.Min)
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// Ranking is the full outcome of one Rank call.
type Ranking struct {
	Items []ScoredCandidate
	Range ScoreRange
	Stats BuildStats
}
