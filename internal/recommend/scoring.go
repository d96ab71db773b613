// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

// Composite score constants.
const (
	// QualityScale converts a 0-100 rating into a [0, 1] term.
	QualityScale = 100.0

	// PopularityWeight multiplies the normalized popularity term.
	PopularityWeight = 3.0
)

// MaxPopularity returns the largest popularity in the set, clamped to a
// minimum of 1 so it can always be used as a divisor.
func MaxPopularity(candidates []Candidate) int {
	maxPop := 1
	for i := range candidates {
		if candidates[i].Popularity > maxPop {
			maxPop = candidates[i].Popularity
		}
	}
	return maxPop
}

// Score combines similarity with the candidate's quality and popularity.
// An unknown quality (0) adds nothing and does not penalize.
//
//nolint:gocritic // hugeParam: candidates are small value records
func Score(similarity float64, c Candidate, maxPopularity int) float64 {
	if maxPopularity < 1 {
		maxPopularity = 1
	}
	return similarity +
		float64(c.Quality)/QualityScale +
		PopularityWeight*(float64(c.Popularity)/float64(maxPopularity))
}
