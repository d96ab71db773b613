// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package recommend

import "strings"

// Similarity weights. Fixed for compatibility with tuned rankings.
const (
	GenreWeight    = 0.7
	CategoryWeight = 0.3
)

// TokenSet is a set of normalized labels.
type TokenSet map[string]struct{}

// Tokenize splits a comma-separated label string into a set of lower-cased,
// whitespace-trimmed tokens. Empty tokens are dropped, so "" and " , " both
// produce an empty set.
func Tokenize(labels string) TokenSet {
	set := make(TokenSet)
	for _, part := range strings.Split(labels, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets have no defined index and
// score 0.
func Jaccard(a, b TokenSet) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Similarity returns the weighted attribute similarity of two entities,
// always in [0, 1] and symmetric in its arguments.
func Similarity(a, b Entity) float64 {
	la, lb := a.Attributes(), b.Attributes()

	genre := Jaccard(Tokenize(la.Genres), Tokenize(lb.Genres))
	category := Jaccard(Tokenize(la.Categories), Tokenize(lb.Categories))

	return GenreWeight*genre + CategoryWeight*category
}
