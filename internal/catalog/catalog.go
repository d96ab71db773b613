// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls catalog hygiene when building a snapshot.
type Options struct {
	// ExcludeWords drops games whose name contains one of these words.
	// Matching is case-insensitive on whitespace-separated words.
	ExcludeWords []string

	// Source is recorded on the snapshot for diagnostics.
	Source string

	// Logger receives duplicate-name warnings. The zero value discards.
	Logger zerolog.Logger
}

// Stats describes what New kept and dropped.
type Stats struct {
	Input      int `json:"input"`
	Kept       int `json:"kept"`
	Excluded   int `json:"excluded"`
	Duplicates int `json:"duplicates"`
	Unnamed    int `json:"unnamed"`
}

// Catalog is an immutable snapshot of the game catalog keyed by name.
type Catalog struct {
	games    []Game
	index    map[string]int
	loadedAt time.Time
	source   string
	stats    Stats
}

// New builds a snapshot from raw games. Unnamed entries and entries
// matching an exclude word are dropped, names are normalised, and for
// duplicate names the first entry wins.
//
//nolint:gocritic // hugeParam: options are read once
func New(games []Game, opts Options) *Catalog {
	exclude := make(map[string]struct{}, len(opts.ExcludeWords))
	for _, w := range opts.ExcludeWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			exclude[w] = struct{}{}
		}
	}

	c := &Catalog{
		games:    make([]Game, 0, len(games)),
		index:    make(map[string]int, len(games)),
		loadedAt: time.Now(),
		source:   opts.Source,
		stats:    Stats{Input: len(games)},
	}

	for i := range games {
		g := games[i]
		g.Name = NormalizeName(g.Name)

		if g.Name == "" {
			c.stats.Unnamed++
			continue
		}
		if hasExcludedWord(g.Name, exclude) {
			c.stats.Excluded++
			continue
		}
		if first, dup := c.index[g.Name]; dup {
			c.stats.Duplicates++
			opts.Logger.Warn().
				Str("name", g.Name).
				Str("kept_id", c.games[first].GameID).
				Str("dropped_id", g.GameID).
				Msg("Duplicate game name in catalog, keeping first entry")
			continue
		}

		c.index[g.Name] = len(c.games)
		c.games = append(c.games, g)
	}

	c.stats.Kept = len(c.games)
	return c
}

func hasExcludedWord(name string, exclude map[string]struct{}) bool {
	if len(exclude) == 0 {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if _, ok := exclude[word]; ok {
			return true
		}
	}
	return false
}

// Games returns the games in catalog order. The slice must not be modified.
func (c *Catalog) Games() []Game {
	return c.games
}

// Len returns the number of games.
func (c *Catalog) Len() int {
	return len(c.games)
}

// Lookup returns the game with the given name.
func (c *Catalog) Lookup(name string) (Game, error) {
	i, ok := c.index[NormalizeName(name)]
	if !ok {
		return Game{}, ErrGameNotFound
	}
	return c.games[i], nil
}

// LoadedAt returns when the snapshot was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// Source returns the file the snapshot was loaded from, if any.
func (c *Catalog) Source() string {
	return c.source
}

// Stats returns the hygiene counters from New.
func (c *Catalog) Stats() Stats {
	return c.stats
}
