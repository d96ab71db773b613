// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Preferences are the hard constraints a game must satisfy before it is
// considered for ranking.
type Preferences struct {
	// Free must equal the game's Free flag.
	Free bool `json:"free"`

	// Platform must be a substring of the game's platform list, compared
	// case-insensitively. Empty matches every game.
	Platform string `json:"platform"`

	// ReleaseYear must equal the year of the game's release date. Zero
	// matches every year that parses.
	ReleaseYear int `json:"release_year"`
}

// releaseDateLayouts are tried in order when dateparse rejects a release
// date. They cover day-first store forms.
var releaseDateLayouts = []string{
	"Jan 2, 2006",
	"2 Jan, 2006",
	"January 2, 2006",
	"2 January, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Jan 2 2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// monthAbbrevFixer rewrites abbreviations Go's month parser does not know.
var monthAbbrevFixer = strings.NewReplacer("Sept ", "Sep ", "sept ", "sep ", ".", "")

// ReleaseYear parses a store release date and returns its year. Any
// calendar-date form dateparse understands is accepted; ambiguous numeric
// dates are read month first.
func ReleaseYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, false
	}
	if t, err := dateparse.ParseAny(date); err == nil {
		return t.Year(), true
	}

	date = strings.Join(strings.Fields(monthAbbrevFixer.Replace(date)), " ")
	if t, err := dateparse.ParseAny(date); err == nil {
		return t.Year(), true
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// Matches reports whether g satisfies all preferences. Games whose release
// date does not parse never match.
func (p Preferences) Matches(g *Game) bool {
	if g.Free != p.Free {
		return false
	}
	if p.Platform != "" && !strings.Contains(strings.ToLower(g.Platform), strings.ToLower(strings.TrimSpace(p.Platform))) {
		return false
	}
	year, ok := ReleaseYear(g.ReleaseDate)
	if !ok {
		return false
	}
	return p.ReleaseYear == 0 || year == p.ReleaseYear
}

// Filter returns the games that satisfy prefs, in input order. The result
// is never nil.
func Filter(games []Game, prefs Preferences) []Game {
	out := make([]Game, 0, len(games))
	for i := range games {
		if prefs.Matches(&games[i]) {
			out = append(out, games[i])
		}
	}
	return out
}
