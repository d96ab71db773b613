// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/gamerec/internal/recommend"
)

// headerImageURL is the Steam CDN pattern for a game's header image.
const headerImageURL = "https://cdn.akamai.steamstatic.com/steam/apps/%s/header.jpg"

// Game is one catalog entry.
type Game struct {
	GameID      string `json:"game_id"`
	Name        string `json:"name"`
	Genres      string `json:"genres"`
	Free        bool   `json:"free"`
	Price       string `json:"price,omitempty"`
	Platform    string `json:"platform"`
	Categories  string `json:"categories"`
	Description string `json:"description,omitempty"`

	// Recommendations is the popularity signal (Steam recommendation count).
	Recommendations int `json:"recommendations"`

	// Rating is the 0-100 quality signal. 0 means unknown.
	Rating int `json:"rating"`

	ReleaseDate string `json:"release_date"`
}

// Image returns the header image URL derived from the game id.
func (g *Game) Image() string {
	if g.GameID == "" {
		return ""
	}
	return fmt.Sprintf(headerImageURL, g.GameID)
}

// PlainDescription renders the HTML description as plain text.
func (g *Game) PlainDescription() string {
	return PlainText(g.Description)
}

// Candidate converts the game to the engine's candidate type.
func (g *Game) Candidate() recommend.Candidate {
	return recommend.Candidate{
		ID:         g.GameID,
		Name:       g.Name,
		Genres:     g.Genres,
		Categories: g.Categories,
		Quality:    g.Rating,
		Popularity: g.Recommendations,
	}
}

// Candidates converts a slice of games.
func Candidates(games []Game) []recommend.Candidate {
	out := make([]recommend.Candidate, len(games))
	for i := range games {
		out[i] = games[i].Candidate()
	}
	return out
}

// NormalizeName returns the identity key form of a name: NFC with
// surrounding whitespace removed. Case is preserved.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
