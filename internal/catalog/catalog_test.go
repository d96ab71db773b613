// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_Hygiene(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	games := []Game{
		{GameID: "1", Name: "Portal"},
		{GameID: "2", Name: "Portal Soundtrack"},
		{GameID: "3", Name: "  Portal  "},
		{GameID: "4", Name: "Half-Life DLC Pack"},
		{GameID: "5", Name: "Modern Warfare"},
		{GameID: "6", Name: "   "},
		{GameID: "7", Name: "VR Chat"},
	}

	c := New(games, Options{
		ExcludeWords: []string{"soundtrack", "DLC", "mod", "vr", " "},
		Source:       "test",
		Logger:       zerolog.New(&logBuf),
	})

	want := []string{"Portal", "Modern Warfare"}
	if c.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d (%v)", c.Len(), len(want), c.Games())
	}
	for i, name := range want {
		if c.Games()[i].Name != name {
			t.Errorf("Games()[%d].Name = %q, want %q", i, c.Games()[i].Name, name)
		}
	}

	stats := c.Stats()
	if stats.Input != 7 || stats.Kept != 2 || stats.Excluded != 3 || stats.Duplicates != 1 || stats.Unnamed != 1 {
		t.Errorf("Stats() = %+v, want input 7 kept 2 excluded 3 duplicates 1 unnamed 1", stats)
	}

	if kept, _ := c.Lookup("Portal"); kept.GameID != "1" {
		t.Errorf("Lookup(Portal).GameID = %q, want first entry 1", kept.GameID)
	}
	if !strings.Contains(logBuf.String(), "Duplicate game name") {
		t.Errorf("log = %s, want duplicate warning", logBuf.String())
	}
	if c.Source() != "test" {
		t.Errorf("Source() = %q, want test", c.Source())
	}
}

func TestNew_NormalizesUnicodeNames(t *testing.T) {
	t.Parallel()

	decomposed := "Poke\u0301mon"
	composed := "Pok\u00e9mon"

	c := New([]Game{{GameID: "1", Name: decomposed}, {GameID: "2", Name: composed}}, Options{})

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (NFC forms are the same identity)", c.Len())
	}
	g, err := c.Lookup(decomposed)
	if err != nil {
		t.Fatalf("Lookup(decomposed) error = %v", err)
	}
	if g.Name != composed {
		t.Errorf("Name = %q, want composed form %q", g.Name, composed)
	}
}

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()

	c := New([]Game{{GameID: "620", Name: "Portal 2"}}, Options{})

	if _, err := c.Lookup("Portal 3"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Lookup(unknown) error = %v, want ErrGameNotFound", err)
	}
	if _, err := c.Lookup("portal 2"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Lookup(different case) error = %v, want ErrGameNotFound", err)
	}
	if g, err := c.Lookup(" Portal 2 "); err != nil || g.GameID != "620" {
		t.Errorf("Lookup(padded) = %+v, %v, want Portal 2", g, err)
	}
}

func TestGame_Derived(t *testing.T) {
	t.Parallel()

	g := Game{
		GameID:          "620",
		Name:            "Portal 2",
		Genres:          "Puzzle",
		Categories:      "Co-op",
		Rating:          95,
		Recommendations: 300000,
		Description:     "<p>Think <b>with</b> portals.</p>",
	}

	if got := g.Image(); got != "https://cdn.akamai.steamstatic.com/steam/apps/620/header.jpg" {
		t.Errorf("Image() = %q", got)
	}
	if got := (&Game{}).Image(); got != "" {
		t.Errorf("Image() without id = %q, want empty", got)
	}
	if got := g.PlainDescription(); got != "Think with portals." {
		t.Errorf("PlainDescription() = %q, want %q", got, "Think with portals.")
	}

	c := g.Candidate()
	if c.ID != "620" || c.Name != "Portal 2" || c.Quality != 95 || c.Popularity != 300000 {
		t.Errorf("Candidate() = %+v", c)
	}
	if c.Genres != "Puzzle" || c.Categories != "Co-op" {
		t.Errorf("Candidate() labels = %q, %q", c.Genres, c.Categories)
	}

	cands := Candidates([]Game{g, {Name: "Other"}})
	if len(cands) != 2 || cands[1].Name != "Other" {
		t.Errorf("Candidates() = %+v", cands)
	}
}
