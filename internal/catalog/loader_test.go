// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCSV = `GameID,Name,Genres,Free,Price,Platform,Categories,Description,Recommendations,Rating,ReleaseDate
10,Counter-Strike,Action,FALSE,$9.99,"windows, mac, linux","Multi-player, PvP",<p>Classic</p>,140000,88,"Nov 1, 2000"
570,Dota 2,"Action, Strategy",TRUE,,"windows, mac, linux","Multi-player, Co-op",,2000000,90,"9 Jul, 2013"
999,Unrated Thing,Indie,true,,windows,Single-player,,"1,234",N/A,Coming soon
`

const testJSON = `[
  {"GameID": 10, "Name": "Counter-Strike", "Genres": "Action", "Free": "FALSE",
   "Platform": "windows, mac, linux", "Categories": "Multi-player, PvP",
   "Recommendations": 140000, "Rating": "88", "ReleaseDate": "Nov 1, 2000"},
  {"GameID": "570", "Name": "Dota 2", "Genres": "Action, Strategy", "Free": true,
   "Platform": "windows", "Categories": "Multi-player", "Recommendations": "2000000",
   "Rating": null, "ReleaseDate": "9 Jul, 2013"}
]`

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	games, err := LoadCSV(strings.NewReader(testCSV))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("len(games) = %d, want 3", len(games))
	}

	cs := games[0]
	if cs.GameID != "10" || cs.Name != "Counter-Strike" {
		t.Errorf("games[0] = %+v, want Counter-Strike id 10", cs)
	}
	if cs.Free {
		t.Error("Counter-Strike Free = true, want false")
	}
	if cs.Platform != "windows, mac, linux" {
		t.Errorf("Platform = %q, want quoted field intact", cs.Platform)
	}
	if cs.Recommendations != 140000 || cs.Rating != 88 {
		t.Errorf("Recommendations, Rating = %d, %d, want 140000, 88", cs.Recommendations, cs.Rating)
	}
	if !games[1].Free {
		t.Error("Dota 2 Free = false, want true for TRUE")
	}

	odd := games[2]
	if !odd.Free {
		t.Error("Free = false, want true for lower-case true")
	}
	if odd.Recommendations != 0 {
		t.Errorf("Recommendations = %d, want 0 for %q", odd.Recommendations, "1,234")
	}
	if odd.Rating != 0 {
		t.Errorf("Rating = %d, want 0 for N/A", odd.Rating)
	}
}

func TestLoadCSV_ColumnOrderAndMissingOptional(t *testing.T) {
	t.Parallel()

	input := "Categories,Name,Genres\nCo-op,Portal 2,Puzzle\n"
	games, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("len(games) = %d, want 1", len(games))
	}
	if games[0].Name != "Portal 2" || games[0].Genres != "Puzzle" || games[0].Categories != "Co-op" {
		t.Errorf("games[0] = %+v, want columns mapped by header", games[0])
	}
}

func TestLoadCSV_Errors(t *testing.T) {
	t.Parallel()

	if _, err := LoadCSV(strings.NewReader("Name,Genres\nx,y\n")); err == nil {
		t.Error("LoadCSV() without Categories column error = nil, want error")
	}

	games, err := LoadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadCSV(empty) error = %v", err)
	}
	if games == nil || len(games) != 0 {
		t.Errorf("LoadCSV(empty) = %v, want empty non-nil slice", games)
	}
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	games, err := LoadJSON(strings.NewReader(testJSON))
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}

	if games[0].GameID != "10" {
		t.Errorf("GameID = %q, want numeric id kept as text", games[0].GameID)
	}
	if games[0].Recommendations != 140000 || games[0].Rating != 88 {
		t.Errorf("Recommendations, Rating = %d, %d, want 140000, 88", games[0].Recommendations, games[0].Rating)
	}
	if !games[1].Free {
		t.Error("Free = false, want true for JSON true")
	}
	if games[1].Rating != 0 {
		t.Errorf("Rating = %d, want 0 for null", games[1].Rating)
	}
}

func TestLoadJSON_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := LoadJSON(strings.NewReader(`{"Name": "not an array"}`)); err == nil {
		t.Error("LoadJSON(object) error = nil, want error")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "games.CSV")
	jsonPath := filepath.Join(dir, "games.json")
	xmlPath := filepath.Join(dir, "games.xml")

	for path, content := range map[string]string{csvPath: testCSV, jsonPath: testJSON, xmlPath: "<games/>"} {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", path, err)
		}
	}

	if games, err := LoadFile(csvPath); err != nil || len(games) != 3 {
		t.Errorf("LoadFile(csv) = %d games, %v, want 3, nil", len(games), err)
	}
	if games, err := LoadFile(jsonPath); err != nil || len(games) != 2 {
		t.Errorf("LoadFile(json) = %d games, %v, want 2, nil", len(games), err)
	}
	if _, err := LoadFile(xmlPath); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadFile(xml) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile(missing) error = nil, want error")
	}
}

func TestParseCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"42", 42},
		{" 7 ", 7},
		{"", 0},
		{"-5", 0},
		{"1,234", 0},
		{"12.5", 0},
		{"abc", 0},
		{"99999999999999999999999", 0},
	}

	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
