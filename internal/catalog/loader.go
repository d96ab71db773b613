// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Column names shared by the CSV header and the JSON record keys.
const (
	colGameID          = "GameID"
	colName            = "Name"
	colGenres          = "Genres"
	colFree            = "Free"
	colPrice           = "Price"
	colPlatform        = "Platform"
	colCategories      = "Categories"
	colDescription     = "Description"
	colRecommendations = "Recommendations"
	colRating          = "Rating"
	colReleaseDate     = "ReleaseDate"
)

// requiredColumns must be present in a CSV header.
var requiredColumns = []string{colName, colGenres, colCategories}

// flexString accepts a JSON string, number, bool or null and keeps its text.
// Exported catalogs are inconsistent about quoting numeric columns.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case bytes.Equal(data, []byte("true")):
		*f = "TRUE"
	case bytes.Equal(data, []byte("false")):
		*f = "FALSE"
	default:
		*f = flexString(data)
	}
	return nil
}

// record is the on-disk shape of one catalog row.
type record struct {
	GameID          flexString `json:"GameID"`
	Name            flexString `json:"Name"`
	Genres          flexString `json:"Genres"`
	Free            flexString `json:"Free"`
	Price           flexString `json:"Price"`
	Platform        flexString `json:"Platform"`
	Categories      flexString `json:"Categories"`
	Description     flexString `json:"Description"`
	Recommendations flexString `json:"Recommendations"`
	Rating          flexString `json:"Rating"`
	ReleaseDate     flexString `json:"ReleaseDate"`
}

func (r *record) game() Game {
	return Game{
		GameID:          strings.TrimSpace(string(r.GameID)),
		Name:            string(r.Name),
		Genres:          string(r.Genres),
		Free:            parseFree(string(r.Free)),
		Price:           string(r.Price),
		Platform:        string(r.Platform),
		Categories:      string(r.Categories),
		Description:     string(r.Description),
		Recommendations: parseCount(string(r.Recommendations)),
		Rating:          parseCount(string(r.Rating)),
		ReleaseDate:     strings.TrimSpace(string(r.ReleaseDate)),
	}
}

// parseFree is true only for the two spellings exporters actually write.
func parseFree(s string) bool {
	s = strings.TrimSpace(s)
	return s == "TRUE" || s == "true"
}

// parseCount parses a non-negative decimal integer. Anything else,
// including signs and separators, is 0.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// LoadJSON reads a JSON array of catalog records.
func LoadJSON(r io.Reader) ([]Game, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}

	games := make([]Game, len(records))
	for i := range records {
		games[i] = records[i].game()
	}
	return games, nil
}

// LoadCSV reads a CSV catalog with a header row. Columns may appear in any
// order; unknown columns are ignored.
func LoadCSV(r io.Reader) ([]Game, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Game{}, nil
		}
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("catalog header missing column %q", col)
		}
	}

	field := func(row []string, col string) flexString {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return flexString(row[i])
	}

	var games []Game
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		rec := record{
			GameID:          field(row, colGameID),
			Name:            field(row, colName),
			Genres:          field(row, colGenres),
			Free:            field(row, colFree),
			Price:           field(row, colPrice),
			Platform:        field(row, colPlatform),
			Categories:      field(row, colCategories),
			Description:     field(row, colDescription),
			Recommendations: field(row, colRecommendations),
			Rating:          field(row, colRating),
			ReleaseDate:     field(row, colReleaseDate),
		}
		games = append(games, rec.game())
	}

	if games == nil {
		games = []Game{}
	}
	return games, nil
}

// LoadFile reads a catalog file, choosing the format by extension.
func LoadFile(path string) ([]Game, error) {
	var load func(io.Reader) ([]Game, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		load = LoadJSON
	case ".csv":
		load = LoadCSV
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	games, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return games, nil
}
