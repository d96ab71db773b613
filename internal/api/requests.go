// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gamerec/internal/catalog"
	"github.com/tomtom215/gamerec/internal/recommend"
	"github.com/tomtom215/gamerec/internal/validation"
)

// maxRequestBody bounds JSON request bodies.
const maxRequestBody = 1 << 20

// RecommendRequest is the body of POST /api/v1/recommendations.
//
// Fields:
//   - Name: display name of the profile; must not equal a catalog game name
//   - Genres, Categories: comma-separated label lists
//   - Free, Platform, ReleaseYear: hard filters applied before ranking
//   - K: result size; omitted means the configured default, 0 means empty
type RecommendRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Genres      string `json:"genres" validate:"required,labels,max=1000"`
	Categories  string `json:"categories" validate:"required,labels,max=1000"`
	Free        bool   `json:"free"`
	Platform    string `json:"platform" validate:"max=50"`
	ReleaseYear int    `json:"release_year" validate:"omitempty,gte=1970,lte=2100"`
	K           *int   `json:"k,omitempty" validate:"omitempty,gte=0"`
}

// Profile builds the engine profile. The name is NFC-normalised so it
// compares equal to catalog names.
func (req *RecommendRequest) Profile() recommend.Profile {
	return recommend.Profile{
		Name:       catalog.NormalizeName(req.Name),
		Genres:     req.Genres,
		Categories: req.Categories,
	}
}

// Preferences builds the hard filter.
func (req *RecommendRequest) Preferences() catalog.Preferences {
	return catalog.Preferences{
		Free:        req.Free,
		Platform:    strings.TrimSpace(req.Platform),
		ReleaseYear: req.ReleaseYear,
	}
}

// errMalformedBody wraps JSON decoding failures.
var errMalformedBody = errors.New("malformed request body")

// decodeJSONBody decodes a single JSON object into dst, rejecting unknown
// fields and trailing data.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: body is empty", errMalformedBody)
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", errMalformedBody)
	}
	return nil
}

// bindRecommendRequest decodes and validates the body. On failure it writes
// a 400 VALIDATION_ERROR response and returns false.
func bindRecommendRequest(w http.ResponseWriter, r *http.Request) (*RecommendRequest, bool) {
	var req RecommendRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		NewResponseWriter(w, r).ValidationError(err.Error(), nil)
		return nil, false
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return nil, false
	}
	return &req, true
}
