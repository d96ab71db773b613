// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/gamerec/internal/auth"
	"github.com/tomtom215/gamerec/internal/authz"
	"github.com/tomtom215/gamerec/internal/catalog"
	"github.com/tomtom215/gamerec/internal/recommend"
	"github.com/tomtom215/gamerec/internal/results"
)

func TestDecodeJSONBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Ada","genres":"Puzzle","categories":"Co-op"}`, false},
		{"trailing whitespace", "{\"name\":\"Ada\"}\n  ", false},
		{"empty", "", true},
		{"trailing object", `{"name":"Ada"}{"name":"Bob"}`, true},
		{"unknown field", `{"nickname":"Ada"}`, true},
		{"wrong type", `{"name":42}`, true},
		{"too large", `{"name":"` + strings.Repeat("a", maxRequestBody) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req RecommendRequest
			err := decodeJSONBody(httptest.NewRecorder(), r, &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeJSONBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errMalformedBody) {
				t.Errorf("error = %v, want errMalformedBody", err)
			}
		})
	}
}

func TestRecommendRequest_Profile(t *testing.T) {
	t.Parallel()

	k := 3
	req := RecommendRequest{
		Name:       "Cafe\u0301",
		Genres:     "Puzzle",
		Categories: "Co-op",
		Platform:   "  linux ",
		K:          &k,
	}

	if got := req.Profile().Name; got != "Caf\u00e9" {
		t.Errorf("Profile().Name = %q, want NFC form", got)
	}
	if got := req.Preferences().Platform; got != "linux" {
		t.Errorf("Preferences().Platform = %q, want linux", got)
	}
}

func TestRespondDomainError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"k too large", recommend.ErrKTooLarge, http.StatusBadRequest},
		{"duplicate identity", fmt.Errorf("wrap: %w", recommend.ErrDuplicateIdentity), http.StatusConflict},
		{"result not found", results.ErrResultNotFound, http.StatusNotFound},
		{"result expired", results.ErrResultExpired, http.StatusNotFound},
		{"game not found", catalog.ErrGameNotFound, http.StatusNotFound},
		{"catalog not loaded", catalog.ErrNotLoaded, http.StatusServiceUnavailable},
		{"reload throttled", ErrReloadThrottled, http.StatusTooManyRequests},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"unknown role", auth.ErrUnknownRole, http.StatusForbidden},
		{"denied", authz.ErrDenied, http.StatusForbidden},
		{"admin disabled", ErrAdminDisabled, http.StatusNotFound},
		{"unknown", errBoom, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			respondDomainError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
