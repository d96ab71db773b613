// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/gamerec/internal/auth"
	"github.com/tomtom215/gamerec/internal/authz"
	"github.com/tomtom215/gamerec/internal/catalog"
	"github.com/tomtom215/gamerec/internal/logging"
	"github.com/tomtom215/gamerec/internal/recommend"
	"github.com/tomtom215/gamerec/internal/results"
)

var (
	// ErrAdminDisabled is returned when no admin token secret is configured.
	ErrAdminDisabled = errors.New("admin routes are disabled")

	// ErrReloadThrottled is returned when manual reloads exceed the limit.
	ErrReloadThrottled = errors.New("catalog reload throttled")

	// ErrAuditDisabled is returned when no audit trail is configured.
	ErrAuditDisabled = errors.New("audit trail is disabled")
)

// errorMapping binds a sentinel to a response. An empty message reuses
// err.Error().
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{recommend.ErrKTooLarge, http.StatusBadRequest, ErrCodeValidationFailed, ""},
	{recommend.ErrDuplicateIdentity, http.StatusConflict, ErrCodeConflict, ""},
	{results.ErrResultNotFound, http.StatusNotFound, ErrCodeNotFound, "Result not found or expired"},
	{results.ErrResultExpired, http.StatusNotFound, ErrCodeNotFound, "Result not found or expired"},
	{catalog.ErrGameNotFound, http.StatusNotFound, ErrCodeNotFound, "Game not found"},
	{catalog.ErrNotLoaded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog is not loaded"},
	{catalog.ErrReloadUnavailable, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog reload is temporarily unavailable"},
	{ErrReloadThrottled, http.StatusTooManyRequests, ErrCodeTooManyRequests, ""},
	{auth.ErrMissingToken, http.StatusUnauthorized, ErrCodeUnauthorized, "Valid admin bearer token required"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, ErrCodeUnauthorized, "Valid admin bearer token required"},
	{auth.ErrUnknownRole, http.StatusForbidden, ErrCodeForbidden, ""},
	{authz.ErrDenied, http.StatusForbidden, ErrCodeForbidden, "Insufficient permissions"},
	{ErrAdminDisabled, http.StatusNotFound, ErrCodeNotFound, ""},
	{ErrAuditDisabled, http.StatusNotFound, ErrCodeNotFound, ""},
}

// respondDomainError maps package sentinels to HTTP responses. Unknown
// errors become 500 and are logged with the request context.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		message := m.message
		if message == "" {
			message = err.Error()
		}
		if m.status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", `Bearer realm="gamerec-admin"`)
		}
		rw.Error(m.status, m.code, message)
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")
	rw.InternalError("Internal server error")
}
