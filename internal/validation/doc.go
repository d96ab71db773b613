// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

// Package validation wraps go-playground/validator v10 behind a process-wide
// singleton and converts its errors into the API's VALIDATION_ERROR shape.
//
// Field names in messages are taken from json tags, so clients see the names
// they sent:
//
//	type RecommendRequest struct {
//	    Name   string `json:"name" validate:"required,max=200"`
//	    Genres string `json:"genres" validate:"required,labels"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // apiErr.Message == "genres must contain at least one label"
//	}
//
// Custom tags:
//   - labels: a comma-separated list with at least one non-blank entry
package validation
