// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/gamerec/internal/results"
)

// TopicRecommendationGenerated carries RecommendationGenerated events.
const TopicRecommendationGenerated = "recommendations.generated"

// SchemaVersion is the current RecommendationGenerated payload version.
const SchemaVersion = 1

// ErrInvalidEvent is returned when an event is missing required fields.
var ErrInvalidEvent = errors.New("invalid event")

// RecommendationGenerated is emitted once per stored recommendation result.
type RecommendationGenerated struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	ResultID      string    `json:"result_id"`
	ProfileName   string    `json:"profile_name"`
	Candidates    int       `json:"candidates"`
	Returned      int       `json:"returned"`
	TopGame       string    `json:"top_game,omitempty"`
	TopScore      float64   `json:"top_score,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewRecommendationGenerated builds the event for a stored result.
func NewRecommendationGenerated(r *results.Result) *RecommendationGenerated {
	ev := &RecommendationGenerated{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		ResultID:      r.ID,
		ProfileName:   r.Profile.Name,
		Candidates:    r.TotalCandidates,
		Returned:      len(r.Items),
		Timestamp:     time.Now().UTC(),
	}
	if top, ok := r.Top(); ok {
		ev.TopGame = top.Name
		ev.TopScore = top.Score
	}
	return ev
}

// Validate checks the required fields.
func (e *RecommendationGenerated) Validate() error {
	switch {
	case e.EventID == "":
		return fmt.Errorf("%w: missing event_id", ErrInvalidEvent)
	case e.ResultID == "":
		return fmt.Errorf("%w: missing result_id", ErrInvalidEvent)
	case e.Timestamp.IsZero():
		return fmt.Errorf("%w: missing timestamp", ErrInvalidEvent)
	case e.Returned < 0 || e.Candidates < 0:
		return fmt.Errorf("%w: negative count", ErrInvalidEvent)
	}
	return nil
}

// Marshal encodes the event as JSON.
func (e *RecommendationGenerated) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalRecommendationGenerated decodes and validates a payload.
func UnmarshalRecommendationGenerated(data []byte) (*RecommendationGenerated, error) {
	var ev RecommendationGenerated
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}
