// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

import (
	"context"
	"time"

	"github.com/artfolio/artfolio/internal/catalog"
	"github.com/artfolio/artfolio/internal/ensemble"
	"github.com/artfolio/artfolio/internal/profile"
)

// Method identifies one ranking strategy.
type Method string

const (
	// MethodAuto lets the engine pick per experiment bucket and data
	// availability.
	MethodAuto Method = ""

	MethodContent       Method = "content"
	MethodCollaborative Method = "collaborative"
	MethodHybrid        Method = "hybrid"
	MethodPopularity    Method = "popularity"
)

// Valid reports whether m is a recognized method selector.
func (m Method) Valid() bool {
	switch m {
	case MethodAuto, MethodContent, MethodCollaborative, MethodHybrid, MethodPopularity:
		return true
	default:
		return false
	}
}

// Recommendation is one ranked artwork.
type Recommendation struct {
	// Artwork is the recommended candidate.
	Artwork catalog.ArtworkFeatures `json:"artwork"`

	// Score is the method-specific ranking score.
	Score float64 `json:"score"`

	// Reason is a human-readable explanation of why the artwork ranked.
	Reason string `json:"reason,omitempty"`

	// Method is the strategy that produced the score.
	Method Method `json:"method"`

	// Confidence qualifies collaborative scores (contributor coverage).
	// Zero for methods that do not compute one.
	Confidence float64 `json:"confidence,omitempty"`
}

// Request describes one recommendation call.
type Request struct {
	// UserID selects the preference profile. Empty means anonymous.
	UserID string `json:"user_id,omitempty"`

	// Analysis is an optional combined image analysis; when present and
	// no profile exists, ranking keys off the analyzed image instead.
	Analysis *ensemble.CombinedAnalysis `json:"analysis,omitempty"`

	// Limit caps the result length. Non-positive means the engine default.
	Limit int `json:"limit,omitempty"`

	// Method forces a strategy; MethodAuto picks per experiment bucket.
	Method Method `json:"method,omitempty"`
}

// InteractionSource supplies recorded interactions for collaborative and
// popularity scoring. Implementations return newest first.
type InteractionSource interface {
	AllSince(ctx context.Context, since time.Time) ([]profile.Interaction, error)
}
