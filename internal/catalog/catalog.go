// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package catalog defines the candidate artwork surface consumed by the
// recommendation ranker.
//
// The catalog itself is an external collaborator; this package holds the
// read-only feature shape, the fetch contract, and a snapshot cache that
// keeps the last good candidate set available when the upstream catalog
// is briefly unreachable.
package catalog

import (
	"context"
	"time"
)

// ArtworkFeatures is the read-only feature vector of one candidate
// artwork, supplied by the external catalog service.
type ArtworkFeatures struct {
	// ID identifies the artwork.
	ID string `json:"id"`

	// Title is a display title, carried through to recommendations.
	Title string `json:"title,omitempty"`

	// Keywords describe the artwork's subject matter.
	Keywords []string `json:"keywords,omitempty"`

	// Style is the artwork's classified style.
	Style string `json:"style,omitempty"`

	// Mood is the artwork's classified mood.
	Mood string `json:"mood,omitempty"`

	// Colors are the artwork's semantic palette names.
	Colors []string `json:"colors,omitempty"`

	// Embedding is an optional feature vector.
	Embedding []float64 `json:"embedding,omitempty"`

	// Optional scalar color properties on a 0-100 scale. Nil means the
	// catalog did not compute the property for this artwork.
	Brightness *float64 `json:"brightness,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
	Contrast   *float64 `json:"contrast,omitempty"`
}

// Provider fetches the current candidate artwork set. The ranker treats
// the result as a value, never as a source of truth to mutate.
type Provider interface {
	FetchCandidates(ctx context.Context) ([]ArtworkFeatures, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]ArtworkFeatures, error)

// FetchCandidates calls f.
func (f ProviderFunc) FetchCandidates(ctx context.Context) ([]ArtworkFeatures, error) {
	return f(ctx)
}

// Static returns a Provider serving a fixed candidate set.
func Static(candidates []ArtworkFeatures) Provider {
	return ProviderFunc(func(context.Context) ([]ArtworkFeatures, error) {
		return candidates, nil
	})
}

// snapshot is one cached candidate set.
type snapshot struct {
	candidates []ArtworkFeatures
	fetchedAt  time.Time
}
