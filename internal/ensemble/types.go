// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ensemble

import (
	"context"
	"time"
)

// Source identifies one analysis provider in the ensemble.
type Source string

const (
	// SourceVision is a cloud vision API (label + color detection).
	SourceVision Source = "vision"
	// SourceConcepts is a concept-tagging provider.
	SourceConcepts Source = "concepts"
	// SourceInterrogation is an image captioning / interrogation model.
	SourceInterrogation Source = "interrogation"
	// SourceLocalModel is a locally hosted classification model.
	SourceLocalModel Source = "local_model"
	// SourceStyleTransfer is a style-detection model.
	SourceStyleTransfer Source = "style_transfer"
)

// AllSources lists every source in canonical order. Collection results are
// keyed by this order so downstream combination is deterministic regardless
// of network timing.
var AllSources = []Source{
	SourceVision,
	SourceConcepts,
	SourceInterrogation,
	SourceLocalModel,
	SourceStyleTransfer,
}

// DefaultConfidence returns the fixed confidence attributed to a source
// when the provider does not report one itself.
func (s Source) DefaultConfidence() float64 {
	switch s {
	case SourceVision:
		return 0.8
	case SourceConcepts:
		return 0.85
	case SourceInterrogation:
		return 0.7
	case SourceLocalModel:
		return 0.6
	case SourceStyleTransfer:
		return 0.5
	default:
		return 0
	}
}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case SourceVision, SourceConcepts, SourceInterrogation, SourceLocalModel, SourceStyleTransfer:
		return true
	default:
		return false
	}
}

// Signal is one source's normalized analysis output. Signals are produced
// once per collection, consumed by the combiner, and then discarded.
type Signal struct {
	// Source identifies the producing provider.
	Source Source `json:"source"`

	// Keywords is the deduplicated, lower-cased keyword set.
	Keywords []string `json:"keywords"`

	// Colors is the set of semantic palette names, if the source
	// reports colors.
	Colors []string `json:"colors,omitempty"`

	// Embedding is an optional feature vector.
	Embedding []float64 `json:"embedding,omitempty"`

	// Confidence is the source confidence in [0, 1]. Provider-reported
	// when available, otherwise the source's fixed default.
	Confidence float64 `json:"confidence"`
}

// CombinedAnalysis is the fused description of an image after ensemble
// aggregation. It is constructed once by Combine and never mutated.
type CombinedAnalysis struct {
	// Keywords is the ordered-unique union of all signal keywords.
	Keywords []string `json:"keywords"`

	// Colors is the ordered-unique union of all signal colors, after
	// backfill, contextual inference, and the correction pass.
	Colors []string `json:"colors"`

	// Style is the classified artwork style ("mixed" when unresolved).
	Style string `json:"style"`

	// Mood is the classified mood ("neutral" when unresolved).
	Mood string `json:"mood"`

	// Confidence is the arithmetic mean of contributing source
	// confidences, clamped to [0, 1]. Zero when no source contributed.
	Confidence float64 `json:"confidence"`

	// Embedding is the weighted element-wise sum of contributing
	// embeddings. May be empty when no source supplied one.
	Embedding []float64 `json:"embedding,omitempty"`
}

// SourceConfig controls one source's participation in collection.
type SourceConfig struct {
	// Enabled dispatches the source during collection.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// Weight scales the source's embedding contribution during fusion.
	Weight float64 `json:"weight" koanf:"weight"`
}

// Config enumerates per-source collection settings.
type Config map[Source]SourceConfig

// DefaultSourceConfig returns the default ensemble configuration with every
// source enabled at equal weight.
func DefaultSourceConfig() Config {
	cfg := make(Config, len(AllSources))
	for _, s := range AllSources {
		cfg[s] = SourceConfig{Enabled: true, Weight: 0.5}
	}
	return cfg
}

// SourceError records one failed provider call. Failures degrade ensemble
// coverage but never abort the overall collection.
type SourceError struct {
	// Source is the provider that failed.
	Source Source `json:"source"`

	// Message describes the failure.
	Message string `json:"message"`

	// Timestamp is when the failure was observed.
	Timestamp time.Time `json:"timestamp"`
}

// RawResult is a provider's decoded payload, normalized at the collector
// boundary so extractors never inspect provider-specific wire shapes.
// Only the fields relevant to the producing source are populated.
type RawResult struct {
	// Labels are object/label detections with per-label scores (vision).
	Labels []Label

	// Swatches are dominant color swatches (vision).
	Swatches []Swatch

	// Concepts are concept tags with activation values (concepts).
	Concepts []Concept

	// Caption is free-form descriptive text (interrogation).
	Caption string

	// Classes are classification outputs (local model).
	Classes []Class

	// Styles are detected style labels (style transfer).
	Styles []string

	// Embedding is an optional feature vector (vision, local model).
	Embedding []float64

	// Confidence is the provider-reported overall confidence.
	// Zero means the provider did not report one.
	Confidence float64
}

// Label is one object/label detection.
type Label struct {
	Name  string
	Score float64
}

// Swatch is one dominant color swatch in RGB.
type Swatch struct {
	R, G, B int
}

// Concept is one concept tag.
type Concept struct {
	Name  string
	Value float64
}

// Class is one classification output.
type Class struct {
	Name        string
	Probability float64
}

// Provider fetches one source's raw analysis for an image. Implementations
// wrap the actual network clients and must honor context cancellation.
type Provider interface {
	// Source identifies which ensemble source this provider serves.
	Source() Source

	// AnalyzeImage submits image bytes and returns the decoded result.
	AnalyzeImage(ctx context.Context, image []byte) (RawResult, error)
}
