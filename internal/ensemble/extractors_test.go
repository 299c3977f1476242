// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ensemble

import (
	"reflect"
	"testing"
)

func TestExtractVision(t *testing.T) {
	raw := RawResult{
		Labels: []Label{
			{Name: "Mountain", Score: 0.95},
			{Name: "Sky", Score: 0.88},
			{Name: "Maybe a goat", Score: 0.4},
		},
		Swatches: []Swatch{
			{R: 128, G: 128, B: 128}, // gray
			{R: 10, G: 80, B: 200},   // blue
		},
		Embedding: []float64{0.1, 0.2},
	}

	sig := Extract(SourceVision, raw)

	if sig.Source != SourceVision {
		t.Errorf("Source = %q, want %q", sig.Source, SourceVision)
	}
	wantKeywords := []string{"mountain", "sky"}
	if !reflect.DeepEqual(sig.Keywords, wantKeywords) {
		t.Errorf("Keywords = %v, want %v (sub-threshold labels dropped)", sig.Keywords, wantKeywords)
	}
	wantColors := []string{"blue", "gray"}
	if !reflect.DeepEqual(sig.Colors, wantColors) {
		t.Errorf("Colors = %v, want %v", sig.Colors, wantColors)
	}
	if !reflect.DeepEqual(sig.Embedding, raw.Embedding) {
		t.Errorf("Embedding = %v, want %v", sig.Embedding, raw.Embedding)
	}
	if sig.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want default 0.8", sig.Confidence)
	}
}

func TestExtractConceptsThreshold(t *testing.T) {
	raw := RawResult{
		Concepts: []Concept{
			{Name: "serene", Value: 0.31},
			{Name: "abstract", Value: 0.3},
			{Name: "noise", Value: 0.29},
		},
	}

	sig := Extract(SourceConcepts, raw)

	want := []string{"abstract", "serene"}
	if !reflect.DeepEqual(sig.Keywords, want) {
		t.Errorf("Keywords = %v, want %v (0.3 is inclusive)", sig.Keywords, want)
	}
	if sig.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want default 0.85", sig.Confidence)
	}
}

func TestExtractInterrogation(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		want    []string
	}{
		{
			name:    "vocabulary terms detected",
			caption: "An oil painting with soft lighting and a symmetrical composition",
			// "oil" also surfaces as the adjective preceding "painting".
			want: []string{"oil", "oil painting", "soft lighting", "symmetrical"},
		},
		{
			name:    "adjective before art noun captured",
			caption: "a moody painting of a harbor",
			// "a" is filtered as a stop word even though it precedes
			// the art noun via the second match position.
			want: []string{"moody"},
		},
		{
			name:    "empty caption yields no keywords",
			caption: "",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Extract(SourceInterrogation, RawResult{Caption: tt.caption})
			if !reflect.DeepEqual(sig.Keywords, tt.want) {
				t.Errorf("Keywords = %v, want %v", sig.Keywords, tt.want)
			}
		})
	}
}

func TestExtractInterrogationAdjectiveCap(t *testing.T) {
	caption := "vivid art. somber art. tender art. playful art. brooding art. festive art. gentle art."
	sig := Extract(SourceInterrogation, RawResult{Caption: caption})

	adjectives := 0
	for _, kw := range sig.Keywords {
		switch kw {
		case "vivid", "somber", "tender", "playful", "brooding", "festive", "gentle":
			adjectives++
		}
	}
	if adjectives > maxCaptionAdjectives {
		t.Errorf("caption contributed %d adjectives, want at most %d", adjectives, maxCaptionAdjectives)
	}
}

func TestExtractReportedConfidenceWins(t *testing.T) {
	sig := Extract(SourceVision, RawResult{Confidence: 0.42})
	if sig.Confidence != 0.42 {
		t.Errorf("Confidence = %v, want reported 0.42", sig.Confidence)
	}
}

func TestBucketSwatches(t *testing.T) {
	tests := []struct {
		name     string
		swatches []Swatch
		want     []string
	}{
		{
			name:     "no swatches",
			swatches: nil,
			want:     nil,
		},
		{
			name: "duplicates collapse",
			swatches: []Swatch{
				{R: 200, G: 30, B: 30},
				{R: 210, G: 40, B: 45},
			},
			want: []string{"red"},
		},
		{
			name: "achromatic buckets never trigger multicolor",
			swatches: []Swatch{
				{R: 10, G: 10, B: 10},    // black
				{R: 128, G: 128, B: 128}, // gray
				{R: 240, G: 240, B: 240}, // white
				{R: 200, G: 30, B: 30},   // red
			},
			want: []string{"black", "gray", "red", "white"},
		},
		{
			name: "five hue families collapse to multicolor",
			swatches: []Swatch{
				{R: 200, G: 30, B: 30},  // red
				{R: 220, G: 140, B: 30}, // orange
				{R: 180, G: 200, B: 40}, // yellow
				{R: 40, G: 180, B: 60},  // green
				{R: 40, G: 80, B: 200},  // blue
			},
			want: []string{"multicolor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bucketSwatches(tt.swatches)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("bucketSwatches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordSet(t *testing.T) {
	s := newKeywordSet()

	if !s.add("  Mountain ") {
		t.Error("add of new keyword = false, want true")
	}
	if s.add("mountain") {
		t.Error("add of duplicate keyword = true, want false")
	}
	if s.add("") {
		t.Error("add of empty keyword = true, want false")
	}
	if !s.has("MOUNTAIN") {
		t.Error("has is not case-insensitive")
	}
	if s.len() != 1 {
		t.Errorf("len = %d, want 1", s.len())
	}
}
