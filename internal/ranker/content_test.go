// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

import (
	"math"
	"strings"
	"testing"

	"github.com/artfolio/artfolio/internal/catalog"
	"github.com/artfolio/artfolio/internal/profile"
)

func profileWith(styles, moods, colors map[string]float64) *profile.UserProfile {
	p := profile.NewProfile("u1")
	for k, v := range styles {
		p.PreferredStyles[k] = v
	}
	for k, v := range moods {
		p.PreferredMoods[k] = v
	}
	for k, v := range colors {
		p.PreferredColors[k] = v
	}
	return p
}

func TestContentRankScoring(t *testing.T) {
	p := profileWith(
		map[string]float64{"abstract": 1},
		map[string]float64{"calm": 0.8},
		map[string]float64{"blue": 1, "green": 0.5},
	)

	candidates := []catalog.ArtworkFeatures{
		{ID: "match", Style: "abstract", Mood: "calm", Colors: []string{"blue", "green"}},
		{ID: "miss", Style: "pop", Mood: "energetic", Colors: []string{"red"}},
	}

	recs := NewContentRanker().Rank(p, nil, candidates, 0)

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1 (below-cutoff excluded)", len(recs))
	}
	rec := recs[0]
	if rec.Artwork.ID != "match" {
		t.Errorf("top artwork = %q, want %q", rec.Artwork.ID, "match")
	}
	if rec.Method != MethodContent {
		t.Errorf("Method = %q, want %q", rec.Method, MethodContent)
	}

	// 0.30*1 + 0.25*0.8 + 0.20*0.75 = 0.65; the artwork carries no
	// embedding or scalar properties, so those terms are zero.
	if math.Abs(rec.Score-0.65) > 1e-9 {
		t.Errorf("Score = %v, want 0.65", rec.Score)
	}
}

func TestContentRankCutoff(t *testing.T) {
	p := profileWith(map[string]float64{"abstract": 0.2}, nil, nil)

	candidates := []catalog.ArtworkFeatures{
		// 0.30 * 0.2 = 0.06 < 0.1
		{ID: "weak", Style: "abstract"},
	}

	recs := NewContentRanker().Rank(p, nil, candidates, 0)
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want 0 (score below cutoff)", len(recs))
	}
}

func TestContentRankReasons(t *testing.T) {
	p := profileWith(
		map[string]float64{"abstract": 1},
		map[string]float64{"calm": 1},
		map[string]float64{"blue": 1},
	)

	candidates := []catalog.ArtworkFeatures{
		{ID: "a", Style: "abstract", Mood: "calm", Colors: []string{"blue"}},
	}

	recs := NewContentRanker().Rank(p, nil, candidates, 0)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}

	reason := recs[0].Reason
	for _, want := range []string{"abstract", "calm", "colors you like"} {
		if !strings.Contains(reason, want) {
			t.Errorf("Reason = %q, missing %q", reason, want)
		}
	}
}

func TestContentRankColorPropSimilarity(t *testing.T) {
	p := profileWith(map[string]float64{"pop": 1}, nil, nil)
	p.ColorPrefs.Brightness = 80
	p.ColorPrefs.Saturation = 60

	brightness := 80.0
	saturation := 40.0
	candidates := []catalog.ArtworkFeatures{
		{ID: "a", Style: "pop", Brightness: &brightness, Saturation: &saturation},
	}

	recs := NewContentRanker().Rank(p, nil, candidates, 0)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}

	// propSim = mean(1 - 0/100, 1 - 20/100) = 0.9; contrast is absent and
	// excluded from the mean. Total = 0.30*1 + 0.15*0.9 = 0.435.
	want := 0.30 + 0.15*0.9
	if math.Abs(recs[0].Score-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", recs[0].Score, want)
	}
}

func TestContentRankEmbeddingOverride(t *testing.T) {
	p := profile.NewProfile("u1")
	p.PreferredStyles["pop"] = 1

	emb := []float64{1, 0}
	candidates := []catalog.ArtworkFeatures{
		{ID: "near", Style: "pop", Embedding: []float64{1, 0}},
		{ID: "far", Style: "pop", Embedding: []float64{0, 1}},
	}

	recs := NewContentRanker().Rank(p, emb, candidates, 0)
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Artwork.ID != "near" {
		t.Errorf("top artwork = %q, want %q (embedding similarity decides)", recs[0].Artwork.ID, "near")
	}
	if diff := recs[0].Score - recs[1].Score; math.Abs(diff-0.10) > 1e-9 {
		t.Errorf("score gap = %v, want 0.10 (full embedding term)", diff)
	}
}

func TestContentRankLimit(t *testing.T) {
	p := profileWith(map[string]float64{"pop": 1}, nil, nil)

	var candidates []catalog.ArtworkFeatures
	for _, id := range []string{"a", "b", "c", "d"} {
		candidates = append(candidates, catalog.ArtworkFeatures{ID: id, Style: "pop"})
	}

	recs := NewContentRanker().Rank(p, nil, candidates, 2)
	if len(recs) != 2 {
		t.Errorf("got %d recommendations, want 2 (limit applied)", len(recs))
	}
}

func TestContentRankNilProfile(t *testing.T) {
	recs := NewContentRanker().Rank(nil, nil, []catalog.ArtworkFeatures{{ID: "a"}}, 0)
	if recs != nil {
		t.Errorf("got %v, want nil for nil profile", recs)
	}
}
