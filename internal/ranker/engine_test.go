// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/catalog"
	"github.com/artfolio/artfolio/internal/ensemble"
	"github.com/artfolio/artfolio/internal/profile"
)

// fakeHistory adapts fakeInteractions to the profile store's collaborator
// interfaces.
type fakeHistory struct {
	src *fakeInteractions
}

func (f *fakeHistory) History(ctx context.Context, userID string, limit int) ([]profile.Interaction, error) {
	all, err := f.src.AllSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	var out []profile.Interaction
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].UserID != userID {
			continue
		}
		out = append(out, all[i])
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeHistory) Append(_ context.Context, in profile.Interaction) error {
	f.src.interactions = append(f.src.interactions, in)
	return nil
}

func testEngine(src *fakeInteractions, candidates []catalog.ArtworkFeatures) *Engine {
	logger := zerolog.Nop()
	h := &fakeHistory{src: src}
	profiles := profile.NewStore(h, h, profile.DefaultStoreConfig(), logger)
	return NewEngine(
		profiles,
		catalog.Static(candidates),
		NewContentRanker(),
		NewCollaborativeRanker(src, logger),
		NewPopularityRanker(src, 1, logger),
		logger,
	)
}

// A user with no interactions and no image gets popularity results and
// never an error.
func TestEngineAnonymousFallsBackToPopularity(t *testing.T) {
	e := testEngine(&fakeInteractions{}, []catalog.ArtworkFeatures{{ID: "a"}, {ID: "b"}})

	recs, err := e.Recommend(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.Method != MethodPopularity {
			t.Errorf("Method = %q, want %q", rec.Method, MethodPopularity)
		}
	}
}

// A known user with zero history degrades through the personalized
// strategies to popularity.
func TestEngineColdUserFallsBackToPopularity(t *testing.T) {
	e := testEngine(&fakeInteractions{}, []catalog.ArtworkFeatures{{ID: "a"}})

	recs, err := e.Recommend(context.Background(), Request{UserID: "brand-new-user"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Method != MethodPopularity {
		t.Errorf("Method = %q, want %q", recs[0].Method, MethodPopularity)
	}
}

// An anonymous request with an image analysis ranks by content against an
// ephemeral profile derived from the analysis.
func TestEngineImageOnlyContentRanking(t *testing.T) {
	candidates := []catalog.ArtworkFeatures{
		{ID: "match", Style: "landscape", Mood: "calm", Colors: []string{"green", "blue"}},
		{ID: "miss", Style: "pop", Mood: "energetic", Colors: []string{"red"}},
	}
	e := testEngine(&fakeInteractions{}, candidates)

	recs, err := e.Recommend(context.Background(), Request{
		Analysis: &ensemble.CombinedAnalysis{
			Style:  "landscape",
			Mood:   "calm",
			Colors: []string{"green", "blue"},
		},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("got 0 recommendations, want at least 1")
	}
	if recs[0].Artwork.ID != "match" {
		t.Errorf("top artwork = %q, want %q", recs[0].Artwork.ID, "match")
	}
	if recs[0].Method != MethodContent {
		t.Errorf("Method = %q, want %q", recs[0].Method, MethodContent)
	}
}

func TestEngineExplicitMethodHonored(t *testing.T) {
	src := collaborativeFixture()
	e := testEngine(src, []catalog.ArtworkFeatures{{ID: "rec"}})

	recs, err := e.Recommend(context.Background(), Request{
		UserID: "u1",
		Method: MethodCollaborative,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Method != MethodCollaborative {
		t.Errorf("Method = %q, want %q", recs[0].Method, MethodCollaborative)
	}
}

func TestEngineHybridBlend(t *testing.T) {
	src := collaborativeFixture()
	// Give u1 a style affinity so content scoring has something to say
	// about the collaborative pick.
	for i := range src.interactions {
		if src.interactions[i].UserID == "u1" {
			src.interactions[i].ArtworkStyle = "abstract"
		}
	}
	candidates := []catalog.ArtworkFeatures{
		{ID: "rec", Style: "abstract"},
		{ID: "other", Style: "abstract"},
	}
	e := testEngine(src, candidates)

	recs, err := e.Recommend(context.Background(), Request{
		UserID: "u1",
		Method: MethodHybrid,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("got 0 recommendations, want at least 1")
	}
	if recs[0].Artwork.ID != "rec" {
		t.Errorf("top artwork = %q, want %q (content and collaborative agree)", recs[0].Artwork.ID, "rec")
	}
	for _, rec := range recs {
		if rec.Method != MethodHybrid {
			t.Errorf("Method = %q, want %q", rec.Method, MethodHybrid)
		}
	}
}

func TestEngineUnknownMethodRejected(t *testing.T) {
	e := testEngine(&fakeInteractions{}, []catalog.ArtworkFeatures{{ID: "a"}})

	_, err := e.Recommend(context.Background(), Request{Method: Method("psychic")})
	if err == nil {
		t.Error("Recommend() error = nil, want error for unknown method")
	}
}

func TestEngineEmptyCatalog(t *testing.T) {
	e := testEngine(&fakeInteractions{}, nil)

	recs, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want 0 for empty catalog", len(recs))
	}
}

func TestEngineLimit(t *testing.T) {
	var candidates []catalog.ArtworkFeatures
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, catalog.ArtworkFeatures{ID: id})
	}
	e := testEngine(&fakeInteractions{}, candidates)

	recs, err := e.Recommend(context.Background(), Request{Limit: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("got %d recommendations, want 3", len(recs))
	}
}
