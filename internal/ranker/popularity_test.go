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
	"github.com/artfolio/artfolio/internal/profile"
)

func TestPopularityRank(t *testing.T) {
	f := &fakeInteractions{
		interactions: []profile.Interaction{
			interactionOf("u1", "hot", profile.InteractionPurchaseRequest, time.Hour),
			interactionOf("u2", "hot", profile.InteractionFavorite, time.Hour),
			interactionOf("u1", "warm", profile.InteractionView, time.Hour),
		},
	}

	r := NewPopularityRanker(f, 1, zerolog.Nop())
	candidates := []catalog.ArtworkFeatures{{ID: "cold"}, {ID: "warm"}, {ID: "hot"}}

	recs := r.Rank(context.Background(), candidates, 0)

	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	// hot: mean(5,4) = 4.5; warm: 1; cold: jitter < 0.5.
	if recs[0].Artwork.ID != "hot" {
		t.Errorf("top artwork = %q, want %q", recs[0].Artwork.ID, "hot")
	}
	if recs[1].Artwork.ID != "warm" {
		t.Errorf("second artwork = %q, want %q", recs[1].Artwork.ID, "warm")
	}
	if recs[2].Artwork.ID != "cold" {
		t.Errorf("third artwork = %q, want %q", recs[2].Artwork.ID, "cold")
	}
	if recs[2].Score >= jitterCeiling {
		t.Errorf("zero-interaction score = %v, want < %v", recs[2].Score, jitterCeiling)
	}
	for _, rec := range recs {
		if rec.Method != MethodPopularity {
			t.Errorf("Method = %q, want %q", rec.Method, MethodPopularity)
		}
	}
}

// Interactions older than the trailing window do not count.
func TestPopularityWindow(t *testing.T) {
	f := &fakeInteractions{
		interactions: []profile.Interaction{
			interactionOf("u1", "stale", profile.InteractionPurchaseRequest, 31*24*time.Hour),
			interactionOf("u1", "fresh", profile.InteractionView, time.Hour),
		},
	}

	r := NewPopularityRanker(f, 1, zerolog.Nop())
	recs := r.Rank(context.Background(), []catalog.ArtworkFeatures{{ID: "stale"}, {ID: "fresh"}}, 0)

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	// fresh has a real rating of 1; stale fell out of the window and gets
	// jitter below 0.5.
	if recs[0].Artwork.ID != "fresh" {
		t.Errorf("top artwork = %q, want %q", recs[0].Artwork.ID, "fresh")
	}
}

// A cold store still yields a full ranking, never an error or empty list.
func TestPopularityColdStore(t *testing.T) {
	r := NewPopularityRanker(&fakeInteractions{}, 1, zerolog.Nop())
	recs := r.Rank(context.Background(), []catalog.ArtworkFeatures{{ID: "a"}, {ID: "b"}}, 0)

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.Score < 0 || rec.Score >= jitterCeiling {
			t.Errorf("jitter score = %v, want in [0, %v)", rec.Score, jitterCeiling)
		}
	}
}

func TestPopularitySeededJitterDeterministic(t *testing.T) {
	candidates := []catalog.ArtworkFeatures{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	r1 := NewPopularityRanker(&fakeInteractions{}, 42, zerolog.Nop())
	r2 := NewPopularityRanker(&fakeInteractions{}, 42, zerolog.Nop())

	recs1 := r1.Rank(context.Background(), candidates, 0)
	recs2 := r2.Rank(context.Background(), candidates, 0)

	for i := range recs1 {
		if recs1[i].Artwork.ID != recs2[i].Artwork.ID || recs1[i].Score != recs2[i].Score {
			t.Errorf("rank %d differs across identically seeded rankers", i)
		}
	}
}
