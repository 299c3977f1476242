// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/catalog"
)

// popularityWindow is the trailing window popularity is computed over.
const popularityWindow = 30 * 24 * time.Hour

// jitterCeiling caps the random score given to artworks with no
// interactions so they surface occasionally but never outrank genuinely
// popular pieces.
const jitterCeiling = 0.5

// PopularityRanker ranks candidates by mean weighted rating over a
// trailing window. It needs no user context and is the terminal fallback:
// it always produces a ranking, even over a cold store.
type PopularityRanker struct {
	src    InteractionSource
	logger zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPopularityRanker creates a popularity ranker. The seed fixes the
// zero-interaction jitter sequence, which keeps tests deterministic.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPopularityRanker(src InteractionSource, seed int64, logger zerolog.Logger) *PopularityRanker {
	return &PopularityRanker{
		src:    src,
		logger: logger.With().Str("component", "popularity_ranker").Logger(),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // jitter, not security
	}
}

// Rank scores the candidates by windowed popularity. limit <= 0 means
// unlimited.
func (r *PopularityRanker) Rank(ctx context.Context, candidates []catalog.ArtworkFeatures, limit int) []Recommendation {
	since := time.Now().Add(-popularityWindow)

	interactions, err := r.src.AllSince(ctx, since)
	if err != nil {
		r.logger.Warn().Err(err).Msg("interaction read failed, popularity degrades to jitter only")
		interactions = nil
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range interactions {
		in := &interactions[i]
		sums[in.ArtworkID] += float64(in.Weight)
		counts[in.ArtworkID]++
	}

	out := make([]Recommendation, 0, len(candidates))
	for i := range candidates {
		art := &candidates[i]

		var score float64
		var reason string
		if n := counts[art.ID]; n > 0 {
			score = sums[art.ID] / float64(n)
			reason = "popular with other collectors recently"
		} else {
			score = r.jitter()
			reason = "new and waiting to be discovered"
		}

		out = append(out, Recommendation{
			Artwork: *art,
			Score:   score,
			Reason:  reason,
			Method:  MethodPopularity,
		})
	}

	sortByScore(out)
	return truncate(out, limit)
}

func (r *PopularityRanker) jitter() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() * jitterCeiling
}
