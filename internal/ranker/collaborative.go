// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/catalog"
)

// Collaborative filtering thresholds.
const (
	// minInteractions is the minimum total interactions for a user to
	// participate at all, on either side of the similarity.
	minInteractions = 3

	// minContributors is the minimum distinct similar users that must
	// have rated an artwork for it to score.
	minContributors = 2

	// confidenceSaturation is the contributor count at which confidence
	// reaches 1.
	confidenceSaturation = 5
)

// CollaborativeRanker scores candidates by what similar users engaged
// with. Cold-start users (fewer than minInteractions recorded actions)
// yield an empty list rather than an error, so callers can fall back.
type CollaborativeRanker struct {
	src    InteractionSource
	logger zerolog.Logger
}

// NewCollaborativeRanker creates a collaborative ranker over the
// interaction source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollaborativeRanker(src InteractionSource, logger zerolog.Logger) *CollaborativeRanker {
	return &CollaborativeRanker{
		src:    src,
		logger: logger.With().Str("component", "collaborative_ranker").Logger(),
	}
}

// userRatings is one user's artwork ratings plus their raw event count.
type userRatings struct {
	ratings map[string]float64
	events  int
}

// Rank scores the candidates for userID. limit <= 0 means unlimited.
func (r *CollaborativeRanker) Rank(ctx context.Context, userID string, candidates []catalog.ArtworkFeatures, limit int) []Recommendation {
	interactions, err := r.src.AllSince(ctx, time.Time{})
	if err != nil {
		r.logger.Warn().Err(err).Msg("interaction read failed, collaborative scoring skipped")
		return nil
	}

	users := make(map[string]*userRatings)
	for i := range interactions {
		in := &interactions[i]
		u, ok := users[in.UserID]
		if !ok {
			u = &userRatings{ratings: make(map[string]float64)}
			users[in.UserID] = u
		}
		u.events++
		// The strongest action on an artwork is its rating.
		if w := float64(in.Weight); w > u.ratings[in.ArtworkID] {
			u.ratings[in.ArtworkID] = w
		}
	}

	target, ok := users[userID]
	if !ok || target.events < minInteractions {
		return nil
	}

	similarities := make(map[string]float64)
	for otherID, other := range users {
		if otherID == userID || other.events < minInteractions {
			continue
		}
		if sim := userSimilarity(target.ratings, other.ratings); sim > 0 {
			similarities[otherID] = sim
		}
	}
	if len(similarities) == 0 {
		return nil
	}

	out := make([]Recommendation, 0, len(candidates))
	for i := range candidates {
		art := &candidates[i]

		sum, contributors := 0.0, 0
		for otherID, sim := range similarities {
			rating, rated := users[otherID].ratings[art.ID]
			if !rated {
				continue
			}
			sum += rating * sim
			contributors++
		}
		if contributors < minContributors {
			continue
		}

		score := sum / float64(contributors)
		confidence := float64(contributors) / confidenceSaturation
		if confidence > 1 {
			confidence = 1
		}

		out = append(out, Recommendation{
			Artwork:    *art,
			Score:      score * confidence,
			Reason:     fmt.Sprintf("liked by %d users with similar taste", contributors),
			Method:     MethodCollaborative,
			Confidence: confidence,
		})
	}

	sortByScore(out)
	return truncate(out, limit)
}

// userSimilarity is the cosine similarity over exactly the artworks both
// users rated. Zero shared artworks yield 0.
func userSimilarity(a, b map[string]float64) float64 {
	var va, vb []float64
	for artworkID, ra := range a {
		if rb, ok := b[artworkID]; ok {
			va = append(va, ra)
			vb = append(vb, rb)
		}
	}
	return Cosine(va, vb)
}
