// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

import (
	"math"
	"sort"
	"strings"

	"github.com/artfolio/artfolio/internal/catalog"
	"github.com/artfolio/artfolio/internal/profile"
)

// Content score term weights. They sum to 1.
const (
	weightStyle     = 0.30
	weightMood      = 0.25
	weightColors    = 0.20
	weightColorProp = 0.15
	weightEmbedding = 0.10
)

// contentCutoff excludes candidates whose total score falls below it.
const contentCutoff = 0.1

// Reason thresholds: a sub-term contributes a reason clause only when it
// is informative on its own.
const (
	reasonStyleMood = 0.5
	reasonColors    = 0.5
	reasonColorProp = 0.7
	reasonEmbedding = 0.8
)

// userEmbeddingDims is the fixed size of the synthetic profile embedding.
const userEmbeddingDims = 64

// ContentRanker scores candidates by similarity between a user's learned
// preferences and each artwork's features. It is stateless and safe for
// concurrent use.
type ContentRanker struct{}

// NewContentRanker creates a content-based ranker.
func NewContentRanker() *ContentRanker {
	return &ContentRanker{}
}

// Rank scores every candidate against the profile and returns the
// survivors sorted descending. userEmbedding overrides the synthetic
// profile embedding when non-empty (image-keyed requests carry the fused
// analysis embedding). limit <= 0 means unlimited.
func (r *ContentRanker) Rank(p *profile.UserProfile, userEmbedding []float64, candidates []catalog.ArtworkFeatures, limit int) []Recommendation {
	if p == nil {
		return nil
	}
	if len(userEmbedding) == 0 {
		userEmbedding = syntheticEmbedding(p)
	}

	out := make([]Recommendation, 0, len(candidates))
	for i := range candidates {
		art := &candidates[i]

		styleMatch := p.PreferredStyles[art.Style]
		moodMatch := p.PreferredMoods[art.Mood]
		colorOverlap := colorOverlapScore(p, art.Colors)
		propSim := colorPropScore(p, art)
		embSim := embeddingScore(userEmbedding, art.Embedding)

		score := weightStyle*styleMatch +
			weightMood*moodMatch +
			weightColors*colorOverlap +
			weightColorProp*propSim +
			weightEmbedding*embSim
		if score < contentCutoff {
			continue
		}

		out = append(out, Recommendation{
			Artwork: *art,
			Score:   score,
			Reason:  contentReason(art, styleMatch, moodMatch, colorOverlap, propSim, embSim),
			Method:  MethodContent,
		})
	}

	sortByScore(out)
	return truncate(out, limit)
}

// colorOverlapScore is the mean preference over the artwork's colors,
// clamped to at most 1.
func colorOverlapScore(p *profile.UserProfile, colors []string) float64 {
	if len(colors) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range colors {
		sum += p.PreferredColors[c]
	}
	overlap := sum / float64(len(colors))
	if overlap > 1 {
		overlap = 1
	}
	return overlap
}

// colorPropScore is the mean closeness of the artwork's available scalar
// color properties to the user's preferences, each on a 0-100 scale.
func colorPropScore(p *profile.UserProfile, art *catalog.ArtworkFeatures) float64 {
	sum, n := 0.0, 0

	if art.Brightness != nil {
		sum += 1 - math.Abs(p.ColorPrefs.Brightness-*art.Brightness)/100
		n++
	}
	if art.Saturation != nil {
		sum += 1 - math.Abs(p.ColorPrefs.Saturation-*art.Saturation)/100
		n++
	}
	if art.Contrast != nil {
		sum += 1 - math.Abs(p.ColorPrefs.Contrast-*art.Contrast)/100
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// embeddingScore is the cosine similarity, floored at 0 so an opposed
// embedding cannot drag the total below its other terms.
func embeddingScore(user, artwork []float64) float64 {
	sim := Cosine(user, artwork)
	if sim < 0 {
		return 0
	}
	return sim
}

// syntheticEmbedding projects the profile's preference maps into a fixed
// size vector with an additive hash, so profiles and artwork embeddings
// of the same dimensionality can be compared even though the profile was
// never embedded by a model.
func syntheticEmbedding(p *profile.UserProfile) []float64 {
	emb := make([]float64, userEmbeddingDims)
	project := func(m map[string]float64) {
		for term, v := range m {
			emb[termIndex(term)] += v
		}
	}
	project(p.PreferredStyles)
	project(p.PreferredMoods)
	project(p.PreferredColors)
	return emb
}

// termIndex maps a term onto a synthetic embedding dimension.
func termIndex(term string) int {
	sum := 0
	for _, r := range term {
		sum += int(r)
	}
	return sum % userEmbeddingDims
}

// contentReason assembles a clause per informative sub-term.
func contentReason(art *catalog.ArtworkFeatures, style, mood, colors, props, emb float64) string {
	var clauses []string
	if style > reasonStyleMood && art.Style != "" {
		clauses = append(clauses, "matches your preferred "+art.Style+" style")
	}
	if mood > reasonStyleMood && art.Mood != "" {
		clauses = append(clauses, "has the "+art.Mood+" mood you enjoy")
	}
	if colors > reasonColors {
		clauses = append(clauses, "features colors you like")
	}
	if props > reasonColorProp {
		clauses = append(clauses, "matches your color tone preferences")
	}
	if emb > reasonEmbedding {
		clauses = append(clauses, "is visually similar to art you engage with")
	}
	if len(clauses) == 0 {
		return "similar to your taste"
	}
	return strings.Join(clauses, ", ")
}

// sortByScore sorts descending with artwork ID as a deterministic
// tie-breaker.
func sortByScore(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Artwork.ID < recs[j].Artwork.ID
	})
}

func truncate(recs []Recommendation, limit int) []Recommendation {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
