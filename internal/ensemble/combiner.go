// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ensemble

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Combiner fuses a sparse signal set into one CombinedAnalysis using fixed
// weights and the heuristic lexicons. It holds no per-request state and is
// safe for concurrent use.
type Combiner struct {
	cfg    Config
	logger zerolog.Logger
}

// NewCombiner creates a combiner with the given per-source weights.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCombiner(cfg Config, logger zerolog.Logger) *Combiner {
	if cfg == nil {
		cfg = DefaultSourceConfig()
	}
	return &Combiner{
		cfg:    cfg,
		logger: logger.With().Str("component", "combiner").Logger(),
	}
}

// Combine merges the contributing signals. Signals with an unknown source
// weight contribute keywords and confidence but not embeddings.
func (c *Combiner) Combine(signals []Signal) CombinedAnalysis {
	keywords := newKeywordSet()
	colors := newKeywordSet()

	contributors := 0
	confidenceSum := 0.0

	for i := range signals {
		sig := &signals[i]
		if !sig.Source.Valid() {
			continue
		}

		contributors++
		confidenceSum += sig.Confidence

		for _, kw := range sig.Keywords {
			keywords.add(kw)
		}
		for _, col := range sig.Colors {
			colors.add(col)
		}
	}

	confidence := 0.0
	if contributors > 0 {
		confidence = clamp01(confidenceSum / float64(contributors))
	}

	embedding := c.fuseEmbeddings(signals)

	style := classify(keywords, styleLexicon, "mixed")
	mood := classify(keywords, moodLexicon, "neutral")

	if colors.len() == 0 {
		backfillColors(keywords, colors)
	}
	if colors.len() == 0 {
		inferContextColors(keywords, colors)
	}
	correctColors(keywords, colors)

	return CombinedAnalysis{
		Keywords:   keywords.sorted(),
		Colors:     colors.sorted(),
		Style:      style,
		Mood:       mood,
		Confidence: confidence,
		Embedding:  embedding,
	}
}

// fuseEmbeddings accumulates weighted embeddings element-wise. The first
// contributing signal fixes the vector length; later contributions with a
// different length are skipped with a warning. The sum is deliberately not
// renormalized; any future correction belongs here and nowhere else.
func (c *Combiner) fuseEmbeddings(signals []Signal) []float64 {
	var acc []float64

	for i := range signals {
		sig := &signals[i]
		if len(sig.Embedding) == 0 {
			continue
		}

		weight := c.cfg[sig.Source].Weight

		if acc == nil {
			acc = make([]float64, len(sig.Embedding))
			for j, v := range sig.Embedding {
				acc[j] = v * weight
			}
			continue
		}

		if len(sig.Embedding) != len(acc) {
			c.logger.Warn().
				Str("source", string(sig.Source)).
				Int("got_dims", len(sig.Embedding)).
				Int("want_dims", len(acc)).
				Msg("embedding dimension mismatch, contribution skipped")
			continue
		}

		for j, v := range sig.Embedding {
			acc[j] += v * weight
		}
	}

	return acc
}

// classify scores every lexicon entry by counting its terms that appear as
// a substring of any keyword, returning the argmax label. Ties resolve to
// the first-declared entry; a zero top score yields the fallback.
func classify(keywords *keywordSet, lexicon []lexiconEntry, fallback string) string {
	best := fallback
	bestScore := 0

	for _, entry := range lexicon {
		score := 0
		for _, term := range entry.Terms {
			if keywords.containsSubstring(term) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.Label
		}
	}

	return best
}

// backfillColors derives colors from keyword text: base color synonyms,
// shade-prefixed color names, and artistic vocabulary.
func backfillColors(keywords *keywordSet, colors *keywordSet) {
	for _, entry := range colorSynonyms {
		for _, term := range entry.Terms {
			if keywords.containsSubstring(term) {
				colors.add(entry.Label)
				break
			}
		}
	}

	for kw := range keywords.members {
		for _, m := range shadeColorPattern.FindAllStringSubmatch(kw, -1) {
			base := m[1]
			if base == "grey" {
				base = "gray"
			}
			colors.add(base)
		}
	}

	for _, art := range artisticColorTerms {
		if keywords.containsSubstring(art.Term) {
			for _, col := range art.Colors {
				colors.add(col)
			}
		}
	}
}

// inferContextColors maps scene/subject keywords to plausible colors.
// Runs only when backfill produced nothing.
func inferContextColors(keywords *keywordSet, colors *keywordSet) {
	for _, ctx := range contextColors {
		if keywords.containsSubstring(ctx.Context) {
			for _, col := range ctx.Colors {
				colors.add(col)
			}
		}
	}
}

// correctColors applies the deterministic correction rules in fixed order.
// The pass is idempotent: re-running it on its own output is a no-op.
func correctColors(keywords *keywordSet, colors *keywordSet) {
	hasLandscape := keywords.containsAny(landscapeTerms)
	hasSky := keywords.containsAny(skyTerms)

	// Natural landscapes are green; with sky or cloud present, also blue.
	if hasLandscape {
		colors.add("green")
		if hasSky {
			colors.add("blue")
		}
	}

	// A bare {white, yellow} reading is almost always washed-out sky over
	// vegetation; keep white for the clouds, swap yellow for green/blue.
	if colors.len() == 2 && colors.has("white") && colors.has("yellow") {
		colors.remove("yellow")
		colors.add("green")
		colors.add("blue")
	}

	// Summer landscapes reinforce green and blue.
	if hasLandscape && keywords.containsSubstring("summer") {
		colors.add("green")
		colors.add("blue")
	}
}

// containsSubstring reports whether any member contains term as a
// substring.
func (s *keywordSet) containsSubstring(term string) bool {
	for kw := range s.members {
		if strings.Contains(kw, term) {
			return true
		}
	}
	return false
}

// containsAny reports whether any member contains any of the terms.
func (s *keywordSet) containsAny(terms []string) bool {
	for _, term := range terms {
		if s.containsSubstring(term) {
			return true
		}
	}
	return false
}

func (s *keywordSet) remove(kw string) {
	delete(s.members, strings.ToLower(kw))
}

// sortedCopy returns a sorted copy of a string slice without mutating the
// input.
//
//nolint:unused // utility kept for symmetry with keywordSet.sorted
func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
