// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ensemble

import (
	"sort"
	"strings"

	"github.com/artfolio/artfolio/internal/color"
)

// Per-source score thresholds applied before a term enters the keyword set.
const (
	conceptThreshold = 0.3
	labelThreshold   = 0.5
	classThreshold   = 0.3
)

// A swatch set spanning more hue families than this collapses to
// "multicolor".
const multicolorHueLimit = 4

// Extract converts a provider's raw payload into a normalized Signal.
// It is a pure function: the same payload always yields the same signal.
func Extract(src Source, raw RawResult) Signal {
	switch src {
	case SourceVision:
		return extractVision(raw)
	case SourceConcepts:
		return extractConcepts(raw)
	case SourceInterrogation:
		return extractInterrogation(raw)
	case SourceLocalModel:
		return extractLocalModel(raw)
	case SourceStyleTransfer:
		return extractStyleTransfer(raw)
	default:
		return Signal{Source: src}
	}
}

// extractVision maps label detections and color swatches to a signal.
// Labels below the detection threshold are discarded.
func extractVision(raw RawResult) Signal {
	kw := newKeywordSet()
	for _, label := range raw.Labels {
		if label.Score >= labelThreshold {
			kw.add(label.Name)
		}
	}

	return Signal{
		Source:     SourceVision,
		Keywords:   kw.sorted(),
		Colors:     bucketSwatches(raw.Swatches),
		Embedding:  raw.Embedding,
		Confidence: confidenceOr(raw.Confidence, SourceVision),
	}
}

// extractConcepts maps concept tags to a signal. Concepts below the tag
// threshold are discarded.
func extractConcepts(raw RawResult) Signal {
	kw := newKeywordSet()
	for _, c := range raw.Concepts {
		if c.Value >= conceptThreshold {
			kw.add(c.Name)
		}
	}

	return Signal{
		Source:     SourceConcepts,
		Keywords:   kw.sorted(),
		Confidence: confidenceOr(raw.Confidence, SourceConcepts),
	}
}

// extractInterrogation scans a caption for the fixed art vocabulary plus
// adjectives immediately preceding art nouns (capped, deduplicated).
func extractInterrogation(raw RawResult) Signal {
	caption := strings.ToLower(raw.Caption)
	kw := newKeywordSet()

	for _, term := range captionVocabulary {
		if strings.Contains(caption, term) {
			kw.add(term)
		}
	}

	added := 0
	for _, m := range captionAdjectivePattern.FindAllStringSubmatch(caption, -1) {
		if added >= maxCaptionAdjectives {
			break
		}
		adj := m[1]
		// Articles and similar noise words carry no signal.
		if isStopWord(adj) {
			continue
		}
		if kw.add(adj) {
			added++
		}
	}

	return Signal{
		Source:     SourceInterrogation,
		Keywords:   kw.sorted(),
		Confidence: confidenceOr(raw.Confidence, SourceInterrogation),
	}
}

// extractLocalModel maps classification outputs to a signal, carrying the
// model's embedding through when present.
func extractLocalModel(raw RawResult) Signal {
	kw := newKeywordSet()
	for _, c := range raw.Classes {
		if c.Probability >= classThreshold {
			kw.add(c.Name)
		}
	}

	return Signal{
		Source:     SourceLocalModel,
		Keywords:   kw.sorted(),
		Embedding:  raw.Embedding,
		Confidence: confidenceOr(raw.Confidence, SourceLocalModel),
	}
}

// extractStyleTransfer maps detected style labels to a signal.
func extractStyleTransfer(raw RawResult) Signal {
	kw := newKeywordSet()
	for _, s := range raw.Styles {
		kw.add(s)
	}

	return Signal{
		Source:     SourceStyleTransfer,
		Keywords:   kw.sorted(),
		Confidence: confidenceOr(raw.Confidence, SourceStyleTransfer),
	}
}

// bucketSwatches converts provider swatches to semantic palette names.
// A set spanning many hue families collapses to "multicolor".
func bucketSwatches(swatches []Swatch) []string {
	if len(swatches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(swatches))
	hues := 0
	for _, sw := range swatches {
		name := color.Bucket(sw.R, sw.G, sw.B)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		if isHueBucket(name) {
			hues++
		}
	}

	if hues > multicolorHueLimit {
		return []string{"multicolor"}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isHueBucket reports whether a palette name is chromatic.
func isHueBucket(name string) bool {
	switch name {
	case "red", "orange", "yellow", "green", "blue", "purple":
		return true
	default:
		return false
	}
}

// confidenceOr prefers a provider-reported confidence over the source's
// fixed default.
func confidenceOr(reported float64, src Source) float64 {
	if reported > 0 {
		return clamp01(reported)
	}
	return src.DefaultConfidence()
}

// stopWords are adjective-position words that carry no descriptive signal.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {},
	"of": {}, "with": {}, "and": {}, "some": {}, "its": {},
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// keywordSet is an insertion-tracking string set with lower-case
// normalization.
type keywordSet struct {
	members map[string]struct{}
}

func newKeywordSet() *keywordSet {
	return &keywordSet{members: make(map[string]struct{})}
}

// add normalizes and inserts a keyword, reporting whether it was new.
func (s *keywordSet) add(kw string) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" {
		return false
	}
	if _, ok := s.members[kw]; ok {
		return false
	}
	s.members[kw] = struct{}{}
	return true
}

func (s *keywordSet) has(kw string) bool {
	_, ok := s.members[strings.ToLower(kw)]
	return ok
}

func (s *keywordSet) len() int {
	return len(s.members)
}

// sorted returns the members in lexical order for deterministic output.
func (s *keywordSet) sorted() []string {
	out := make([]string, 0, len(s.members))
	for kw := range s.members {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
