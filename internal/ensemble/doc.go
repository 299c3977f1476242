// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package ensemble aggregates image-analysis signals from multiple
// independent providers into one combined artwork description.
//
// # Architecture
//
// Analysis flows through three stages:
//
//   - Collection: the Collector fans out to every enabled provider
//     concurrently, bounded by per-call timeouts, per-source rate limits,
//     and circuit breakers. Individual failures become SourceError records
//     and never abort sibling calls.
//   - Extraction: each raw provider payload is normalized into a Signal
//     (keywords, colors, optional embedding, confidence) by a pure
//     per-source extractor, so the combiner never inspects provider wire
//     shapes.
//   - Combination: the Combiner unions keywords and colors, fuses
//     embeddings by per-source weight, averages confidence, classifies
//     style and mood against fixed lexicons, and backfills or corrects
//     colors deterministically.
//
// # Determinism
//
// Collection results are keyed by canonical source order, not arrival
// order, and every lexicon is ordered static data with first-declared
// tie-breaking. The same signal set always combines to the same analysis.
//
// # Degradation
//
// The ensemble tolerates partial provider failure: a single surviving
// source still yields a usable CombinedAnalysis, with confidence
// reflecting only the sources that contributed.
package ensemble
