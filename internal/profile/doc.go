// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package profile maintains user preference profiles learned from
// interaction history.
//
// # Model
//
// Each interaction carries a fixed weight (view=1, click=2, favorite=4,
// purchase_request=5) and the acted-on artwork's denormalized features.
// Folding an interaction adds weight-scaled increments to the style, mood,
// and color preference maps and moves each scalar color-property
// preference halfway toward the observed value. After folding, any map
// whose maximum exceeds 1 is rescaled so its maximum is exactly 1.
//
// # Lifecycle
//
// Profiles materialize lazily from the most recent persisted interactions
// on first touch, live in an in-memory LRU cache, and absorb new
// interactions incrementally. Persistence failures degrade to an empty or
// stale profile; they never surface as request errors.
package profile
