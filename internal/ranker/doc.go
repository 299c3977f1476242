// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package ranker scores candidate artworks for a user or an analyzed
// image.
//
// # Strategies
//
//   - Content-based: weighted similarity between the user's preference
//     profile and each artwork's style, mood, colors, scalar color
//     properties, and embedding.
//   - Collaborative: ratings from users with similar interaction history,
//     cosine-compared over exactly the artworks both users rated.
//   - Hybrid: 0.7 content + 0.3 collaborative per artwork.
//   - Popularity: mean weighted rating over a trailing 30-day window; the
//     terminal fallback that always produces a ranking.
//
// # Fallback chain
//
// Cold-start conditions (no profile, too few interactions) surface as
// empty results from the personalized strategies, and the engine degrades
// to popularity. A recommendation request never fails because one
// strategy or upstream collaborator has nothing to offer.
//
// # Experiments
//
// Users are assigned to content_only, collaborative_only, or hybrid arms
// by a deterministic hash of the user ID; assignment needs no stored
// state and never changes for a given user.
package ranker
