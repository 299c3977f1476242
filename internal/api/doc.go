// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package api provides the HTTP surface over the analysis and
// recommendation core: ensemble analysis, recommendation requests,
// interaction recording, and experiment bucket lookup, routed with chi.
package api
