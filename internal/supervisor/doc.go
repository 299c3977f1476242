// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package supervisor provides suture-based process supervision.
//
// The tree is organized into three layers: data (badger GC), messaging
// (the interaction event router), and api (the HTTP server). A crash in
// one layer restarts only that layer's services; supervision events are
// logged through the application's slog bridge via sutureslog.
package supervisor
