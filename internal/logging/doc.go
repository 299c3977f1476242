// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package logging provides centralized zerolog-based logging for Artfolio.
//
// # Usage
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Msg("server starting")
//
// Component loggers derive from the global logger with a fixed field:
//
//	logger := logging.With().Str("component", "ensemble").Logger()
//
// # Context propagation
//
// HTTP middleware stores a request-scoped logger (carrying the request
// ID) in the request context; handlers retrieve it with
// LoggerFromContext.
//
// # slog bridge
//
// NewSlogLogger returns an slog.Logger backed by zerolog for libraries
// that require slog, such as sutureslog.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// chain is silently dropped.
package logging
