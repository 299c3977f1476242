// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package storage provides the BadgerDB-backed durable stores.
//
// The interaction log is append-only: each recorded interaction is one
// key-value pair under "interaction:<userID>:<reverse-ts>:<uuid>", where
// reverse-ts is MaxInt64 minus the event's UnixNano. Ascending key order
// therefore yields newest-first per user, so a bounded prefix scan reads
// exactly the most recent history without sorting.
package storage

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Config controls the badger store.
type Config struct {
	// Dir is the database directory. Empty with InMemory unset is invalid.
	Dir string `json:"dir" koanf:"dir"`

	// InMemory runs badger without touching disk (tests, ephemeral use).
	InMemory bool `json:"in_memory" koanf:"in_memory"`

	// GCInterval is how often value-log garbage collection runs.
	GCInterval time.Duration `json:"gc_interval" koanf:"gc_interval"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Dir:        "data/artfolio",
		GCInterval: 10 * time.Minute,
	}
}

// Open opens the badger database described by cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Dir).
		WithInMemory(cfg.InMemory).
		WithLogger(badgerLogger{logger.With().Str("component", "badger").Logger()})
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}
	return badger.Open(opts)
}

// RunGC runs value-log garbage collection until ctx is canceled. Badger
// requires periodic GC calls from the embedding application; one reclaim
// pass per tick is enough for this write volume.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func RunGC(ctx context.Context, db *badger.DB, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = DefaultConfig().GCInterval
	}
	log := logger.With().Str("component", "badger_gc").Logger()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				log.Warn().Err(err).Msg("value log gc failed")
			}
		}
	}
}

// badgerLogger adapts zerolog to badger's Logger interface.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}
