// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// snapshotKey is the badger key holding the persisted candidate snapshot.
var snapshotKey = []byte("catalog:snapshot")

// SnapshotCache wraps an upstream catalog Provider with a refreshing
// snapshot. A fetch failure serves the last good candidate set instead of
// propagating the error, and the snapshot is persisted so a restart can
// serve candidates before the first successful upstream fetch.
type SnapshotCache struct {
	upstream Provider
	db       *badger.DB
	ttl      time.Duration
	logger   zerolog.Logger

	mu   sync.RWMutex
	snap snapshot
}

// NewSnapshotCache creates a snapshot cache over upstream. db may be nil,
// in which case snapshots live only in memory.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotCache(upstream Provider, db *badger.DB, ttl time.Duration, logger zerolog.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &SnapshotCache{
		upstream: upstream,
		db:       db,
		ttl:      ttl,
		logger:   logger.With().Str("component", "catalog_cache").Logger(),
	}
	c.restore()
	return c
}

// FetchCandidates returns the current candidate set, refreshing from
// upstream when the snapshot is stale. Upstream failures degrade to the
// last good snapshot; only a cold cache with no persisted snapshot yields
// an empty set.
func (c *SnapshotCache) FetchCandidates(ctx context.Context) ([]ArtworkFeatures, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()

	if time.Since(snap.fetchedAt) < c.ttl {
		return snap.candidates, nil
	}

	fresh, err := c.upstream.FetchCandidates(ctx)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Int("stale_candidates", len(snap.candidates)).
			Msg("catalog fetch failed, serving last snapshot")
		return snap.candidates, nil
	}

	c.mu.Lock()
	c.snap = snapshot{candidates: fresh, fetchedAt: time.Now()}
	c.mu.Unlock()

	c.persist(fresh)
	return fresh, nil
}

// restore loads the persisted snapshot, if any. The restored snapshot is
// immediately stale so the first request still attempts a refresh.
func (c *SnapshotCache) restore() {
	if c.db == nil {
		return
	}

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var candidates []ArtworkFeatures
			if err := json.Unmarshal(val, &candidates); err != nil {
				return err
			}
			c.snap = snapshot{candidates: candidates}
			return nil
		})
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		c.logger.Warn().Err(err).Msg("catalog snapshot restore failed")
	}
}

// persist writes the snapshot for restart recovery. Failures are logged
// and otherwise ignored.
func (c *SnapshotCache) persist(candidates []ArtworkFeatures) {
	if c.db == nil {
		return
	}

	data, err := json.Marshal(candidates)
	if err != nil {
		c.logger.Warn().Err(err).Msg("catalog snapshot encode failed")
		return
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("catalog snapshot persist failed")
	}
}
