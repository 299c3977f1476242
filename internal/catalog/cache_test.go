// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

func inMemoryDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSnapshotCacheServesFresh(t *testing.T) {
	upstream := Static([]ArtworkFeatures{{ID: "a1"}, {ID: "a2"}})
	c := NewSnapshotCache(upstream, nil, time.Minute, zerolog.Nop())

	got, err := c.FetchCandidates(context.Background())
	if err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d candidates, want 2", len(got))
	}
}

func TestSnapshotCacheServesStaleOnFailure(t *testing.T) {
	calls := 0
	upstream := ProviderFunc(func(context.Context) ([]ArtworkFeatures, error) {
		calls++
		if calls == 1 {
			return []ArtworkFeatures{{ID: "a1"}}, nil
		}
		return nil, errors.New("catalog down")
	})

	// Zero-ish TTL forces a refresh attempt on every call.
	c := NewSnapshotCache(upstream, nil, time.Nanosecond, zerolog.Nop())
	ctx := context.Background()

	if _, err := c.FetchCandidates(ctx); err != nil {
		t.Fatalf("first FetchCandidates() error = %v", err)
	}

	time.Sleep(time.Millisecond)
	got, err := c.FetchCandidates(ctx)
	if err != nil {
		t.Fatalf("second FetchCandidates() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("got %v, want last good snapshot [a1]", got)
	}
}

func TestSnapshotCachePersistsAcrossRestart(t *testing.T) {
	db := inMemoryDB(t)
	ctx := context.Background()

	first := NewSnapshotCache(Static([]ArtworkFeatures{{ID: "a1", Style: "pop"}}), db, time.Minute, zerolog.Nop())
	if _, err := first.FetchCandidates(ctx); err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}

	// A new cache over a failing upstream should restore the persisted
	// snapshot.
	failing := ProviderFunc(func(context.Context) ([]ArtworkFeatures, error) {
		return nil, errors.New("catalog down")
	})
	second := NewSnapshotCache(failing, db, time.Minute, zerolog.Nop())

	got, err := second.FetchCandidates(ctx)
	if err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" || got[0].Style != "pop" {
		t.Errorf("got %v, want restored snapshot [a1]", got)
	}
}
