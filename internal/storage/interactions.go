// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package storage

import (
	"context"
	"fmt"
	"math"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/artfolio/artfolio/internal/profile"
)

// interactionKeyPrefix namespaces interaction records.
const interactionKeyPrefix = "interaction:"

// InteractionStore is the append-only durable interaction log. It
// implements the profile store's HistoryReader/HistoryWriter and the
// ranker's InteractionSource.
type InteractionStore struct {
	db *badger.DB
}

// NewInteractionStore creates an interaction store over db.
func NewInteractionStore(db *badger.DB) *InteractionStore {
	return &InteractionStore{db: db}
}

// interactionKey builds "interaction:<user>:<reverse-ts>:<uuid>". The
// reverse timestamp makes ascending key order newest-first per user; the
// uuid disambiguates events in the same nanosecond.
func interactionKey(userID string, ts time.Time) []byte {
	reverse := uint64(math.MaxInt64) - uint64(ts.UnixNano()) //nolint:gosec // UnixNano is positive for all plausible timestamps
	return []byte(fmt.Sprintf("%s%s:%020d:%s", interactionKeyPrefix, userID, reverse, uuid.NewString()))
}

// Append persists one interaction.
func (s *InteractionStore) Append(_ context.Context, in profile.Interaction) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}

	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(interactionKey(in.UserID, in.Timestamp), data)
	})
}

// History returns up to limit of the user's most recent interactions,
// newest first.
func (s *InteractionStore) History(_ context.Context, userID string, limit int) ([]profile.Interaction, error) {
	if limit <= 0 {
		return nil, nil
	}

	prefix := []byte(interactionKeyPrefix + userID + ":")
	out := make([]profile.Interaction, 0, limit)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(out) < limit; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var in profile.Interaction
				if err := json.Unmarshal(val, &in); err != nil {
					return fmt.Errorf("unmarshal interaction: %w", err)
				}
				out = append(out, in)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AllSince returns every stored interaction with a timestamp after since,
// across all users. A zero since returns the full log.
func (s *InteractionStore) AllSince(_ context.Context, since time.Time) ([]profile.Interaction, error) {
	prefix := []byte(interactionKeyPrefix)
	var out []profile.Interaction

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var in profile.Interaction
				if err := json.Unmarshal(val, &in); err != nil {
					return fmt.Errorf("unmarshal interaction: %w", err)
				}
				if in.Timestamp.After(since) {
					out = append(out, in)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountForUser returns the number of stored interactions for a user.
func (s *InteractionStore) CountForUser(_ context.Context, userID string) (int, error) {
	prefix := []byte(interactionKeyPrefix + userID + ":")
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
