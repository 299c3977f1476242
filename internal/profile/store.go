// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package profile

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/cache"
	"github.com/artfolio/artfolio/internal/color"
	"github.com/artfolio/artfolio/internal/metrics"
)

// Accumulation increments per unit of interaction weight.
const (
	styleMoodIncrement = 0.1
	colorIncrement     = 0.05
)

// maxHistory caps how many persisted interactions a cold build reads.
const maxHistory = 100

// HistoryReader loads a user's recent interactions, most recent first.
// An empty slice means no data; errors degrade to an empty profile.
type HistoryReader interface {
	History(ctx context.Context, userID string, limit int) ([]Interaction, error)
}

// HistoryWriter appends one interaction to durable storage.
type HistoryWriter interface {
	Append(ctx context.Context, in Interaction) error
}

// StoreConfig controls the profile store's cache.
type StoreConfig struct {
	// CacheSize is the maximum number of cached profiles.
	CacheSize int `json:"cache_size" koanf:"cache_size"`

	// CacheTTL bounds profile staleness across cache hits.
	CacheTTL time.Duration `json:"cache_ttl" koanf:"cache_ttl"`
}

// DefaultStoreConfig returns production defaults.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		CacheSize: 10000,
		CacheTTL:  30 * time.Minute,
	}
}

// Store materializes and maintains user preference profiles from
// interaction history. Profiles are built lazily on first touch, cached
// in-memory, and updated incrementally on each new interaction. It is
// safe for concurrent use; per-user updates are serialized, cross-user
// operations never contend.
type Store struct {
	reader HistoryReader
	writer HistoryWriter
	cache  *cache.LRUCache[*UserProfile]
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a profile store over the given history collaborators.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(reader HistoryReader, writer HistoryWriter, cfg StoreConfig, logger zerolog.Logger) *Store {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultStoreConfig().CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultStoreConfig().CacheTTL
	}

	return &Store{
		reader: reader,
		writer: writer,
		cache:  cache.NewLRUCache[*UserProfile](cfg.CacheSize, cfg.CacheTTL),
		logger: logger.With().Str("component", "profile_store").Logger(),
		locks:  make(map[string]*sync.Mutex),
	}
}

// GetOrBuild returns the user's profile, building it from persisted
// history on a cache miss. A history read failure degrades to an empty
// profile rather than an error.
func (s *Store) GetOrBuild(ctx context.Context, userID string) *UserProfile {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if p, ok := s.cache.Get(userID); ok {
		metrics.ProfileCacheHits.Inc()
		return p
	}

	metrics.ProfileCacheMisses.Inc()
	p := s.build(ctx, userID)
	s.cache.Add(userID, p)
	return p
}

// RecordInteraction persists one interaction and folds it into the user's
// cached profile. A persistence failure is logged and the in-memory
// profile still updates, so recommendations degrade gracefully rather
// than erroring.
func (s *Store) RecordInteraction(ctx context.Context, in Interaction) error {
	if err := in.Validate(); err != nil {
		return err
	}

	in.Weight = in.Type.Weight()
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}

	if err := s.writer.Append(ctx, in); err != nil {
		s.logger.Error().
			Str("user_id", in.UserID).
			Str("artwork_id", in.ArtworkID).
			Err(err).
			Msg("interaction persist failed")
	}

	lock := s.userLock(in.UserID)
	lock.Lock()
	defer lock.Unlock()

	base, ok := s.cache.Get(in.UserID)
	if !ok {
		base = s.build(ctx, in.UserID)
		// The freshly built profile already includes the interaction if
		// the append above succeeded; folding it in again would double
		// count, but history reads after a failed append would miss it.
		// Rebuilding from history is authoritative either way.
		s.cache.Add(in.UserID, base)
		return nil
	}

	// Clone-modify-replace keeps previously returned snapshots immutable.
	next := base.Clone()
	next.apply(&in)
	next.normalize()
	s.cache.Add(in.UserID, next)
	return nil
}

// Invalidate drops a user's cached profile so the next touch rebuilds it
// from persisted history.
func (s *Store) Invalidate(userID string) {
	s.cache.Remove(userID)
}

// build materializes a profile from up to maxHistory persisted
// interactions.
func (s *Store) build(ctx context.Context, userID string) *UserProfile {
	p := NewProfile(userID)

	history, err := s.reader.History(ctx, userID, maxHistory)
	if err != nil {
		s.logger.Warn().
			Str("user_id", userID).
			Err(err).
			Msg("history read failed, serving empty profile")
		return p
	}

	// History arrives most recent first; fold oldest first so the
	// running averages weight recent observations heavier.
	for i := len(history) - 1; i >= 0; i-- {
		p.apply(&history[i])
	}
	p.normalize()
	return p
}

// apply folds one interaction into the profile.
func (p *UserProfile) apply(in *Interaction) {
	w := float64(in.Weight)
	if w == 0 {
		w = float64(in.Type.Weight())
	}
	if w == 0 {
		return
	}

	if in.ArtworkStyle != "" {
		p.PreferredStyles[in.ArtworkStyle] += w * styleMoodIncrement
	}
	if in.ArtworkMood != "" {
		p.PreferredMoods[in.ArtworkMood] += w * styleMoodIncrement
	}
	for _, c := range in.ArtworkColors {
		p.PreferredColors[c] += w * colorIncrement
	}

	// Each scalar observation halves the distance to the observed value.
	if len(in.ArtworkColors) > 0 {
		p.ColorPrefs.Temperature = (p.ColorPrefs.Temperature + color.Temperature(in.ArtworkColors)) / 2
	}
	if in.ArtworkBrightness != nil {
		p.ColorPrefs.Brightness = (p.ColorPrefs.Brightness + *in.ArtworkBrightness) / 2
	}
	if in.ArtworkSaturation != nil {
		p.ColorPrefs.Saturation = (p.ColorPrefs.Saturation + *in.ArtworkSaturation) / 2
	}
	if in.ArtworkContrast != nil {
		p.ColorPrefs.Contrast = (p.ColorPrefs.Contrast + *in.ArtworkContrast) / 2
	}

	p.TotalInteractions++
	if in.Timestamp.After(p.LastUpdated) {
		p.LastUpdated = in.Timestamp
	}
}

// normalize rescales each preference map independently so its maximum is
// exactly 1 when any value exceeds 1. Maps already within range are left
// untouched.
func (p *UserProfile) normalize() {
	normalizeMap(p.PreferredStyles)
	normalizeMap(p.PreferredMoods)
	normalizeMap(p.PreferredColors)
}

func normalizeMap(m map[string]float64) {
	maxV := 0.0
	for _, v := range m {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 1 {
		return
	}
	for k, v := range m {
		m[k] = v / maxV
	}
}

// userLock returns the per-user mutex, creating it on first use.
func (s *Store) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}
