// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ensemble

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/artfolio/artfolio/internal/metrics"
)

// CollectorOptions bound each provider call.
type CollectorOptions struct {
	// CallTimeout caps a single provider call. A slow or hanging upstream
	// source must not stall the whole ensemble.
	CallTimeout time.Duration

	// RatePerSecond limits calls per source. Zero disables limiting.
	RatePerSecond float64

	// BreakerFailureThreshold is the consecutive-failure count that opens
	// a source's circuit breaker.
	BreakerFailureThreshold uint32

	// BreakerCooldown is how long an open breaker waits before probing.
	BreakerCooldown time.Duration
}

// DefaultCollectorOptions returns production defaults.
func DefaultCollectorOptions() CollectorOptions {
	return CollectorOptions{
		CallTimeout:             10 * time.Second,
		RatePerSecond:           5,
		BreakerFailureThreshold: 5,
		BreakerCooldown:         30 * time.Second,
	}
}

// Collector fans out to every enabled provider concurrently and fans in
// once all calls have settled. Individual failures degrade coverage but
// never abort sibling calls or the overall request. It is safe for
// concurrent use.
type Collector struct {
	providers map[Source]Provider
	breakers  map[Source]*gobreaker.CircuitBreaker[RawResult]
	limiters  map[Source]*rate.Limiter
	opts      CollectorOptions
	logger    zerolog.Logger
}

// NewCollector creates a collector over the given providers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollector(providers []Provider, opts CollectorOptions, logger zerolog.Logger) *Collector {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCollectorOptions().CallTimeout
	}
	if opts.BreakerFailureThreshold == 0 {
		opts.BreakerFailureThreshold = DefaultCollectorOptions().BreakerFailureThreshold
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = DefaultCollectorOptions().BreakerCooldown
	}

	c := &Collector{
		providers: make(map[Source]Provider, len(providers)),
		breakers:  make(map[Source]*gobreaker.CircuitBreaker[RawResult], len(providers)),
		limiters:  make(map[Source]*rate.Limiter, len(providers)),
		opts:      opts,
		logger:    logger.With().Str("component", "collector").Logger(),
	}

	for _, p := range providers {
		src := p.Source()
		c.providers[src] = p

		threshold := opts.BreakerFailureThreshold
		c.breakers[src] = gobreaker.NewCircuitBreaker[RawResult](gobreaker.Settings{
			Name:    string(src),
			Timeout: opts.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
		})

		if opts.RatePerSecond > 0 {
			c.limiters[src] = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
		}
	}

	return c
}

// Collect invokes every enabled source concurrently and returns once all
// dispatched calls have settled. The returned signals are sparse and
// ordered by canonical source identity, never by arrival order, so
// downstream combination is deterministic regardless of network timing.
func (c *Collector) Collect(ctx context.Context, image []byte, cfg Config) ([]Signal, []SourceError) {
	if cfg == nil {
		cfg = DefaultSourceConfig()
	}

	type slot struct {
		signal *Signal
		err    *SourceError
	}
	slots := make(map[Source]*slot, len(AllSources))

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, src := range AllSources {
		sc, ok := cfg[src]
		if !ok || !sc.Enabled {
			continue
		}
		provider, ok := c.providers[src]
		if !ok {
			continue
		}

		wg.Add(1)
		go func(src Source, provider Provider) {
			defer wg.Done()

			signal, cerr := c.collectOne(ctx, src, provider, image)

			mu.Lock()
			slots[src] = &slot{signal: signal, err: cerr}
			mu.Unlock()
		}(src, provider)
	}

	wg.Wait()

	// Fan-in keyed by source identity.
	signals := make([]Signal, 0, len(slots))
	errs := make([]SourceError, 0)
	for _, src := range AllSources {
		s, ok := slots[src]
		if !ok {
			continue
		}
		if s.signal != nil {
			signals = append(signals, *s.signal)
		}
		if s.err != nil {
			errs = append(errs, *s.err)
		}
	}

	return signals, errs
}

// collectOne performs a single bounded provider call and converts any
// failure into a structured error record.
func (c *Collector) collectOne(ctx context.Context, src Source, provider Provider, image []byte) (*Signal, *SourceError) {
	if lim, ok := c.limiters[src]; ok {
		if err := lim.Wait(ctx); err != nil {
			return nil, c.sourceError(src, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.opts.CallTimeout)
	defer cancel()

	raw, err := c.breakers[src].Execute(func() (RawResult, error) {
		return provider.AnalyzeImage(callCtx, image)
	})
	if err != nil {
		return nil, c.sourceError(src, err)
	}

	signal := Extract(src, raw)
	return &signal, nil
}

// sourceError records and logs one failed provider call.
func (c *Collector) sourceError(src Source, err error) *SourceError {
	metrics.RecordSourceFailure(string(src))
	c.logger.Warn().
		Str("source", string(src)).
		Err(err).
		Msg("analysis source unavailable")

	return &SourceError{
		Source:    src,
		Message:   err.Error(),
		Timestamp: time.Now(),
	}
}
