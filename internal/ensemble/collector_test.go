// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ensemble

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// stubProvider returns a canned result or error after an optional delay.
type stubProvider struct {
	source Source
	result RawResult
	err    error
	delay  time.Duration
}

func (p *stubProvider) Source() Source { return p.source }

func (p *stubProvider) AnalyzeImage(ctx context.Context, _ []byte) (RawResult, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return RawResult{}, ctx.Err()
		}
	}
	if p.err != nil {
		return RawResult{}, p.err
	}
	return p.result, nil
}

func testCollector(providers []Provider, opts CollectorOptions) *Collector {
	return NewCollector(providers, opts, zerolog.Nop())
}

func TestCollectPartialFailure(t *testing.T) {
	providers := []Provider{
		&stubProvider{
			source: SourceVision,
			result: RawResult{Labels: []Label{{Name: "mountain", Score: 0.9}}},
		},
		&stubProvider{
			source: SourceConcepts,
			err:    errors.New("upstream unavailable"),
		},
	}

	c := testCollector(providers, DefaultCollectorOptions())
	signals, errs := c.Collect(context.Background(), []byte("img"), DefaultSourceConfig())

	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	if signals[0].Source != SourceVision {
		t.Errorf("surviving source = %q, want %q", signals[0].Source, SourceVision)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d source errors, want 1", len(errs))
	}
	if errs[0].Source != SourceConcepts {
		t.Errorf("failed source = %q, want %q", errs[0].Source, SourceConcepts)
	}
	if errs[0].Message == "" {
		t.Error("source error has empty message")
	}
	if errs[0].Timestamp.IsZero() {
		t.Error("source error has zero timestamp")
	}
}

// Signals come back in canonical source order even when a later source
// finishes first.
func TestCollectCanonicalOrder(t *testing.T) {
	providers := []Provider{
		&stubProvider{
			source: SourceVision,
			result: RawResult{Labels: []Label{{Name: "slow", Score: 0.9}}},
			delay:  50 * time.Millisecond,
		},
		&stubProvider{
			source: SourceStyleTransfer,
			result: RawResult{Styles: []string{"fast"}},
		},
	}

	c := testCollector(providers, DefaultCollectorOptions())
	signals, errs := c.Collect(context.Background(), []byte("img"), DefaultSourceConfig())

	if len(errs) != 0 {
		t.Fatalf("got %d source errors, want 0: %v", len(errs), errs)
	}
	if len(signals) != 2 {
		t.Fatalf("got %d signals, want 2", len(signals))
	}
	if signals[0].Source != SourceVision || signals[1].Source != SourceStyleTransfer {
		t.Errorf("order = [%q, %q], want [%q, %q]",
			signals[0].Source, signals[1].Source, SourceVision, SourceStyleTransfer)
	}
}

func TestCollectDisabledSourceSkipped(t *testing.T) {
	providers := []Provider{
		&stubProvider{source: SourceVision, result: RawResult{}},
		&stubProvider{source: SourceConcepts, result: RawResult{}},
	}

	cfg := DefaultSourceConfig()
	cfg[SourceConcepts] = SourceConfig{Enabled: false, Weight: 0.5}

	c := testCollector(providers, DefaultCollectorOptions())
	signals, errs := c.Collect(context.Background(), []byte("img"), cfg)

	if len(errs) != 0 {
		t.Fatalf("got %d source errors, want 0", len(errs))
	}
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	if signals[0].Source != SourceVision {
		t.Errorf("source = %q, want %q", signals[0].Source, SourceVision)
	}
}

func TestCollectCallTimeout(t *testing.T) {
	providers := []Provider{
		&stubProvider{
			source: SourceVision,
			result: RawResult{},
			delay:  time.Second,
		},
	}

	opts := DefaultCollectorOptions()
	opts.CallTimeout = 10 * time.Millisecond

	c := testCollector(providers, opts)
	signals, errs := c.Collect(context.Background(), []byte("img"), DefaultSourceConfig())

	if len(signals) != 0 {
		t.Fatalf("got %d signals, want 0", len(signals))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d source errors, want 1", len(errs))
	}
	if errs[0].Source != SourceVision {
		t.Errorf("failed source = %q, want %q", errs[0].Source, SourceVision)
	}
}

// After enough consecutive failures the breaker opens and rejects calls
// without dispatching them.
func TestCollectBreakerOpens(t *testing.T) {
	provider := &stubProvider{
		source: SourceVision,
		err:    errors.New("boom"),
	}

	opts := DefaultCollectorOptions()
	opts.BreakerFailureThreshold = 2
	opts.RatePerSecond = 0 // avoid limiter delays across repeated calls

	c := testCollector([]Provider{provider}, opts)
	ctx := context.Background()
	cfg := DefaultSourceConfig()

	for i := 0; i < 3; i++ {
		_, errs := c.Collect(ctx, []byte("img"), cfg)
		if len(errs) != 1 {
			t.Fatalf("call %d: got %d source errors, want 1", i, len(errs))
		}
	}

	// Third call should have been rejected by the open breaker.
	provider.err = nil
	_, errs := c.Collect(ctx, []byte("img"), cfg)
	if len(errs) != 1 {
		t.Fatalf("got %d source errors, want 1 (breaker open)", len(errs))
	}
}

func TestCollectNilConfigUsesDefaults(t *testing.T) {
	providers := []Provider{
		&stubProvider{source: SourceVision, result: RawResult{}},
	}

	c := testCollector(providers, DefaultCollectorOptions())
	signals, _ := c.Collect(context.Background(), []byte("img"), nil)

	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
}
