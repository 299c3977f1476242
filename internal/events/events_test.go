// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/profile"
)

func publishRaw(bus *Bus, payload []byte) error {
	return bus.pubsub.Publish(TopicInteractionRecorded, message.NewMessage(watermill.NewUUID(), payload))
}

type captureRecorder struct {
	mu       sync.Mutex
	recorded []profile.Interaction
	done     chan struct{}
	want     int
}

func newCaptureRecorder(want int) *captureRecorder {
	return &captureRecorder{done: make(chan struct{}), want: want}
}

func (r *captureRecorder) RecordInteraction(_ context.Context, in profile.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, in)
	if len(r.recorded) == r.want {
		close(r.done)
	}
	return nil
}

func (r *captureRecorder) interactions() []profile.Interaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]profile.Interaction, len(r.recorded))
	copy(out, r.recorded)
	return out
}

func TestPublishInteractionReachesRecorder(t *testing.T) {
	bus := NewBus(DefaultBusConfig(), zerolog.Nop())
	recorder := newCaptureRecorder(2)

	router, err := NewRouter(DefaultRouterConfig(), bus, recorder)
	if err != nil {
		t.Fatalf("NewRouter error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := router.Run(ctx); err != nil {
			t.Errorf("router.Run error: %v", err)
		}
	}()
	<-router.Running()

	interactions := []profile.Interaction{
		{UserID: "u1", ArtworkID: "a1", Type: profile.InteractionView, Weight: 1, Timestamp: time.Now()},
		{UserID: "u1", ArtworkID: "a2", Type: profile.InteractionFavorite, Weight: 4, Timestamp: time.Now()},
	}
	for i := range interactions {
		if err := bus.PublishInteraction(ctx, &interactions[i]); err != nil {
			t.Fatalf("PublishInteraction error: %v", err)
		}
	}

	select {
	case <-recorder.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for recorder")
	}

	got := recorder.interactions()
	if len(got) != 2 {
		t.Fatalf("recorded %d interactions, want 2", len(got))
	}
	if got[0].ArtworkID != "a1" || got[0].Type != profile.InteractionView {
		t.Errorf("first interaction = %+v, want artwork a1 view", got[0])
	}
	if got[1].ArtworkID != "a2" || got[1].Weight != 4 {
		t.Errorf("second interaction = %+v, want artwork a2 weight 4", got[1])
	}

	cancel()
	if err := router.Close(); err != nil {
		t.Errorf("router.Close error: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("bus.Close error: %v", err)
	}
}

func TestMalformedPayloadDropped(t *testing.T) {
	bus := NewBus(BusConfig{BufferSize: 8}, zerolog.Nop())
	recorder := newCaptureRecorder(1)

	router, err := NewRouter(DefaultRouterConfig(), bus, recorder)
	if err != nil {
		t.Fatalf("NewRouter error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		//nolint:errcheck // shutdown error is irrelevant here
		router.Run(ctx)
	}()
	<-router.Running()

	// Publish garbage directly, bypassing the typed helper.
	if err := publishRaw(bus, []byte("{not json")); err != nil {
		t.Fatalf("publish raw: %v", err)
	}

	// A valid event after the garbage proves the stream kept moving.
	in := profile.Interaction{UserID: "u2", ArtworkID: "a9", Type: profile.InteractionClick, Weight: 2, Timestamp: time.Now()}
	if err := bus.PublishInteraction(ctx, &in); err != nil {
		t.Fatalf("PublishInteraction error: %v", err)
	}

	select {
	case <-recorder.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for recorder")
	}

	got := recorder.interactions()
	if len(got) != 1 || got[0].ArtworkID != "a9" {
		t.Errorf("recorded = %+v, want single a9 interaction", got)
	}
}
