// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/profile"
)

// TopicInteractionRecorded carries accepted interaction events from the
// API layer to the profile recorder.
const TopicInteractionRecorded = "interaction.recorded"

// BusConfig holds Pub/Sub transport settings.
type BusConfig struct {
	// BufferSize is the per-subscriber channel buffer. Publishing blocks
	// once a subscriber falls this far behind.
	BufferSize int64
}

// DefaultBusConfig returns production defaults.
func DefaultBusConfig() BusConfig {
	return BusConfig{BufferSize: 256}
}

// Bus is the in-process event transport. It wraps a gochannel Pub/Sub,
// so publishers and subscribers run inside one process with no broker.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter
}

// NewBus creates the event bus.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBus(cfg BusConfig, logger zerolog.Logger) *Bus {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBusConfig().BufferSize
	}

	adapter := NewLoggerAdapter(logger.With().Str("component", "events").Logger())

	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, adapter),
		logger: adapter,
	}
}

// PublishInteraction marshals and publishes one interaction event. The
// message UUID doubles as the event ID for tracing.
func (b *Bus) PublishInteraction(ctx context.Context, interaction *profile.Interaction) error {
	payload, err := json.Marshal(interaction)
	if err != nil {
		return fmt.Errorf("marshal interaction event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("user_id", interaction.UserID)
	msg.Metadata.Set("type", string(interaction.Type))

	if err := b.pubsub.Publish(TopicInteractionRecorded, msg); err != nil {
		return fmt.Errorf("publish interaction event: %w", err)
	}

	return nil
}

// Subscriber exposes the bus as a Watermill subscriber for the router.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close shuts the transport down. In-flight messages on subscriber
// buffers are dropped.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
