// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/artfolio/artfolio/internal/profile"
)

// InteractionRecorder applies one accepted interaction to the user's
// preference profile. Implemented by profile.Store.
type InteractionRecorder interface {
	RecordInteraction(ctx context.Context, in profile.Interaction) error
}

// RouterConfig holds consumer-side settings.
type RouterConfig struct {
	// CloseTimeout is how long to wait for in-flight handlers on close.
	CloseTimeout time.Duration

	// Retry configuration for transient recorder failures.
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         30 * time.Second,
		RetryMaxRetries:      5,
		RetryInitialInterval: time.Second,
		RetryMaxInterval:     time.Minute,
		RetryMultiplier:      2.0,
	}
}

// Router consumes interaction events and feeds them to the profile
// recorder. Handlers run with panic recovery and exponential backoff
// retry; a message that exhausts its retries is dropped with an error
// log rather than blocking the stream.
type Router struct {
	router *message.Router
}

// NewRouter wires the interaction consumer onto the bus.
func NewRouter(cfg RouterConfig, bus *Bus, recorder InteractionRecorder) (*Router, error) {
	if cfg.CloseTimeout == 0 {
		cfg = DefaultRouterConfig()
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, bus.logger)
	if err != nil {
		return nil, fmt.Errorf("create event router: %w", err)
	}

	wmRouter.AddMiddleware(middleware.Recoverer)

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          bus.logger,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	wmRouter.AddConsumerHandler(
		"profile-recorder",
		TopicInteractionRecorded,
		bus.Subscriber(),
		func(msg *message.Message) error {
			var in profile.Interaction
			if err := json.Unmarshal(msg.Payload, &in); err != nil {
				// Malformed payloads are not retryable. Ack and drop.
				bus.logger.Error("dropping malformed interaction event", err, nil)
				return nil
			}
			return recorder.RecordInteraction(msg.Context(), in)
		},
	)

	return &Router{router: wmRouter}, nil
}

// Run starts the router and blocks until context cancellation.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running returns a channel that closes once handlers are subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close gracefully stops the router.
func (r *Router) Close() error {
	return r.router.Close()
}
