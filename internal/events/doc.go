// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package events provides the in-process event pipeline built on
// Watermill. Interaction events are published by the API layer and
// consumed asynchronously by the profile recorder, decoupling request
// latency from profile maintenance. The transport is a buffered
// gochannel Pub/Sub; the router adds panic recovery and exponential
// backoff retry around the consumer.
package events
