// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router assembles the HTTP surface.
type Router struct {
	handler *Handler
	config  MiddlewareConfig
}

// NewRouter creates the router over the endpoint handlers.
func NewRouter(handler *Handler, config MiddlewareConfig) *Router {
	if config.RateLimitWindow == 0 {
		config = DefaultMiddlewareConfig()
	}
	return &Router{handler: handler, config: config}
}

// Setup builds the chi route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(router.config.CORSOrigins))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(router.config.RateLimitReqs, router.config.RateLimitWindow))
		r.Use(RequestLogger)

		r.Post("/analyze", router.handler.Analyze)
		r.Post("/recommendations", router.handler.Recommendations)
		r.Post("/interactions", router.handler.Interactions)
		r.Get("/experiment/{userID}", router.handler.Experiment)
	})

	r.Get("/healthz", router.handler.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
