// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package api

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/ensemble"
	"github.com/artfolio/artfolio/internal/metrics"
	"github.com/artfolio/artfolio/internal/profile"
	"github.com/artfolio/artfolio/internal/ranker"
)

// InteractionPublisher hands accepted interactions to the event bus.
// Implemented by events.Bus.
type InteractionPublisher interface {
	PublishInteraction(ctx context.Context, interaction *profile.Interaction) error
}

// Handler serves the Artfolio HTTP endpoints.
type Handler struct {
	collector *ensemble.Collector
	combiner  *ensemble.Combiner
	sources   ensemble.Config
	engine    *ranker.Engine
	publisher InteractionPublisher
	startTime time.Time
	logger    zerolog.Logger
}

// NewHandler wires the endpoint handlers.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(
	collector *ensemble.Collector,
	combiner *ensemble.Combiner,
	sources ensemble.Config,
	engine *ranker.Engine,
	publisher InteractionPublisher,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		collector: collector,
		combiner:  combiner,
		sources:   sources,
		engine:    engine,
		publisher: publisher,
		startTime: time.Now(),
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// AnalyzeResponse is the payload of POST /api/v1/analyze.
type AnalyzeResponse struct {
	ArtworkID    string                    `json:"artwork_id,omitempty"`
	Analysis     ensemble.CombinedAnalysis `json:"analysis"`
	SourceErrors []ensemble.SourceError    `json:"source_errors,omitempty"`
}

// Analyze runs the ensemble pipeline over an inline image.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req AnalyzeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		rw.BadRequest("image_base64 is not valid base64")
		return
	}

	start := time.Now()
	signals, sourceErrors := h.collector.Collect(r.Context(), image, h.sources)
	analysis := h.combiner.Combine(signals)
	metrics.RecordAnalysis(time.Since(start), len(signals))

	h.logger.Debug().
		Str("artwork_id", req.ArtworkID).
		Int("signals", len(signals)).
		Int("source_errors", len(sourceErrors)).
		Float64("confidence", analysis.Confidence).
		Msg("analysis complete")

	rw.Success(AnalyzeResponse{
		ArtworkID:    req.ArtworkID,
		Analysis:     analysis,
		SourceErrors: sourceErrors,
	})
}

// RecommendationsResponse is the payload of POST /api/v1/recommendations.
type RecommendationsResponse struct {
	UserID          string                  `json:"user_id,omitempty"`
	Recommendations []ranker.Recommendation `json:"recommendations"`
}

// Recommendations ranks catalog candidates for a user or an analysis.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendationsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.UserID == "" && req.Analysis == nil {
		rw.BadRequest("either user_id or analysis is required")
		return
	}

	start := time.Now()
	recs, err := h.engine.Recommend(r.Context(), ranker.Request{
		UserID:   req.UserID,
		Analysis: req.Analysis,
		Limit:    req.Limit,
		Method:   ranker.Method(req.Method),
	})
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("recommendation failed")
		rw.InternalError("recommendation failed")
		return
	}

	method := req.Method
	if len(recs) > 0 {
		method = string(recs[0].Method)
	}
	if method == "" {
		method = "auto"
	}
	metrics.RecordRecommendation(method, time.Since(start), len(recs))

	rw.Success(RecommendationsResponse{
		UserID:          req.UserID,
		Recommendations: recs,
	})
}

// Interactions accepts one interaction and hands it to the event bus.
// The profile update happens asynchronously, so the response is 202.
func (h *Handler) Interactions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req InteractionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	interactionType := profile.InteractionType(req.Type)
	interaction := profile.Interaction{
		UserID:            req.UserID,
		ArtworkID:         req.ArtworkID,
		Type:              interactionType,
		Weight:            interactionType.Weight(),
		Timestamp:         time.Now().UTC(),
		ArtworkStyle:      req.ArtworkStyle,
		ArtworkMood:       req.ArtworkMood,
		ArtworkColors:     req.ArtworkColors,
		ArtworkBrightness: req.ArtworkBrightness,
		ArtworkSaturation: req.ArtworkSaturation,
		ArtworkContrast:   req.ArtworkContrast,
	}

	if err := h.publisher.PublishInteraction(r.Context(), &interaction); err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to publish interaction")
		rw.ServiceUnavailable("interaction could not be accepted")
		return
	}
	metrics.RecordInteraction(req.Type)

	rw.Accepted(map[string]interface{}{
		"user_id":    interaction.UserID,
		"artwork_id": interaction.ArtworkID,
		"type":       interaction.Type,
		"weight":     interaction.Weight,
	})
}

// ExperimentResponse is the payload of GET /api/v1/experiment/{userID}.
type ExperimentResponse struct {
	UserID string `json:"user_id"`
	Bucket string `json:"bucket"`
	Method string `json:"method"`
}

// Experiment reports the user's deterministic experiment assignment.
func (h *Handler) Experiment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		rw.BadRequest("userID is required")
		return
	}

	bucket := ranker.AssignBucket(userID)
	rw.Success(ExperimentResponse{
		UserID: userID,
		Bucket: string(bucket),
		Method: string(bucket.Method()),
	})
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}
