// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/artfolio/artfolio/internal/ensemble"
)

// maxRequestBody caps request bodies at 16 MiB, enough for an inline
// base64 image plus metadata.
const maxRequestBody = 16 << 20

var validate = validator.New()

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	// ArtworkID tags the analysis for logging. Optional.
	ArtworkID string `json:"artwork_id,omitempty"`

	// ImageBase64 is the image payload, standard base64.
	ImageBase64 string `json:"image_base64" validate:"required,base64"`
}

// RecommendationsRequest is the body of POST /api/v1/recommendations.
type RecommendationsRequest struct {
	// UserID selects the preference profile. Optional for pure
	// analysis-driven requests.
	UserID string `json:"user_id,omitempty"`

	// Analysis optionally ranks against an analyzed image instead of a
	// profile (cold-start path).
	Analysis *ensemble.CombinedAnalysis `json:"analysis,omitempty"`

	// Limit caps the result length. Zero means the engine default.
	Limit int `json:"limit,omitempty" validate:"gte=0,lte=100"`

	// Method forces a ranking strategy. Empty means auto.
	Method string `json:"method,omitempty" validate:"omitempty,oneof=content collaborative hybrid popularity"`
}

// InteractionRequest is the body of POST /api/v1/interactions.
type InteractionRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ArtworkID string `json:"artwork_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=view click favorite purchase_request"`

	// Artwork metadata captured at interaction time, so profile updates
	// do not depend on the catalog being reachable later.
	ArtworkStyle  string   `json:"artwork_style,omitempty"`
	ArtworkMood   string   `json:"artwork_mood,omitempty"`
	ArtworkColors []string `json:"artwork_colors,omitempty"`

	ArtworkBrightness *float64 `json:"artwork_brightness,omitempty" validate:"omitempty,gte=0,lte=100"`
	ArtworkSaturation *float64 `json:"artwork_saturation,omitempty" validate:"omitempty,gte=0,lte=100"`
	ArtworkContrast   *float64 `json:"artwork_contrast,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// fieldError is one validation failure in an error response.
type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// decodeAndValidate decodes a JSON body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)

	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			rw.BadRequest("request body is required")
			return false
		}
		rw.BadRequest(fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]fieldError, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, fieldError{Field: fe.Field(), Rule: fe.Tag()})
			}
			rw.ValidationError("request validation failed", details)
			return false
		}
		rw.BadRequest("request validation failed")
		return false
	}

	return true
}
