// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/artfolio/artfolio/internal/catalog"
	"github.com/artfolio/artfolio/internal/ensemble"
	"github.com/artfolio/artfolio/internal/profile"
)

// Hybrid blend weights.
const (
	hybridContentWeight       = 0.7
	hybridCollaborativeWeight = 0.3
)

// defaultLimit bounds results when the request does not specify one.
const defaultLimit = 20

// Engine routes recommendation requests to the ranking strategies and
// enforces the fallback chain: a request never fails outright because one
// strategy has nothing to say; the worst case is a popularity-only list.
type Engine struct {
	profiles     *profile.Store
	catalog      catalog.Provider
	content      *ContentRanker
	collab       *CollaborativeRanker
	popularity   *PopularityRanker
	defaultLimit int
	logger       zerolog.Logger
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(
	profiles *profile.Store,
	cat catalog.Provider,
	content *ContentRanker,
	collab *CollaborativeRanker,
	popularity *PopularityRanker,
	logger zerolog.Logger,
) *Engine {
	return &Engine{
		profiles:     profiles,
		catalog:      cat,
		content:      content,
		collab:       collab,
		popularity:   popularity,
		defaultLimit: defaultLimit,
		logger:       logger.With().Str("component", "recommendation_engine").Logger(),
	}
}

// SetDefaultLimit overrides the limit applied when a request does not
// specify one. Non-positive values are ignored.
func (e *Engine) SetDefaultLimit(n int) {
	if n > 0 {
		e.defaultLimit = n
	}
}

// Recommend ranks the current candidate set for the request. Only a
// malformed request errors; upstream failures degrade to weaker methods.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]Recommendation, error) {
	if !req.Method.Valid() {
		return nil, fmt.Errorf("recommend: unknown method %q", req.Method)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = e.defaultLimit
	}

	candidates, err := e.catalog.FetchCandidates(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("candidate fetch failed")
	}
	if len(candidates) == 0 {
		return []Recommendation{}, nil
	}

	method := e.resolveMethod(&req)
	recs := e.rank(ctx, method, &req, candidates, limit)

	// Terminal fallback: an empty result from any personalized method
	// degrades to popularity rather than an empty page.
	if len(recs) == 0 && method != MethodPopularity {
		e.logger.Debug().
			Str("method", string(method)).
			Str("user_id", req.UserID).
			Msg("no personalized results, falling back to popularity")
		recs = e.popularity.Rank(ctx, candidates, limit)
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	return recs, nil
}

// resolveMethod picks the effective strategy for a request.
func (e *Engine) resolveMethod(req *Request) Method {
	if req.Method != MethodAuto {
		return req.Method
	}
	if req.UserID == "" {
		if req.Analysis != nil {
			return MethodContent
		}
		return MethodPopularity
	}
	return AssignBucket(req.UserID).Method()
}

// rank dispatches one strategy.
func (e *Engine) rank(ctx context.Context, method Method, req *Request, candidates []catalog.ArtworkFeatures, limit int) []Recommendation {
	switch method {
	case MethodContent:
		p, emb := e.contentInputs(ctx, req)
		return e.content.Rank(p, emb, candidates, limit)
	case MethodCollaborative:
		if req.UserID == "" {
			return nil
		}
		return e.collab.Rank(ctx, req.UserID, candidates, limit)
	case MethodHybrid:
		return e.hybrid(ctx, req, candidates, limit)
	default:
		return e.popularity.Rank(ctx, candidates, limit)
	}
}

// contentInputs resolves the profile and user embedding for content
// scoring. An anonymous request with an image analysis gets an ephemeral
// profile derived from that analysis.
func (e *Engine) contentInputs(ctx context.Context, req *Request) (*profile.UserProfile, []float64) {
	if req.UserID != "" {
		p := e.profiles.GetOrBuild(ctx, req.UserID)
		if p.TotalInteractions > 0 || req.Analysis == nil {
			return p, nil
		}
	}
	if req.Analysis != nil {
		return analysisProfile(req.Analysis), req.Analysis.Embedding
	}
	if req.UserID != "" {
		return e.profiles.GetOrBuild(ctx, req.UserID), nil
	}
	return nil, nil
}

// analysisProfile derives an ephemeral preference profile from one
// combined image analysis: the analyzed style, mood, and colors become
// maximal preferences.
func analysisProfile(a *ensemble.CombinedAnalysis) *profile.UserProfile {
	p := profile.NewProfile("")
	if a.Style != "" {
		p.PreferredStyles[a.Style] = 1
	}
	if a.Mood != "" {
		p.PreferredMoods[a.Mood] = 1
	}
	for _, c := range a.Colors {
		p.PreferredColors[c] = 1
	}
	return p
}

// hybrid blends content and collaborative scores per artwork:
// 0.7*content + 0.3*collaborative, each term 0 when that method did not
// score the artwork. Reasons concatenate when both methods contributed.
func (e *Engine) hybrid(ctx context.Context, req *Request, candidates []catalog.ArtworkFeatures, limit int) []Recommendation {
	p, emb := e.contentInputs(ctx, req)

	// Rank without limits so the blend sees every scored artwork.
	contentRecs := e.content.Rank(p, emb, candidates, 0)

	var collabRecs []Recommendation
	if req.UserID != "" {
		collabRecs = e.collab.Rank(ctx, req.UserID, candidates, 0)
	}

	type blended struct {
		rec        Recommendation
		hasContent bool
		hasCollab  bool
	}
	merged := make(map[string]*blended, len(contentRecs)+len(collabRecs))

	for i := range contentRecs {
		rec := contentRecs[i]
		merged[rec.Artwork.ID] = &blended{
			rec: Recommendation{
				Artwork: rec.Artwork,
				Score:   hybridContentWeight * rec.Score,
				Reason:  rec.Reason,
				Method:  MethodHybrid,
			},
			hasContent: true,
		}
	}

	for i := range collabRecs {
		rec := collabRecs[i]
		b, ok := merged[rec.Artwork.ID]
		if !ok {
			merged[rec.Artwork.ID] = &blended{
				rec: Recommendation{
					Artwork:    rec.Artwork,
					Score:      hybridCollaborativeWeight * rec.Score,
					Reason:     rec.Reason,
					Method:     MethodHybrid,
					Confidence: rec.Confidence,
				},
				hasCollab: true,
			}
			continue
		}
		b.rec.Score += hybridCollaborativeWeight * rec.Score
		b.rec.Confidence = rec.Confidence
		b.hasCollab = true
		if rec.Reason != "" {
			b.rec.Reason = b.rec.Reason + "; " + rec.Reason
		}
	}

	out := make([]Recommendation, 0, len(merged))
	for _, b := range merged {
		out = append(out, b.rec)
	}

	sortByScore(out)
	return truncate(out, limit)
}
