// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ensemble

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// maxProviderBody caps a provider response at 8 MiB.
const maxProviderBody = 8 << 20

// rawResultWire is the JSON shape analysis services respond with. Kept
// separate from RawResult so the internal type stays wire-agnostic.
type rawResultWire struct {
	Labels []struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	} `json:"labels,omitempty"`
	Swatches []struct {
		R int `json:"r"`
		G int `json:"g"`
		B int `json:"b"`
	} `json:"swatches,omitempty"`
	Concepts []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	} `json:"concepts,omitempty"`
	Caption string `json:"caption,omitempty"`
	Classes []struct {
		Name        string  `json:"name"`
		Probability float64 `json:"probability"`
	} `json:"classes,omitempty"`
	Styles     []string  `json:"styles,omitempty"`
	Embedding  []float64 `json:"embedding,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
}

// HTTPProvider calls one external analysis service over HTTP. The image
// is POSTed as an octet-stream body; the response is the JSON raw result
// shape above.
type HTTPProvider struct {
	source Source
	url    string
	client *http.Client
}

// NewHTTPProvider creates a provider client for one source. A nil client
// falls back to http.DefaultClient; call timeouts come from the
// collector, not the client.
func NewHTTPProvider(source Source, url string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{source: source, url: url, client: client}
}

// Source implements Provider.
func (p *HTTPProvider) Source() Source { return p.source }

// AnalyzeImage implements Provider.
func (p *HTTPProvider) AnalyzeImage(ctx context.Context, image []byte) (RawResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(image))
	if err != nil {
		return RawResult{}, fmt.Errorf("build %s request: %w", p.source, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return RawResult{}, fmt.Errorf("call %s: %w", p.source, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return RawResult{}, fmt.Errorf("%s returned status %d", p.source, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return RawResult{}, fmt.Errorf("read %s response: %w", p.source, err)
	}

	var wire rawResultWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return RawResult{}, fmt.Errorf("decode %s response: %w", p.source, err)
	}

	return wire.toRawResult(), nil
}

func (w *rawResultWire) toRawResult() RawResult {
	raw := RawResult{
		Caption:    w.Caption,
		Styles:     w.Styles,
		Embedding:  w.Embedding,
		Confidence: w.Confidence,
	}
	for _, l := range w.Labels {
		raw.Labels = append(raw.Labels, Label{Name: l.Name, Score: l.Score})
	}
	for _, s := range w.Swatches {
		raw.Swatches = append(raw.Swatches, Swatch{R: s.R, G: s.G, B: s.B})
	}
	for _, c := range w.Concepts {
		raw.Concepts = append(raw.Concepts, Concept{Name: c.Name, Value: c.Value})
	}
	for _, c := range w.Classes {
		raw.Classes = append(raw.Classes, Class{Name: c.Name, Probability: c.Probability})
	}
	return raw
}
