// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// maxCatalogBody caps the upstream response size at 32 MiB.
const maxCatalogBody = 32 << 20

// HTTPProviderConfig holds settings for the HTTP catalog client.
type HTTPProviderConfig struct {
	// URL is the candidate endpoint. The response body must be a JSON
	// array of artwork feature objects.
	URL string

	// FetchTimeout bounds one fetch end to end.
	FetchTimeout time.Duration

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// HTTPProvider fetches candidates from the external catalog service.
type HTTPProvider struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPProvider creates an HTTP catalog client.
func NewHTTPProvider(cfg HTTPProviderConfig) *HTTPProvider {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.FetchTimeout}
	}

	return &HTTPProvider{
		url:     cfg.URL,
		timeout: cfg.FetchTimeout,
		client:  cfg.Client,
	}
}

// FetchCandidates performs one GET against the catalog endpoint.
func (p *HTTPProvider) FetchCandidates(ctx context.Context) ([]ArtworkFeatures, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog candidates: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBody))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	var candidates []ArtworkFeatures
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	return candidates, nil
}
