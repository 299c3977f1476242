// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/candidates" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // test server write
		w.Write([]byte(`[
			{"id":"a1","title":"Dunes","style":"abstract","mood":"calm","colors":["orange","brown"]},
			{"id":"a2","keywords":["forest","mist"],"embedding":[0.1,0.2]}
		]`))
	}))
	defer srv.Close()

	provider := NewHTTPProvider(HTTPProviderConfig{
		URL:          srv.URL + "/candidates",
		FetchTimeout: 2 * time.Second,
	})

	candidates, err := provider.FetchCandidates(context.Background())
	if err != nil {
		t.Fatalf("FetchCandidates error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
	if candidates[0].ID != "a1" || candidates[0].Style != "abstract" {
		t.Errorf("candidates[0] = %+v, want a1 abstract", candidates[0])
	}
	if len(candidates[1].Embedding) != 2 {
		t.Errorf("candidates[1].Embedding len = %d, want 2", len(candidates[1].Embedding))
	}
}

func TestHTTPProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream 500",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				//nolint:errcheck // test server write
				w.Write([]byte(`{"not":"an array"`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			provider := NewHTTPProvider(HTTPProviderConfig{URL: srv.URL})
			if _, err := provider.FetchCandidates(context.Background()); err == nil {
				t.Error("FetchCandidates = nil error, want error")
			}
		})
	}
}
