// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package main is the entry point for the Artfolio server.
//
// Artfolio aggregates image-analysis signals from an ensemble of
// external sources into a unified artwork profile and serves
// personalized artwork recommendations on top of it.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Storage: Open BadgerDB for interaction history and catalog snapshots
//  3. Ensemble: Register HTTP providers for each configured analysis source
//  4. Ranking: Build the content, collaborative, and popularity rankers
//  5. Events: Start the in-process interaction bus and its consumer router
//  6. HTTP Server: REST API plus health and Prometheus metrics endpoints
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (ARTFOLIO_ prefix, e.g. ARTFOLIO_PORT)
//   - Config file (config.yaml, or ARTFOLIO_CONFIG)
//   - Built-in defaults
//
// Analysis sources are optional: the server runs with any subset of
// them configured, degrading ensemble coverage rather than failing.
//
//	export ARTFOLIO_ENSEMBLE_VISION_URL=http://vision:9001/analyze
//	export ARTFOLIO_ENSEMBLE_CONCEPTS_URL=http://concepts:9002/analyze
//	export ARTFOLIO_BADGER_DIR=/data/artfolio
//	./artfolio
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Drains the interaction event router
//   - Closes the badger database
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artfolio/artfolio/internal/api"
	"github.com/artfolio/artfolio/internal/catalog"
	"github.com/artfolio/artfolio/internal/config"
	"github.com/artfolio/artfolio/internal/ensemble"
	"github.com/artfolio/artfolio/internal/events"
	"github.com/artfolio/artfolio/internal/logging"
	"github.com/artfolio/artfolio/internal/profile"
	"github.com/artfolio/artfolio/internal/ranker"
	"github.com/artfolio/artfolio/internal/storage"
	"github.com/artfolio/artfolio/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().Msg("Starting Artfolio with supervisor tree")

	providerURLs := cfg.Ensemble.ProviderURLs()
	logging.Info().
		Int("sources", len(providerURLs)).
		Str("storage_dir", cfg.Storage.Dir).
		Bool("in_memory", cfg.Storage.InMemory).
		Msg("Configuration loaded")
	if len(providerURLs) == 0 {
		logging.Warn().Msg("No analysis sources configured - analyze requests will return empty ensembles")
	}

	// Open badger for interaction history and catalog snapshots
	db, err := storage.Open(storage.Config{
		Dir:        cfg.Storage.Dir,
		InMemory:   cfg.Storage.InMemory,
		GCInterval: cfg.Storage.GCInterval,
	}, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()
	logging.Info().Msg("Storage opened successfully")

	interactions := storage.NewInteractionStore(db)
	profiles := profile.NewStore(interactions, interactions, profile.StoreConfig{
		CacheSize: cfg.Profile.CacheSize,
		CacheTTL:  cfg.Profile.CacheTTL,
	}, logger)

	// Ensemble collection: one HTTP provider per configured source.
	// Enabled sources without a URL are skipped by the collector.
	providers := make([]ensemble.Provider, 0, len(providerURLs))
	for src, url := range providerURLs {
		providers = append(providers, ensemble.NewHTTPProvider(src, url, nil))
		logging.Info().Str("source", string(src)).Str("url", url).Msg("Analysis source registered")
	}
	collector := ensemble.NewCollector(providers, cfg.Ensemble.CollectorOptions(), logger)
	combiner := ensemble.NewCombiner(cfg.Ensemble.SourceConfigs(), logger)

	// Candidate catalog: remote endpoint behind a badger-backed snapshot
	// cache when configured, otherwise an empty static set.
	var candidates catalog.Provider
	if cfg.Catalog.URL != "" {
		upstream := catalog.NewHTTPProvider(catalog.HTTPProviderConfig{
			URL:          cfg.Catalog.URL,
			FetchTimeout: cfg.Catalog.FetchTimeout,
		})
		candidates = catalog.NewSnapshotCache(upstream, db, cfg.Catalog.SnapshotTTL, logger)
		logging.Info().Str("catalog_url", cfg.Catalog.URL).Msg("Catalog provider configured")
	} else {
		candidates = catalog.Static(nil)
		logging.Warn().Msg("No catalog URL configured - recommendations will be empty")
	}

	engine := ranker.NewEngine(
		profiles,
		candidates,
		ranker.NewContentRanker(),
		ranker.NewCollaborativeRanker(interactions, logger),
		ranker.NewPopularityRanker(interactions, cfg.Ranker.PopularitySeed, logger),
		logger,
	)
	engine.SetDefaultLimit(cfg.Ranker.DefaultLimit)

	// Interaction events: the API publishes, the router records.
	bus := events.NewBus(events.DefaultBusConfig(), logger)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()
	eventRouter, err := events.NewRouter(events.DefaultRouterConfig(), bus, profiles)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create event router")
	}

	handler := api.NewHandler(collector, combiner, cfg.Ensemble.SourceConfigs(), engine, bus, logger)
	router := api.NewRouter(handler, api.MiddlewareConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Supervision events flow through slog, bridged back to zerolog
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(supervisor.NewBadgerGCService(db, cfg.Storage.GCInterval, logger))
	tree.AddMessagingService(supervisor.NewEventRouterService(eventRouter))
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
