// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package config provides layered application configuration: hardcoded
// defaults, then an optional YAML file, then environment variables, each
// layer overriding the previous. Loading is implemented with koanf.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/artfolio/artfolio/internal/ensemble"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Storage  StorageConfig  `koanf:"storage"`
	Ensemble EnsembleConfig `koanf:"ensemble"`
	Profile  ProfileConfig  `koanf:"profile"`
	Ranker   RankerConfig   `koanf:"ranker"`
	Catalog  CatalogConfig  `koanf:"catalog"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"gt=0,lte=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// StorageConfig holds the badger database settings.
type StorageConfig struct {
	Dir        string        `koanf:"dir"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval" validate:"gt=0"`
}

// SourceConfig holds one analysis source's settings.
type SourceConfig struct {
	Enabled bool    `koanf:"enabled"`
	Weight  float64 `koanf:"weight" validate:"gte=0,lte=1"`
	URL     string  `koanf:"url" validate:"omitempty,url"`
}

// EnsembleConfig holds per-source settings and collection bounds.
type EnsembleConfig struct {
	Vision        SourceConfig `koanf:"vision"`
	Concepts      SourceConfig `koanf:"concepts"`
	Interrogation SourceConfig `koanf:"interrogation"`
	LocalModel    SourceConfig `koanf:"local_model"`
	StyleTransfer SourceConfig `koanf:"style_transfer"`

	CallTimeout             time.Duration `koanf:"call_timeout" validate:"gt=0"`
	RatePerSecond           float64       `koanf:"rate_per_second" validate:"gte=0"`
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold" validate:"gt=0"`
	BreakerCooldown         time.Duration `koanf:"breaker_cooldown" validate:"gt=0"`
}

// SourceConfigs converts to the ensemble package's per-source map.
func (c *EnsembleConfig) SourceConfigs() ensemble.Config {
	return ensemble.Config{
		ensemble.SourceVision:        {Enabled: c.Vision.Enabled, Weight: c.Vision.Weight},
		ensemble.SourceConcepts:      {Enabled: c.Concepts.Enabled, Weight: c.Concepts.Weight},
		ensemble.SourceInterrogation: {Enabled: c.Interrogation.Enabled, Weight: c.Interrogation.Weight},
		ensemble.SourceLocalModel:    {Enabled: c.LocalModel.Enabled, Weight: c.LocalModel.Weight},
		ensemble.SourceStyleTransfer: {Enabled: c.StyleTransfer.Enabled, Weight: c.StyleTransfer.Weight},
	}
}

// ProviderURLs returns the endpoint for every enabled source that has
// one configured. Enabled sources without a URL are collected from
// in-process providers, if any are registered.
func (c *EnsembleConfig) ProviderURLs() map[ensemble.Source]string {
	urls := make(map[ensemble.Source]string)
	for src, sc := range map[ensemble.Source]SourceConfig{
		ensemble.SourceVision:        c.Vision,
		ensemble.SourceConcepts:      c.Concepts,
		ensemble.SourceInterrogation: c.Interrogation,
		ensemble.SourceLocalModel:    c.LocalModel,
		ensemble.SourceStyleTransfer: c.StyleTransfer,
	} {
		if sc.Enabled && sc.URL != "" {
			urls[src] = sc.URL
		}
	}
	return urls
}

// CollectorOptions converts to the ensemble collector's bounds.
func (c *EnsembleConfig) CollectorOptions() ensemble.CollectorOptions {
	return ensemble.CollectorOptions{
		CallTimeout:             c.CallTimeout,
		RatePerSecond:           c.RatePerSecond,
		BreakerFailureThreshold: c.BreakerFailureThreshold,
		BreakerCooldown:         c.BreakerCooldown,
	}
}

// ProfileConfig holds the preference profile store settings.
type ProfileConfig struct {
	CacheSize int           `koanf:"cache_size" validate:"gt=0"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"gt=0"`
}

// RankerConfig holds recommendation engine settings.
type RankerConfig struct {
	// DefaultLimit caps results when a request does not specify one.
	DefaultLimit int `koanf:"default_limit" validate:"gt=0"`

	// PopularitySeed fixes the zero-interaction jitter sequence.
	PopularitySeed int64 `koanf:"popularity_seed"`
}

// CatalogConfig holds the external catalog collaborator settings.
type CatalogConfig struct {
	// URL is the candidate endpoint of the catalog service. Empty runs
	// with an empty catalog (tests, standalone analysis).
	URL string `koanf:"url" validate:"omitempty,url"`

	// SnapshotTTL is how long a fetched candidate set stays fresh.
	SnapshotTTL time.Duration `koanf:"snapshot_ttl" validate:"gt=0"`

	// FetchTimeout bounds one upstream fetch.
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"gt=0"`
}

// Default returns the configuration defaults. They are applied first,
// then overridden by the config file and environment variables.
func Default() *Config {
	source := SourceConfig{Enabled: true, Weight: 0.5}
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8480,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Dir:        "data/artfolio",
			GCInterval: 10 * time.Minute,
		},
		Ensemble: EnsembleConfig{
			Vision:                  source,
			Concepts:                source,
			Interrogation:           source,
			LocalModel:              source,
			StyleTransfer:           source,
			CallTimeout:             10 * time.Second,
			RatePerSecond:           5,
			BreakerFailureThreshold: 5,
			BreakerCooldown:         30 * time.Second,
		},
		Profile: ProfileConfig{
			CacheSize: 10000,
			CacheTTL:  30 * time.Minute,
		},
		Ranker: RankerConfig{
			DefaultLimit:   20,
			PopularitySeed: 1,
		},
		Catalog: CatalogConfig{
			SnapshotTTL:  5 * time.Minute,
			FetchTimeout: 10 * time.Second,
		},
	}
}

// Validate checks the configuration for consistency. Called after all
// layers are applied; a failure here is a fatal startup error.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	enabled := 0
	for _, s := range []SourceConfig{c.Ensemble.Vision, c.Ensemble.Concepts, c.Ensemble.Interrogation, c.Ensemble.LocalModel, c.Ensemble.StyleTransfer} {
		if s.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("config validation: all analysis sources disabled")
	}

	if !c.Storage.InMemory && c.Storage.Dir == "" {
		return fmt.Errorf("config validation: storage.dir required unless storage.in_memory is set")
	}

	return nil
}
