// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the environment variable that points at an
// explicit config file. When unset, DefaultConfigPaths are probed.
const ConfigPathEnvVar = "ARTFOLIO_CONFIG"

// EnvPrefix is stripped from environment variables before mapping them
// onto config keys.
const EnvPrefix = "ARTFOLIO_"

// DefaultConfigPaths are probed in order when no explicit path is set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/artfolio/config.yaml",
}

// envKeyMap maps flat environment variable names (prefix stripped,
// lowercased) onto nested config keys. Variables not listed here fall
// back to underscore-to-dot conversion.
var envKeyMap = map[string]string{
	"host":              "server.host",
	"port":              "server.port",
	"cors_origins":      "server.cors_origins",
	"rate_limit_reqs":   "server.rate_limit_reqs",
	"log_level":         "logging.level",
	"log_format":        "logging.format",
	"badger_dir":        "storage.dir",
	"badger_in_memory":  "storage.in_memory",
	"catalog_url":       "catalog.url",
	"popularity_seed":   "ranker.popularity_seed",
	"default_limit":     "ranker.default_limit",
	"profile_cache_ttl": "profile.cache_ttl",
}

// Load builds the configuration from defaults, an optional YAML file,
// and ARTFOLIO_* environment variables, in that order of precedence,
// and validates the result.
func Load() (*Config, error) {
	return load(resolveConfigPath())
}

// LoadFile is Load with an explicit config file path. An empty path
// skips the file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath returns the explicit config file path, the first
// default path that exists, or empty.
func resolveConfigPath() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransform maps ARTFOLIO_FOO_BAR onto a nested config key. Known
// shorthand names come from envKeyMap; everything else converts the
// first underscore to a section separator (ENSEMBLE_VISION_ENABLED ->
// ensemble.vision.enabled via the two-level fallback below).
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	if mapped, ok := envKeyMap[key]; ok {
		return mapped
	}

	// Per-source ensemble settings nest two levels deep; collector
	// bounds (call_timeout, breaker_*) stay one level.
	if rest, ok := strings.CutPrefix(key, "ensemble_"); ok {
		for _, src := range []string{"vision", "concepts", "interrogation", "local_model", "style_transfer"} {
			if field, ok := strings.CutPrefix(rest, src+"_"); ok {
				return "ensemble." + src + "." + field
			}
		}
		return "ensemble." + rest
	}

	// Generic fallback: first underscore separates section from key.
	if i := strings.Index(key, "_"); i > 0 {
		return key[:i] + "." + key[i+1:]
	}

	return key
}
