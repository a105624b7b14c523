// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/kidsevents/config.yaml",
	"/etc/kidsevents/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// secretsEnvFile is the production location for API credentials. A local
// .env is the development fallback.
const secretsEnvFile = "/var/secrets/kidsevents.env"

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
//
// Before the env layer is read, credentials are sourced from
// /var/secrets/kidsevents.env or a local .env via godotenv; variables
// already present in the environment are never overwritten.
func LoadWithKoanf() (*Config, error) {
	loadDotEnv()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads credential files without clobbering real env vars.
// Missing files are not an error; most settings have defaults.
func loadDotEnv() {
	for _, path := range []string{secretsEnvFile, ".env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// findConfigFile searches for a config file in the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names to koanf config paths.
// GOOGLE_MAPS_API_KEY is the documented variable; GOOGLE_API_KEY is the
// legacy alias the original deployment used.
var envMappings = map[string]string{
	"google_maps_api_key": "places.api_key",
	"google_api_key":      "places.api_key",
	"places_base_url":     "places.base_url",
	"places_rate_per_sec": "places.rate_per_second",
	"places_timeout":      "places.timeout",

	"cache_path": "cache.path",

	"output_dir":    "output.dir",
	"output_weekly": "output.weekly_split",

	"tpl_enabled":        "sources.tpl.enabled",
	"tpl_url":            "sources.tpl.url",
	"tpl_days_ahead":     "sources.tpl.days_ahead",
	"opendata_enabled":   "sources.opendata.enabled",
	"opendata_url":       "sources.opendata.url",
	"museums_enabled":    "sources.museums.enabled",
	"museums_days_ahead": "sources.museums.days_ahead",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"metrics_textfile_path": "metrics.textfile_path",
}

// envTransformFunc transforms environment variable names to koanf config
// paths. Unknown variables are dropped so unrelated environment noise
// never lands in the config tree.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
