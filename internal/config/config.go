// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package config

import "time"

// Config holds all pipeline configuration loaded from defaults, an
// optional YAML config file, and environment variables (highest
// priority). See LoadWithKoanf for the layering rules.
type Config struct {
	Sources SourcesConfig `koanf:"sources"`
	Places  PlacesConfig  `koanf:"places"`
	Cache   CacheConfig   `koanf:"cache"`
	Output  OutputConfig  `koanf:"output"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// SourcesConfig enables and tunes the registered source adapters.
// Adapters are always invoked in a fixed order regardless of which are
// enabled; the order determines dedup priority.
type SourcesConfig struct {
	TPL      TPLConfig      `koanf:"tpl"`
	OpenData OpenDataConfig `koanf:"opendata"`
	Museums  MuseumsConfig  `koanf:"museums"`
}

// TPLConfig configures the Toronto Public Library adapter.
type TPLConfig struct {
	Enabled   bool          `koanf:"enabled"`
	URL       string        `koanf:"url"`
	DaysAhead int           `koanf:"days_ahead" validate:"min=1,max=365"`
	Timeout   time.Duration `koanf:"timeout"`
}

// OpenDataConfig configures the City of Toronto Festivals & Events adapter.
type OpenDataConfig struct {
	Enabled   bool          `koanf:"enabled"`
	URL       string        `koanf:"url"`
	DaysAhead int           `koanf:"days_ahead" validate:"min=1,max=365"`
	Timeout   time.Duration `koanf:"timeout"`
}

// MuseumsConfig configures the museum free-days adapter. It performs no
// network calls; the horizon bounds how many recurring free days are
// generated.
type MuseumsConfig struct {
	Enabled   bool `koanf:"enabled"`
	DaysAhead int  `koanf:"days_ahead" validate:"min=1,max=365"`
}

// PlacesConfig configures the external place lookup used for venue
// enrichment. An empty APIKey disables external calls entirely; cached
// entries are still served.
type PlacesConfig struct {
	APIKey        string        `koanf:"api_key"`
	BaseURL       string        `koanf:"base_url"`
	RatePerSecond float64       `koanf:"rate_per_second" validate:"gt=0"`
	Timeout       time.Duration `koanf:"timeout"`
	BiasRadius    float64       `koanf:"bias_radius" validate:"gte=0"`
}

// CacheConfig configures the persistent venue cache store.
type CacheConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// OutputConfig configures output artifact generation.
type OutputConfig struct {
	// Dir receives events.json, events_full.json and the derived
	// metadata/weekly artifacts.
	Dir string `koanf:"dir" validate:"required"`

	// Metadata toggles the lightweight metadata.json artifact.
	Metadata bool `koanf:"metadata"`

	// WeeklySplit toggles the events_week1..4.json artifacts.
	WeeklySplit bool `koanf:"weekly_split"`
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig configures end-of-run metrics output. When TextfilePath
// is set, the prometheus registry is dumped in text exposition format
// after the run (node-exporter textfile collector convention).
type MetricsConfig struct {
	TextfilePath string `koanf:"textfile_path"`
}

// Load returns the fully layered and validated configuration.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			TPL: TPLConfig{
				Enabled:   true,
				URL:       "https://ckan0.cf.opendata.inter.prod-toronto.ca/datastore/dump/c73bbe54-3a48-4ada-8eef-a1a2864021e4",
				DaysAhead: 60,
				Timeout:   60 * time.Second,
			},
			OpenData: OpenDataConfig{
				Enabled:   true,
				URL:       "https://ckan0.cf.opendata.inter.prod-toronto.ca/dataset/9201059e-43ed-4369-885e-0b867652feac/resource/8900fdb2-7f6c-4f50-8581-b463311ff05d/download/file.json",
				DaysAhead: 60,
				Timeout:   30 * time.Second,
			},
			Museums: MuseumsConfig{
				Enabled:   true,
				DaysAhead: 90,
			},
		},
		Places: PlacesConfig{
			APIKey:        "",
			BaseURL:       "https://places.googleapis.com/v1/places:searchText",
			RatePerSecond: 10, // 100ms minimum gap between external calls
			Timeout:       5 * time.Second,
			BiasRadius:    500,
		},
		Cache: CacheConfig{
			Path: "data/place_cache",
		},
		Output: OutputConfig{
			Dir:         ".",
			Metadata:    true,
			WeeklySplit: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			TextfilePath: "",
		},
	}
}
