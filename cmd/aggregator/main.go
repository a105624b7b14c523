// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

// Package main is the entry point for the kidsevents aggregator.
//
// The aggregator is a batch job: it scrapes every enabled source,
// validates and deduplicates the results, enriches venues through the
// persistent place cache, and writes the JSON artifacts the site
// serves. One invocation is one run; schedule it externally (cron,
// systemd timer).
//
// The run order is:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Venue cache: BadgerDB at CACHE_PATH, created on first run
//  3. Sources: TPL, Toronto Open Data, museum free days (enable per config)
//  4. Pipeline: scrape -> validate -> dedup -> enrich -> sort -> publish
//  5. Metrics: optional text exposition dump for the node-exporter
//     textfile collector (METRICS_TEXTFILE_PATH)
//
// Place enrichment requires GOOGLE_MAPS_API_KEY (or GOOGLE_API_KEY);
// without it the run still completes and serves whatever the cache
// already holds. The exit code is non-zero only when artifacts or the
// cache could not be persisted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jopolko/kidsevents/internal/config"
	"github.com/jopolko/kidsevents/internal/logging"
	"github.com/jopolko/kidsevents/internal/metrics"
	"github.com/jopolko/kidsevents/internal/pipeline"
	"github.com/jopolko/kidsevents/internal/places"
	"github.com/jopolko/kidsevents/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("output_dir", cfg.Output.Dir).
		Str("cache_path", cfg.Cache.Path).
		Bool("places_enabled", cfg.Places.APIKey != "").
		Msg("Starting kidsevents aggregator")

	// Interrupts cancel in-flight scrapes and lookups; whatever the
	// cache already persisted survives for the next run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := buildRegistry(cfg)
	if registry.Len() == 0 {
		logging.Fatal().Msg("No sources enabled")
	}

	cache, err := buildCache(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open venue cache")
	}

	agg := pipeline.New(pipeline.Config{
		OutputDir:   cfg.Output.Dir,
		Metadata:    cfg.Output.Metadata,
		WeeklySplit: cfg.Output.WeeklySplit,
	}, registry, cache)

	stats, err := agg.Run(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Pipeline run failed")
		os.Exit(1)
	}

	if cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			logging.Warn().Err(err).Msg("Failed to write metrics textfile")
		}
	}

	logging.Info().
		Str("run_id", stats.RunID).
		Int("events", stats.TotalEvents).
		Int("duplicates", stats.Duplicates).
		Float64("cache_hit_rate", stats.Enrichment.HitRate).
		Msg("Aggregation complete")
}

// buildRegistry registers the enabled adapters in fixed priority order.
// Registration order decides which source wins a dedup collision.
func buildRegistry(cfg *config.Config) *source.Registry {
	registry := source.NewRegistry()
	if cfg.Sources.TPL.Enabled {
		registry.Register(source.NewTPL(cfg.Sources.TPL.URL, cfg.Sources.TPL.DaysAhead, cfg.Sources.TPL.Timeout))
	}
	if cfg.Sources.OpenData.Enabled {
		registry.Register(source.NewOpenData(cfg.Sources.OpenData.URL, cfg.Sources.OpenData.DaysAhead, cfg.Sources.OpenData.Timeout))
	}
	if cfg.Sources.Museums.Enabled {
		registry.Register(source.NewMuseums(cfg.Sources.Museums.DaysAhead))
	}
	return registry
}

// buildCache opens the persistent venue store and wires the place
// search client behind it. Without an API key the cache runs in
// read-only enrichment mode: hits are served, misses stay misses.
func buildCache(cfg *config.Config) (*places.Cache, error) {
	store, err := places.OpenBadgerStore(cfg.Cache.Path)
	if err != nil {
		return nil, err
	}

	var searcher places.Searcher
	if cfg.Places.APIKey != "" {
		searcher = places.NewClient(places.ClientConfig{
			APIKey:     cfg.Places.APIKey,
			BaseURL:    cfg.Places.BaseURL,
			Timeout:    cfg.Places.Timeout,
			BiasRadius: cfg.Places.BiasRadius,
		})
	} else {
		logging.Warn().Msg("No places API key configured; venue enrichment limited to cached entries")
	}

	limiter := places.NewRateLimiter(cfg.Places.RatePerSecond)
	return places.NewCache(store, searcher, limiter), nil
}
