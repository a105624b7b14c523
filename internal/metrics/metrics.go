// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Prometheus instrumentation for the aggregation pipeline:
// - per-source scrape volume and failures
// - validation drops by reason
// - dedup collapses
// - venue enrichment cache efficiency and external API pressure

var (
	EventsScraped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kidsevents_events_scraped_total",
			Help: "Raw events returned by each source adapter",
		},
		[]string{"source"},
	)

	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kidsevents_source_failures_total",
			Help: "Adapter invocations that failed and contributed zero events",
		},
		[]string{"source"},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kidsevents_events_dropped_total",
			Help: "Events dropped during validation, by reason code",
		},
		[]string{"reason"},
	)

	DuplicateEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kidsevents_duplicate_events_total",
			Help: "Validated events collapsed by the dedup engine",
		},
	)

	EventsPublished = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kidsevents_events_published",
			Help: "Events in the canonical output of the most recent run",
		},
	)

	PlaceLookups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kidsevents_place_lookups_total",
			Help: "Venue enrichment lookup attempts (cache hits + misses)",
		},
	)

	PlaceCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kidsevents_place_cache_hits_total",
			Help: "Venue lookups served from the persistent cache",
		},
	)

	PlaceAPICalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kidsevents_place_api_calls_total",
			Help: "External place search requests issued",
		},
	)

	PlaceAPIErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kidsevents_place_api_errors_total",
			Help: "External place search requests that failed or returned no candidates",
		},
	)
)

// WriteTextfile dumps the default registry in text exposition format to
// path, for the node-exporter textfile collector. The write is atomic
// (tmp file + rename) so the collector never reads a partial dump.
func WriteTextfile(path string) error {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create metrics textfile: %w", err)
	}

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close metrics textfile: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename metrics textfile into %s: %w", filepath.Dir(path), err)
	}
	return nil
}
