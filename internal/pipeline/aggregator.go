// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jopolko/kidsevents/internal/logging"
	"github.com/jopolko/kidsevents/internal/metrics"
	"github.com/jopolko/kidsevents/internal/models"
	"github.com/jopolko/kidsevents/internal/places"
	"github.com/jopolko/kidsevents/internal/source"
)

// Config tunes artifact output for one Aggregator.
type Config struct {
	OutputDir   string
	Metadata    bool
	WeeklySplit bool
}

// Aggregator runs the full scrape-validate-dedup-enrich-publish
// pipeline. A single Aggregator is built per run; it owns the venue
// cache and closes it when Run finishes.
type Aggregator struct {
	cfg      Config
	registry *source.Registry
	cache    *places.Cache
	now      func() time.Time
	newRunID func() string
}

// New builds an Aggregator over the registered sources. cache may be
// nil, in which case venue enrichment is skipped entirely.
func New(cfg Config, registry *source.Registry, cache *places.Cache) *Aggregator {
	return &Aggregator{
		cfg:      cfg,
		registry: registry,
		cache:    cache,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// Run executes one pipeline pass. Source, validation and enrichment
// failures are absorbed and counted; only artifact-write and
// cache-persist failures return a non-nil error. The returned
// statistics are valid even on error.
func (a *Aggregator) Run(ctx context.Context) (*models.RunStatistics, error) {
	stats := models.NewRunStatistics(a.newRunID())
	today := dateOnly(a.now())
	log := logging.With().Str("run_id", stats.RunID).Logger()

	log.Info().Int("sources", a.registry.Len()).Msg("pipeline run starting")

	deduper := NewDeduper()
	var events []models.Event

	for _, adapter := range a.registry.Adapters() {
		name := adapter.Name()
		raws, err := adapter.Scrape(ctx)
		if err != nil {
			metrics.SourceFailures.WithLabelValues(name).Inc()
			stats.SourceFailures = append(stats.SourceFailures, name)
			log.Warn().Err(err).Str("source", name).Msg("source failed, continuing without it")
			continue
		}
		metrics.EventsScraped.WithLabelValues(name).Add(float64(len(raws)))
		log.Info().Str("source", name).Int("count", len(raws)).Msg("source scraped")

		for _, raw := range raws {
			raw.Source = name
			ev, reason, ok := Normalize(raw, today)
			if !ok {
				metrics.EventsDropped.WithLabelValues(string(reason)).Inc()
				stats.DropReasons[string(reason)]++
				if reason == DropPastEvent {
					stats.PastEvents++
				} else {
					stats.Invalid++
				}
				continue
			}
			if !deduper.Add(ev.ID) {
				metrics.DuplicateEvents.Inc()
				continue
			}
			events = append(events, ev)
		}
	}
	stats.Duplicates = deduper.Duplicates()

	a.enrich(ctx, log, events)
	if a.cache != nil {
		c := a.cache.Stats()
		stats.Enrichment = models.EnrichmentStats{
			Lookups:   c.Lookups,
			APICalls:  c.APICalls,
			CacheHits: c.CacheHits,
			HitRate:   c.HitRate(),
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].StartTime < events[j].StartTime
	})

	a.fillStatistics(stats, events)
	metrics.EventsPublished.Set(float64(len(events)))

	if err := a.publish(log, events, stats, today); err != nil {
		return stats, err
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			return stats, fmt.Errorf("close venue cache: %w", err)
		}
	}

	log.Info().
		Int("events", len(events)).
		Int("duplicates", stats.Duplicates).
		Int("invalid", stats.Invalid).
		Int("past", stats.PastEvents).
		Msg("pipeline run complete")
	return stats, nil
}

// enrich resolves venue place IDs through the cache. Events sharing a
// venue resolve once over the network; later lookups hit the store.
// Failures leave the venue unenriched.
func (a *Aggregator) enrich(ctx context.Context, log zerolog.Logger, events []models.Event) {
	if a.cache == nil {
		return
	}
	for i := range events {
		venue := &events[i].Venue
		entry, err := a.cache.Lookup(ctx, venue.Name, venue.Address, venue.Lat, venue.Lng)
		if err != nil {
			log.Warn().Err(err).Str("venue", venue.Name).Msg("venue enrichment failed")
			continue
		}
		if entry == nil {
			continue
		}
		venue.PlaceID = entry.PlaceID
		if !venue.HasCoords() && (entry.GoogleLat != 0 || entry.GoogleLng != 0) {
			venue.Lat = entry.GoogleLat
			venue.Lng = entry.GoogleLng
		}
	}
}

// fillStatistics computes the per-run aggregate counts.
func (a *Aggregator) fillStatistics(stats *models.RunStatistics, events []models.Event) {
	stats.TotalEvents = len(events)
	for _, ev := range events {
		stats.Sources[ev.Source]++
		stats.Categories[ev.Category]++
		for _, age := range ev.AgeGroups {
			stats.AgeGroups[age]++
		}
		if stats.DateRange.Earliest == "" || ev.Date < stats.DateRange.Earliest {
			stats.DateRange.Earliest = ev.Date
		}
		if ev.Date > stats.DateRange.Latest {
			stats.DateRange.Latest = ev.Date
		}
	}
}

// publish writes the artifacts. The canonical and full files are
// required; metadata and weekly splits are derived conveniences whose
// failures are logged only.
func (a *Aggregator) publish(log zerolog.Logger, events []models.Event, stats *models.RunStatistics, today time.Time) error {
	writer, err := NewWriter(a.cfg.OutputDir)
	if err != nil {
		return err
	}
	if err := writer.WriteCanonical(events); err != nil {
		return err
	}
	if err := writer.WriteFull(events, stats); err != nil {
		return err
	}
	if a.cfg.Metadata {
		if err := writer.WriteMetadata(events, today); err != nil {
			log.Warn().Err(err).Msg("metadata artifact failed")
		}
	}
	if a.cfg.WeeklySplit {
		if err := writer.WriteWeekly(events, today); err != nil {
			log.Warn().Err(err).Msg("weekly split artifacts failed")
		}
	}
	return nil
}
