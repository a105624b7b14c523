// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/jopolko/kidsevents/internal/models"
)

// Writer emits the run's JSON artifacts into a single output directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter returns a Writer targeting dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

// eventsDocument is the envelope shared by the canonical, full and
// weekly artifacts.
type eventsDocument struct {
	GeneratedAt time.Time             `json:"generated_at"`
	TotalEvents int                   `json:"total_events"`
	Week        string                `json:"week,omitempty"`
	Statistics  *models.RunStatistics `json:"statistics,omitempty"`
	Events      []models.Event        `json:"events"`
}

// metadataDocument is a lightweight summary of the next seven days,
// consumed by page meta tags without loading the full event list.
type metadataDocument struct {
	GeneratedAt time.Time        `json:"generated_at"`
	TotalEvents int              `json:"total_events"`
	TotalVenues int              `json:"total_venues"`
	DateRange   models.DateRange `json:"date_range"`
	Human       struct {
		Events        string `json:"events"`
		Venues        string `json:"venues"`
		DateGenerated string `json:"date_generated"`
	} `json:"human_readable"`
}

// WriteCanonical writes events.json, the primary consumer artifact.
func (w *Writer) WriteCanonical(events []models.Event) error {
	return w.writeJSON("events.json", eventsDocument{
		GeneratedAt: w.now().UTC(),
		TotalEvents: len(events),
		Events:      events,
	})
}

// WriteFull writes events_full.json, the canonical list plus run
// statistics for debugging.
func (w *Writer) WriteFull(events []models.Event, stats *models.RunStatistics) error {
	return w.writeJSON("events_full.json", eventsDocument{
		GeneratedAt: w.now().UTC(),
		TotalEvents: len(events),
		Statistics:  stats,
		Events:      events,
	})
}

// WriteMetadata writes metadata.json summarizing the events in
// [today, today+7d).
func (w *Writer) WriteMetadata(events []models.Event, today time.Time) error {
	start := utcMidnight(today)
	end := start.AddDate(0, 0, 7)

	venues := map[string]struct{}{}
	count := 0
	for _, ev := range events {
		d, err := time.Parse(models.DateFormat, ev.Date)
		if err != nil || d.Before(start) || !d.Before(end) {
			continue
		}
		count++
		if ev.Venue.Name != "" {
			venues[ev.Venue.Name] = struct{}{}
		}
	}

	doc := metadataDocument{
		GeneratedAt: w.now().UTC(),
		TotalEvents: count,
		TotalVenues: len(venues),
		DateRange: models.DateRange{
			Earliest: start.Format(models.DateFormat),
			Latest:   end.Format(models.DateFormat),
		},
	}
	doc.Human.Events = groupDigits(count)
	doc.Human.Venues = groupDigits(len(venues))
	doc.Human.DateGenerated = w.now().Format("January 02, 2006")

	return w.writeJSON("metadata.json", doc)
}

// WriteWeekly splits the canonical list into four 7-day buckets
// (events_week1..4.json) for incremental page loads. Events beyond 28
// days appear only in the canonical artifact.
func (w *Writer) WriteWeekly(events []models.Event, today time.Time) error {
	start := utcMidnight(today)
	buckets := make([][]models.Event, 4)

	for _, ev := range events {
		d, err := time.Parse(models.DateFormat, ev.Date)
		if err != nil || d.Before(start) {
			continue
		}
		week := int(d.Sub(start).Hours()) / (24 * 7)
		if week >= 0 && week < 4 {
			buckets[week] = append(buckets[week], ev)
		}
	}

	for i, bucket := range buckets {
		doc := eventsDocument{
			GeneratedAt: w.now().UTC(),
			TotalEvents: len(bucket),
			Week:        fmt.Sprintf("Week %d", i+1),
			Events:      bucket,
		}
		if err := w.writeJSON(fmt.Sprintf("events_week%d.json", i+1), doc); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON marshals v with two-space indentation and writes it
// atomically via a temp file and rename, so consumers never observe a
// partial artifact.
func (w *Writer) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(w.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// utcMidnight anchors t's calendar date at UTC midnight, matching the
// instants time.Parse produces for bare date strings. Comparing against
// local midnight instead would shift the window by the zone offset.
func utcMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// groupDigits formats n with thousands separators ("12,345").
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
