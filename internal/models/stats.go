// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package models

// DateRange records the earliest and latest event date in a run's output.
type DateRange struct {
	Earliest string `json:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty"`
}

// EnrichmentStats summarizes venue enrichment cache behavior for one run.
// HitRate is CacheHits / Lookups, 0 when no lookups were attempted.
type EnrichmentStats struct {
	Lookups   int     `json:"lookups"`
	APICalls  int     `json:"api_calls"`
	CacheHits int     `json:"cache_hits"`
	HitRate   float64 `json:"hit_rate"`
}

// RunStatistics is built fresh on every pipeline run and written into the
// full output artifact. It is never persisted beyond that artifact.
type RunStatistics struct {
	RunID          string          `json:"run_id"`
	TotalEvents    int             `json:"total_events"`
	Sources        map[string]int  `json:"sources"`
	SourceFailures []string        `json:"source_failures,omitempty"`
	Categories     map[string]int  `json:"categories"`
	AgeGroups      map[string]int  `json:"age_groups"`
	Duplicates     int             `json:"duplicates"`
	Invalid        int             `json:"invalid"`
	PastEvents     int             `json:"past_events"`
	DropReasons    map[string]int  `json:"drop_reasons"`
	DateRange      DateRange       `json:"date_range"`
	Enrichment     EnrichmentStats `json:"enrichment"`
}

// NewRunStatistics returns a RunStatistics with all maps initialized so
// callers can increment counters without nil checks.
func NewRunStatistics(runID string) *RunStatistics {
	return &RunStatistics{
		RunID:       runID,
		Sources:     make(map[string]int),
		Categories:  make(map[string]int),
		AgeGroups:   make(map[string]int),
		DropReasons: make(map[string]int),
	}
}
