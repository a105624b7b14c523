// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package models

import "time"

// DateFormat is the wire format for event dates throughout the pipeline.
const DateFormat = "2006-01-02"

// Supported age group labels. An event must intersect this set to survive
// validation; adapters emitting finer-grained labels map them onto these.
const (
	AgeBabies   = "Babies (0-2)"
	AgeToddlers = "Toddlers (3-5)"
	AgeKids     = "Kids (6-12)"
	AgeAllAges  = "All Ages"
)

// SupportedAgeGroups returns the closed set of age group labels the
// catalogue publishes.
func SupportedAgeGroups() []string {
	return []string{AgeBabies, AgeToddlers, AgeKids, AgeAllAges}
}

// Venue is the physical location of an event. Lat/Lng of (0, 0) means
// coordinates are unknown. PlaceID is empty until enrichment resolves
// the venue against the external place index.
type Venue struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood,omitempty"`
	Lat          float64 `json:"lat,omitempty"`
	Lng          float64 `json:"lng,omitempty"`
	PlaceID      string  `json:"place_id,omitempty"`
}

// HasCoords reports whether the venue carries real coordinates.
func (v Venue) HasCoords() bool {
	return v.Lat != 0 || v.Lng != 0
}

// RawEvent is the untrusted output of a single source adapter. It is
// produced fresh on every scrape and discarded once it has either been
// converted into an Event or dropped with a reason.
type RawEvent struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Icon          string    `json:"icon"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Venue         Venue     `json:"venue"`
	AgeGroups     []string  `json:"age_groups"`
	IndoorOutdoor string    `json:"indoor_outdoor"`
	OrganizedBy   string    `json:"organized_by"`
	Website       string    `json:"website,omitempty"`
	Source        string    `json:"source"`
	ScrapedAt     time.Time `json:"-"`
}

// Event is a validated, normalized catalogue entry. ID is the dedup
// fingerprint digest, so exactly one Event exists per fingerprint in any
// pipeline output. Date is guaranteed parseable and not in the past
// relative to the run that produced it.
type Event struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Icon          string   `json:"icon"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Venue         Venue    `json:"venue"`
	AgeGroups     []string `json:"age_groups"`
	IndoorOutdoor string   `json:"indoor_outdoor"`
	OrganizedBy   string   `json:"organized_by"`
	Website       string   `json:"website"`
	Source        string   `json:"source"`
}
