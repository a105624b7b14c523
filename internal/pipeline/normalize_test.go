// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package pipeline

import (
	"testing"
	"time"

	"github.com/jopolko/kidsevents/internal/models"
)

var testToday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func validRaw() models.RawEvent {
	return models.RawEvent{
		Title:     "Family Storytime",
		Date:      "2026-03-10",
		StartTime: "10:30",
		EndTime:   "11:00",
		Venue: models.Venue{
			Name:    "Toronto Public Library - High Park",
			Address: "228 Roncesvalles Ave",
			Lat:     43.6544,
			Lng:     -79.4657,
		},
		AgeGroups: []string{models.AgeToddlers},
		Source:    "TPL",
	}
}

func TestNormalizeDropReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RawEvent)
		reason DropReason
	}{
		{"missing title", func(r *models.RawEvent) { r.Title = "  " }, DropMissingField},
		{"missing date", func(r *models.RawEvent) { r.Date = "" }, DropMissingField},
		{"missing start time", func(r *models.RawEvent) { r.StartTime = "" }, DropMissingField},
		{"missing venue name", func(r *models.RawEvent) { r.Venue.Name = "" }, DropMissingField},
		{"unparseable date", func(r *models.RawEvent) { r.Date = "March 10" }, DropBadDate},
		{"past date", func(r *models.RawEvent) { r.Date = "2020-01-01" }, DropPastEvent},
		{"cancelled marker", func(r *models.RawEvent) { r.Title = "CANCELLED: Family Storytime" }, DropCancelled},
		{"canceled spelling", func(r *models.RawEvent) { r.Title = "Storytime (Canceled)" }, DropCancelled},
		{"no age groups", func(r *models.RawEvent) { r.AgeGroups = nil }, DropAgeGroup},
		{"unsupported ages only", func(r *models.RawEvent) { r.AgeGroups = []string{"Teens (13-17)"} }, DropAgeGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)
			_, reason, ok := Normalize(raw, testToday)
			if ok {
				t.Fatal("expected drop")
			}
			if reason != tt.reason {
				t.Errorf("reason = %q, want %q", reason, tt.reason)
			}
		})
	}
}

// A date broken in several ways must always report the first rule that
// fails, so statistics stay comparable across runs.
func TestNormalizeRuleOrder(t *testing.T) {
	raw := validRaw()
	raw.Title = "Cancelled Storytime"
	raw.Date = "not-a-date"
	_, reason, _ := Normalize(raw, testToday)
	if reason != DropBadDate {
		t.Errorf("reason = %q, want %q", reason, DropBadDate)
	}
}

func TestNormalizeTodayIsKept(t *testing.T) {
	raw := validRaw()
	raw.Date = testToday.Format(models.DateFormat)
	if _, _, ok := Normalize(raw, testToday); !ok {
		t.Error("events on the run date must be kept")
	}
}

func TestNormalizeTrimsAndDefaults(t *testing.T) {
	raw := validRaw()
	raw.Title = "  Family Storytime  "
	raw.Category = ""
	raw.Icon = ""
	raw.IndoorOutdoor = ""
	raw.OrganizedBy = ""
	raw.EndTime = ""

	ev, _, ok := Normalize(raw, testToday)
	if !ok {
		t.Fatal("unexpected drop")
	}
	if ev.Title != "Family Storytime" {
		t.Errorf("title not trimmed: %q", ev.Title)
	}
	if ev.Category != "Entertainment" || ev.Icon == "" {
		t.Errorf("category/icon defaults = %q/%q", ev.Category, ev.Icon)
	}
	if ev.IndoorOutdoor != "Indoor" || ev.OrganizedBy != "Community Event" {
		t.Errorf("defaults = %q/%q", ev.IndoorOutdoor, ev.OrganizedBy)
	}
	if ev.EndTime != "12:30" {
		t.Errorf("end time default = %q, want start + 2h", ev.EndTime)
	}
	if ev.ID == "" {
		t.Error("expected fingerprint ID")
	}
}

func TestNormalizeZeroesImplausibleCoords(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		kept     bool
	}{
		{"downtown", 43.6532, -79.3832, true},
		{"zero unknown", 0, 0, false},
		{"wrong hemisphere", -43.65, 79.38, false},
		{"north of gta", 45.4215, -75.6972, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw.Venue.Lat, raw.Venue.Lng = tt.lat, tt.lng
			ev, _, ok := Normalize(raw, testToday)
			if !ok {
				t.Fatal("coordinate issues must not drop the event")
			}
			if got := ev.Venue.HasCoords(); got != tt.kept {
				t.Errorf("HasCoords = %v, want %v (%v/%v)", got, tt.kept, ev.Venue.Lat, ev.Venue.Lng)
			}
		})
	}
}

func TestNormalizeFiltersAgeGroups(t *testing.T) {
	raw := validRaw()
	raw.AgeGroups = []string{"Teens (13-17)", models.AgeKids, models.AgeKids, models.AgeAllAges}
	ev, _, ok := Normalize(raw, testToday)
	if !ok {
		t.Fatal("unexpected drop")
	}
	want := []string{models.AgeKids, models.AgeAllAges}
	if len(ev.AgeGroups) != len(want) {
		t.Fatalf("age groups = %v, want %v", ev.AgeGroups, want)
	}
	for i := range want {
		if ev.AgeGroups[i] != want[i] {
			t.Errorf("age group[%d] = %q, want %q", i, ev.AgeGroups[i], want[i])
		}
	}
}
