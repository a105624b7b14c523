// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/jopolko/kidsevents/internal/models"
)

func testEvent(title, date string) models.Event {
	return models.Event{
		ID:        Fingerprint(title, date, "10:00", "Test Venue"),
		Title:     title,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "12:00",
		Venue:     models.Venue{Name: "Test Venue"},
		AgeGroups: []string{models.AgeAllAges},
		Source:    "Test",
	}
}

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	return w, dir
}

func readDoc(t *testing.T, path string) eventsDocument {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var doc eventsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return doc
}

func TestWriteCanonical(t *testing.T) {
	w, dir := newTestWriter(t)
	events := []models.Event{testEvent("Storytime", "2026-03-05"), testEvent("Craft Day", "2026-03-06")}

	if err := w.WriteCanonical(events); err != nil {
		t.Fatalf("WriteCanonical: %v", err)
	}

	doc := readDoc(t, filepath.Join(dir, "events.json"))
	if doc.TotalEvents != 2 || len(doc.Events) != 2 {
		t.Errorf("total = %d, events = %d", doc.TotalEvents, len(doc.Events))
	}
	if doc.Events[0].Title != "Storytime" {
		t.Errorf("first event = %q", doc.Events[0].Title)
	}
	if doc.Statistics != nil {
		t.Error("canonical artifact must not embed statistics")
	}

	if entries, _ := os.ReadDir(dir); len(entries) != 1 {
		t.Errorf("expected only events.json, found %d files", len(entries))
	}
}

func TestWriteFullEmbedsStatistics(t *testing.T) {
	w, dir := newTestWriter(t)
	stats := models.NewRunStatistics("run-1")
	stats.TotalEvents = 1

	if err := w.WriteFull([]models.Event{testEvent("Storytime", "2026-03-05")}, stats); err != nil {
		t.Fatalf("WriteFull: %v", err)
	}

	doc := readDoc(t, filepath.Join(dir, "events_full.json"))
	if doc.Statistics == nil || doc.Statistics.RunID != "run-1" {
		t.Errorf("statistics = %+v", doc.Statistics)
	}
}

func TestWriteMetadataCountsWeekOnly(t *testing.T) {
	w, dir := newTestWriter(t)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		testEvent("In Window", "2026-03-03"),
		testEvent("Window Edge", "2026-03-08"),
		testEvent("Beyond Window", "2026-03-09"),
	}

	if err := w.WriteMetadata(events, today); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	var doc metadataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}

	// The 7-day window is [today, today+7): 03-03 and 03-08 qualify.
	if doc.TotalEvents != 2 {
		t.Errorf("week events = %d, want 2", doc.TotalEvents)
	}
	if doc.TotalVenues != 1 {
		t.Errorf("week venues = %d, want 1", doc.TotalVenues)
	}
	if doc.Human.Events != "2" || doc.Human.DateGenerated == "" {
		t.Errorf("human readable = %+v", doc.Human)
	}
}

func TestWriteWeeklyBuckets(t *testing.T) {
	w, dir := newTestWriter(t)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		testEvent("Week One", "2026-03-02"),
		testEvent("Week Two", "2026-03-10"),
		testEvent("Week Four", "2026-03-29"),
		testEvent("Beyond", "2026-05-01"),
	}

	if err := w.WriteWeekly(events, today); err != nil {
		t.Fatalf("WriteWeekly: %v", err)
	}

	wantCounts := []int{1, 1, 0, 1}
	for i, want := range wantCounts {
		doc := readDoc(t, filepath.Join(dir, "events_week"+string(rune('1'+i))+".json"))
		if doc.TotalEvents != want {
			t.Errorf("week %d events = %d, want %d", i+1, doc.TotalEvents, want)
		}
	}

	// Events past 28 days are only in the canonical artifact.
	week4 := readDoc(t, filepath.Join(dir, "events_week4.json"))
	if len(week4.Events) != 1 || week4.Events[0].Title != "Week Four" {
		t.Errorf("week 4 = %+v", week4.Events)
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"}, {7, "7"}, {999, "999"}, {1000, "1,000"}, {1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.n); got != tt.want {
			t.Errorf("groupDigits(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
