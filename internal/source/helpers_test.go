// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package source

import (
	"strings"
	"testing"

	"github.com/jopolko/kidsevents/internal/models"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Family Storytime", "Family Storytime"},
		{"html tags", "<p>Drop-in <b>crafts</b> for kids</p>", "Drop-in crafts for kids"},
		{"whitespace runs", "Baby\n\ntime   at the\tlibrary", "Baby time at the library"},
		{"leading trailing", "  puppet show  ", "puppet show"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"24h", "14:00", "14:00"},
		{"24h single digit hour", "9:30", "09:30"},
		{"am/pm", "2:00 PM", "14:00"},
		{"am/pm lowercase", "10:30 am", "10:30"},
		{"am/pm no space", "6:15PM", "18:15"},
		{"minutes with suffix", "10:30 AM", "10:30"},
		{"empty defaults", "", "10:00"},
		{"none defaults", "None", "10:00"},
		{"all day defaults", "All Day", "10:00"},
		{"garbage defaults", "soonish", "10:00"},
		{"out of range defaults", "25:99", "10:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseClockTime(tt.in); got != tt.want {
				t.Errorf("ParseClockTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEndTimeAfter(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"10:00", "12:00"},
		{"16:30", "18:30"},
		{"23:00", "01:00"},
		{"bogus", "17:00"},
	}
	for _, tt := range tests {
		if got := EndTimeAfter(tt.start); got != tt.want {
			t.Errorf("EndTimeAfter(%q) = %q, want %q", tt.start, got, tt.want)
		}
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		desc     string
		category string
	}{
		{"arts", "Paint Party", "bring a smock", "Arts"},
		{"music", "Kids Concert", "", "Entertainment"},
		{"learning", "Storytime", "books and songs", "Learning"},
		{"sports", "Learn to Skate", "", "Sports"},
		{"outdoors", "Nature Walk", "explore the garden", "Outdoors"},
		{"fallback", "Community Gathering", "", "Entertainment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, icon := Categorize(tt.title, tt.desc)
			if category != tt.category {
				t.Errorf("Categorize(%q, %q) category = %q, want %q", tt.title, tt.desc, category, tt.category)
			}
			if icon == "" {
				t.Error("expected non-empty icon")
			}
		})
	}
}

func TestDetermineAgeGroups(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"babies", "baby rhyme time", []string{models.AgeBabies}},
		{"toddlers", "toddler dance party", []string{models.AgeToddlers}},
		{"kids", "crafts for children", []string{models.AgeKids}},
		{"all ages", "fun for the whole family", []string{models.AgeAllAges}},
		{"multiple", "babies and toddlers welcome", []string{models.AgeBabies, models.AgeToddlers}},
		{"no signal", "an evening lecture", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineAgeGroups(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("DetermineAgeGroups(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("group[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := Truncate(long, 250)
	if len(got) != 250 {
		t.Errorf("truncated length = %d, want 250", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis suffix")
	}
	if short := Truncate("short", 250); short != "short" {
		t.Errorf("short string modified: %q", short)
	}
}
