// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jopolko/kidsevents/internal/models"
)

// DropReason identifies why a raw event was rejected during validation.
// The string values appear verbatim in run statistics and metrics labels.
type DropReason string

const (
	DropNone         DropReason = ""
	DropMissingField DropReason = "missing_required_field"
	DropBadDate      DropReason = "bad_date"
	DropPastEvent    DropReason = "past_event"
	DropCancelled    DropReason = "cancelled_marker"
	DropAgeGroup     DropReason = "disallowed_age_group"
)

// Greater Toronto plausibility bounds. Coordinates outside this box are
// treated as geocoding noise and zeroed so enrichment can re-resolve
// the venue, rather than the event being dropped.
const (
	gtaMinLat = 43.0
	gtaMaxLat = 44.5
	gtaMinLng = -80.5
	gtaMaxLng = -78.0
)

// Normalize validates one raw event against today's date and converts it
// into a catalogue Event. Rules apply in a fixed order so a multiply
// broken event always reports the same reason. The returned bool is
// false when the event was dropped.
func Normalize(raw models.RawEvent, today time.Time) (models.Event, DropReason, bool) {
	title := strings.TrimSpace(raw.Title)
	date := strings.TrimSpace(raw.Date)
	startTime := strings.TrimSpace(raw.StartTime)
	venueName := strings.TrimSpace(raw.Venue.Name)

	if title == "" || date == "" || startTime == "" || venueName == "" {
		return models.Event{}, DropMissingField, false
	}

	if _, err := time.Parse(models.DateFormat, date); err != nil {
		return models.Event{}, DropBadDate, false
	}
	// ISO dates order lexically; comparing strings sidesteps timezone
	// skew between the parsed date (UTC) and the local run date.
	if date < today.Format(models.DateFormat) {
		return models.Event{}, DropPastEvent, false
	}

	lowerTitle := strings.ToLower(title)
	if strings.Contains(lowerTitle, "cancelled") || strings.Contains(lowerTitle, "canceled") {
		return models.Event{}, DropCancelled, false
	}

	ageGroups := supportedAgeGroups(raw.AgeGroups)
	if len(ageGroups) == 0 {
		return models.Event{}, DropAgeGroup, false
	}

	venue := models.Venue{
		Name:         venueName,
		Address:      strings.TrimSpace(raw.Venue.Address),
		Neighborhood: strings.TrimSpace(raw.Venue.Neighborhood),
		Lat:          raw.Venue.Lat,
		Lng:          raw.Venue.Lng,
		PlaceID:      strings.TrimSpace(raw.Venue.PlaceID),
	}
	if venue.HasCoords() && !plausibleCoords(venue.Lat, venue.Lng) {
		venue.Lat, venue.Lng = 0, 0
	}

	ev := models.Event{
		Title:         title,
		Description:   strings.TrimSpace(raw.Description),
		Category:      strings.TrimSpace(raw.Category),
		Icon:          strings.TrimSpace(raw.Icon),
		Date:          date,
		StartTime:     startTime,
		EndTime:       strings.TrimSpace(raw.EndTime),
		Venue:         venue,
		AgeGroups:     ageGroups,
		IndoorOutdoor: strings.TrimSpace(raw.IndoorOutdoor),
		OrganizedBy:   strings.TrimSpace(raw.OrganizedBy),
		Website:       strings.TrimSpace(raw.Website),
		Source:        strings.TrimSpace(raw.Source),
	}

	if ev.Category == "" {
		ev.Category = "Entertainment"
	}
	if ev.Icon == "" {
		ev.Icon = "🎉"
	}
	if ev.IndoorOutdoor == "" {
		ev.IndoorOutdoor = "Indoor"
	}
	if ev.OrganizedBy == "" {
		ev.OrganizedBy = "Community Event"
	}
	if ev.EndTime == "" {
		ev.EndTime = defaultEndTime(ev.StartTime)
	}

	ev.ID = Fingerprint(ev.Title, ev.Date, ev.StartTime, ev.Venue.Name)
	return ev, DropNone, true
}

// supportedAgeGroups filters labels down to the published set,
// preserving input order and dropping duplicates.
func supportedAgeGroups(labels []string) []string {
	supported := models.SupportedAgeGroups()
	var out []string
	for _, label := range labels {
		label = strings.TrimSpace(label)
		for _, s := range supported {
			if label == s && !containsString(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

func plausibleCoords(lat, lng float64) bool {
	return lat >= gtaMinLat && lat <= gtaMaxLat && lng >= gtaMinLng && lng <= gtaMaxLng
}

// defaultEndTime returns start plus two hours, the standard program
// length when a source omits the end.
func defaultEndTime(start string) string {
	parts := strings.SplitN(start, ":", 2)
	if len(parts) != 2 {
		return "17:00"
	}
	hour, err1 := strconv.Atoi(parts[0])
	min, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return "17:00"
	}
	return fmt.Sprintf("%02d:%02d", (hour+2)%24, min)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
