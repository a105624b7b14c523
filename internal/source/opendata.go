// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/jopolko/kidsevents/internal/logging"
	"github.com/jopolko/kidsevents/internal/models"
)

// SourceOpenData is the source tag for City of Toronto Festivals & Events.
const SourceOpenData = "TorontoOpenData"

// The feed aggregates events from across the Golden Horseshoe; anything
// matching these municipality names is outside the catalogue's area.
var openDataExcludedAreas = []string{
	"burlington", "oakville", "milton", "halton", "hamilton",
	"mississauga", "brampton", "caledon", "peel",
	"vaughan", "richmond hill", "markham", "newmarket", "aurora",
	"king city", "pickering", "ajax", "whitby", "oshawa", "durham",
	"clarington", "uxbridge", "stouffville",
}

var openDataKidsKeywords = []string{
	"kid", "kids", "child", "children", "family", "families",
	"baby", "babies", "infant", "toddler", "preschool",
	"youth", "teen", "junior", "ages 0", "ages 1", "ages 2",
	"ages 3", "ages 4", "ages 5", "ages 6", "all ages",
}

// openDataEvent mirrors the Festivals & Events feed record shape.
type openDataEvent struct {
	EventName        string             `json:"event_name"`
	StartDate        string             `json:"event_startdate"`
	ShortDescription string             `json:"short_description"`
	EventDescription string             `json:"event_description"`
	Categories       []string           `json:"event_category"`
	Locations        []openDataLocation `json:"event_locations"`
	CalendarDate     string             `json:"calendar_date"`
	FreeEvent        string             `json:"free_event"`
	Website          string             `json:"event_website"`
	TicketWebsite    string             `json:"ticket_website"`
}

type openDataLocation struct {
	Name    string          `json:"location_name"`
	Address string          `json:"location_address"`
	GPS     json.RawMessage `json:"location_gps"`
}

// gps_lat/gps_lng arrive as strings in some records and numbers in
// others, so the fields decode loosely and convert afterwards.
type openDataGPS struct {
	Lat any `json:"gps_lat"`
	Lng any `json:"gps_lng"`
}

func gpsFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// OpenDataAdapter scrapes the City of Toronto Festivals & Events open
// data feed.
type OpenDataAdapter struct {
	http      *resty.Client
	url       string
	daysAhead int
	now       func() time.Time
}

// NewOpenData builds a Festivals & Events adapter against the given
// feed URL.
func NewOpenData(url string, daysAhead int, timeout time.Duration) *OpenDataAdapter {
	return &OpenDataAdapter{
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(2 * time.Second),
		url:       url,
		daysAhead: daysAhead,
		now:       time.Now,
	}
}

func (a *OpenDataAdapter) Name() string { return SourceOpenData }

// Scrape downloads the feed and keeps kids-relevant Toronto events
// inside the scrape horizon.
func (a *OpenDataAdapter) Scrape(ctx context.Context) ([]models.RawEvent, error) {
	resp, err := a.http.R().SetContext(ctx).Get(a.url)
	if err != nil {
		return nil, fmt.Errorf("opendata: fetch: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("opendata: unexpected status %d", resp.StatusCode())
	}

	var feed struct {
		Value []openDataEvent `json:"value"`
	}
	if err := json.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("opendata: decode feed: %w", err)
	}

	// ISO dates order lexically, so the window check is a string compare.
	today := dateOnly(a.now()).Format(models.DateFormat)
	horizon := dateOnly(a.now()).AddDate(0, 0, a.daysAhead).Format(models.DateFormat)
	scrapedAt := a.now()

	var events []models.RawEvent
	for _, rec := range feed.Value {
		ev, ok := a.parseEvent(rec, today, horizon, scrapedAt)
		if !ok {
			continue
		}
		events = append(events, ev)
	}

	logging.Debug().
		Str("source", SourceOpenData).
		Int("records", len(feed.Value)).
		Int("events", len(events)).
		Msg("festivals feed parsed")
	return events, nil
}

func (a *OpenDataAdapter) parseEvent(rec openDataEvent, today, horizon string, scrapedAt time.Time) (models.RawEvent, bool) {
	title := strings.TrimSpace(rec.EventName)
	if title == "" || rec.StartDate == "" {
		return models.RawEvent{}, false
	}

	description := rec.ShortDescription
	if description == "" {
		description = rec.EventDescription
	}

	text := strings.ToLower(title + " " + description)
	if !containsAny(text, openDataKidsKeywords...) {
		return models.RawEvent{}, false
	}

	eventDate, ok := parseISODate(rec.StartDate)
	if !ok {
		return models.RawEvent{}, false
	}
	date := eventDate.Format(models.DateFormat)
	if date < today || date > horizon {
		return models.RawEvent{}, false
	}

	if excludedLocation(rec.Locations) {
		return models.RawEvent{}, false
	}

	venue := parseOpenDataVenue(rec.Locations)
	category, icon := openDataCategorize(rec.Categories, text)

	startTime := extractISOTime(rec.CalendarDate)
	if startTime == "" {
		startTime = "10:00"
	}

	website := rec.Website
	if website == "" {
		website = rec.TicketWebsite
	}

	ageGroups := DetermineAgeGroups(title, description)
	if len(ageGroups) == 0 {
		ageGroups = []string{models.AgeAllAges}
	}

	return models.RawEvent{
		Title:       title,
		Description: Truncate(CleanText(description), 250),
		Category:    category,
		Icon:        icon,
		Date:        date,
		StartTime:   startTime,
		EndTime:     EndTimeAfter(startTime),
		Venue:       venue,
		AgeGroups:   ageGroups,
		// Festival venues mix halls and parks; the feed does not say which.
		IndoorOutdoor: "Both",
		OrganizedBy:   "City of Toronto",
		Website:       website,
		Source:        SourceOpenData,
		ScrapedAt:     scrapedAt,
	}, true
}

// excludedLocation reports whether any event location names a
// municipality outside Toronto.
func excludedLocation(locations []openDataLocation) bool {
	var parts []string
	for _, loc := range locations {
		parts = append(parts, loc.Name, loc.Address)
	}
	text := strings.ToLower(strings.Join(parts, " "))
	return containsAny(text, openDataExcludedAreas...)
}

// parseOpenDataVenue builds a venue from the first event location. The
// GPS field is a JSON array serialized inside a string, so it is decoded
// in two steps and bad payloads degrade to unknown coordinates.
func parseOpenDataVenue(locations []openDataLocation) models.Venue {
	if len(locations) == 0 {
		return models.Venue{Name: "Toronto", Neighborhood: "Toronto"}
	}
	loc := locations[0]

	venue := models.Venue{
		Name:         strings.TrimSpace(loc.Name),
		Address:      strings.TrimSpace(loc.Address),
		Neighborhood: "Toronto",
	}
	if venue.Name == "" {
		venue.Name = "Toronto Venue"
	}
	for _, area := range []string{"Etobicoke", "Scarborough", "North York", "East York"} {
		if strings.Contains(venue.Address, area) {
			venue.Neighborhood = area
			break
		}
	}

	if len(loc.GPS) > 0 {
		raw := loc.GPS
		var nested string
		if err := json.Unmarshal(raw, &nested); err == nil {
			raw = []byte(nested)
		}
		var points []openDataGPS
		if err := json.Unmarshal(raw, &points); err == nil && len(points) > 0 {
			venue.Lat = gpsFloat(points[0].Lat)
			venue.Lng = gpsFloat(points[0].Lng)
		}
	}
	return venue
}

// openDataCategorize prefers the feed's own category tags over free
// text.
func openDataCategorize(categories []string, text string) (string, string) {
	catText := strings.ToLower(strings.Join(categories, " "))
	switch {
	case containsAny(catText, "art", "exhibit"):
		return "Arts", "🎨"
	case containsAny(catText, "music", "performance"):
		return "Entertainment", "🎵"
	case containsAny(catText, "sport"):
		return "Sports", "⚽"
	case containsAny(catText, "festival", "fair"):
		return "Entertainment", "🎪"
	}
	return Categorize(text, "")
}

// parseISODate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func parseISODate(s string) (time.Time, bool) {
	if t, err := time.Parse(models.DateFormat, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dateOnly(t), true
	}
	return time.Time{}, false
}

// extractISOTime pulls HH:MM out of an RFC 3339 timestamp, or returns
// empty when the value does not parse.
func extractISOTime(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("15:04")
	}
	return ""
}
