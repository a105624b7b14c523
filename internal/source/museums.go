// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package source

import (
	"context"
	"time"

	"github.com/jopolko/kidsevents/internal/models"
)

// SourceMuseums is the source tag for recurring museum free-admission
// days.
const SourceMuseums = "Museums"

// MuseumsAdapter emits recurring free-admission events for the major
// Toronto museums. The schedules are published institution policy, not
// a feed, so this adapter computes dates locally and never touches the
// network.
type MuseumsAdapter struct {
	daysAhead int
	now       func() time.Time
}

// NewMuseums builds a museum free-days adapter covering the given
// horizon.
func NewMuseums(daysAhead int) *MuseumsAdapter {
	return &MuseumsAdapter{daysAhead: daysAhead, now: time.Now}
}

func (a *MuseumsAdapter) Name() string { return SourceMuseums }

// Scrape generates every scheduled free day between today and the
// horizon.
func (a *MuseumsAdapter) Scrape(_ context.Context) ([]models.RawEvent, error) {
	today := dateOnly(a.now())
	horizon := today.AddDate(0, 0, a.daysAhead)
	scrapedAt := a.now()

	var events []models.RawEvent
	events = append(events, a.romThirdTuesdays(today, horizon, scrapedAt)...)
	events = append(events, a.agoFirstWednesdays(today, horizon, scrapedAt)...)
	events = append(events, a.agaKhanFreeWednesdays(today, horizon, scrapedAt)...)
	return events, nil
}

// romThirdTuesdays generates the ROM's monthly free Tuesday evening.
func (a *MuseumsAdapter) romThirdTuesdays(today, horizon time.Time, scrapedAt time.Time) []models.RawEvent {
	var events []models.RawEvent
	for _, date := range monthlyWeekday(today, horizon, time.Tuesday, 3) {
		events = append(events, models.RawEvent{
			Title: "ROM Third Tuesday Night FREE Admission",
			Description: "Free admission for everyone on the third Tuesday evening of each month! " +
				"Explore world cultures, natural history, and special exhibitions. " +
				"Advance tickets required (released 2 weeks prior).",
			Category:  "Learning",
			Icon:      "🏛️",
			Date:      date.Format(models.DateFormat),
			StartTime: "16:30",
			EndTime:   "20:30",
			Venue: models.Venue{
				Name:         "Royal Ontario Museum",
				Address:      "100 Queens Park",
				Neighborhood: "Downtown",
				Lat:          43.6677,
				Lng:          -79.3948,
			},
			AgeGroups:     []string{models.AgeAllAges},
			IndoorOutdoor: "Indoor",
			OrganizedBy:   "Royal Ontario Museum",
			Website:       "https://www.rom.on.ca/whats-on/special-programs/third-tuesday-nights-free",
			Source:        SourceMuseums,
			ScrapedAt:     scrapedAt,
		})
	}
	return events
}

// agoFirstWednesdays generates the AGO's monthly free Wednesday evening.
func (a *MuseumsAdapter) agoFirstWednesdays(today, horizon time.Time, scrapedAt time.Time) []models.RawEvent {
	var events []models.RawEvent
	for _, date := range monthlyWeekday(today, horizon, time.Wednesday, 1) {
		events = append(events, models.RawEvent{
			Title: "AGO First Wednesday Night FREE Admission",
			Description: "Free admission on the first Wednesday evening of each month! " +
				"See world-class art collections including Canadian, European, and contemporary works. " +
				"Tickets released Monday before.",
			Category:  "Arts",
			Icon:      "🎨",
			Date:      date.Format(models.DateFormat),
			StartTime: "18:00",
			EndTime:   "21:00",
			Venue: models.Venue{
				Name:         "Art Gallery of Ontario",
				Address:      "317 Dundas St W",
				Neighborhood: "Downtown",
				Lat:          43.6536,
				Lng:          -79.3925,
			},
			AgeGroups:     []string{models.AgeAllAges},
			IndoorOutdoor: "Indoor",
			OrganizedBy:   "Art Gallery of Ontario",
			Website:       "https://ago.ca/visit/free-wednesday-nights",
			Source:        SourceMuseums,
			ScrapedAt:     scrapedAt,
		})
	}
	return events
}

// agaKhanFreeWednesdays generates the Aga Khan Museum's weekly free
// Wednesday evening.
func (a *MuseumsAdapter) agaKhanFreeWednesdays(today, horizon time.Time, scrapedAt time.Time) []models.RawEvent {
	var events []models.RawEvent
	for date := today; !date.After(horizon); date = date.AddDate(0, 0, 1) {
		if date.Weekday() != time.Wednesday {
			continue
		}
		events = append(events, models.RawEvent{
			Title: "BMO Free Wednesday at Aga Khan Museum",
			Description: "Free general admission every Wednesday from 4-8pm. " +
				"Explore Islamic arts and cultures through exhibitions, collections, and beautiful architecture. " +
				"Perfect for families!",
			Category:  "Arts",
			Icon:      "🕌",
			Date:      date.Format(models.DateFormat),
			StartTime: "16:00",
			EndTime:   "20:00",
			Venue: models.Venue{
				Name:         "Aga Khan Museum",
				Address:      "77 Wynford Drive, Toronto, ON M3C 1K1",
				Neighborhood: "North York",
				Lat:          43.7255,
				Lng:          -79.3322,
			},
			AgeGroups:     []string{models.AgeAllAges},
			IndoorOutdoor: "Indoor",
			OrganizedBy:   "Aga Khan Museum",
			Website:       "https://www.agakhanmuseum.org/visit",
			Source:        SourceMuseums,
			ScrapedAt:     scrapedAt,
		})
	}
	return events
}

// monthlyWeekday returns the nth weekday of every month touching the
// [today, horizon] window, excluding dates outside it.
func monthlyWeekday(today, horizon time.Time, weekday time.Weekday, nth int) []time.Time {
	var dates []time.Time
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	for !month.After(horizon) {
		offset := (int(weekday) - int(month.Weekday()) + 7) % 7
		date := month.AddDate(0, 0, offset+(nth-1)*7)
		if date.Month() == month.Month() && !date.Before(today) && !date.After(horizon) {
			dates = append(dates, date)
		}
		month = month.AddDate(0, 1, 0)
	}
	return dates
}
