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

// SourceTPL is the source tag for Toronto Public Library events.
const SourceTPL = "TPL"

const tplDefaultWebsite = "https://www.torontopubliclibrary.ca"

// CKAN datastore dump record layout for the TPL events resource:
// [_id, title, startdate, enddate, starttime, endtime, library, location,
// description, pagelink, id, rcid, eventtype1..3, agegroup1..3, ...]
const (
	tplFieldTitle       = 1
	tplFieldStartDate   = 2
	tplFieldStartTime   = 4
	tplFieldEndTime     = 5
	tplFieldLibrary     = 6
	tplFieldDescription = 8
	tplFieldPageLink    = 9
	tplFieldAgeGroup1   = 15
	tplFieldAgeGroup2   = 16
	tplFieldAgeGroup3   = 17
)

// Broad net: TPL lists thousands of programs and the age-group fields
// are inconsistently filled, so relevance matching leans permissive and
// the validator downstream does the strict filtering.
var tplKidsKeywords = []string{
	"baby", "babies", "child", "children", "family", "families",
	"kid", "kids", "toddler", "preschool", "storytime", "story time",
	"craft", "teen", "youth", "earlyon", "junior", "young", "parent",
	"lego", "play", "game", "art", "music", "dance", "sing", "read",
	"book", "learning", "stem", "science", "coding", "robot", "maker",
	"animate", "puppet", "costume", "workshop", "program", "club",
	"ages", "grade", "school", "explore", "discover", "fun", "creative",
	"build", "create", "imagine", "adventure", "interactive", "hands-on",
	"beginner", "intro", "all ages", "movie", "film", "gaming",
}

var tplAgeTerms = []string{
	"baby", "babies", "infant", "toddler", "preschool",
	"child", "children", "kids", "kid", "youth", "teen",
	"family", "families", "0-", "1-", "2-", "3-", "4-", "5-",
	"6-", "7-", "8-", "9-", "10-", "11-", "12-",
	"ages 0", "ages 1", "ages 2",
}

// Adult employment programming matches the broad keyword net ("program",
// "workshop") but is never a kids outing.
var tplJobKeywords = []string{
	"resume", "job", "career", "employment", "interview", "cv ",
}

// TPLAdapter scrapes the Toronto Public Library events resource from the
// city CKAN datastore.
type TPLAdapter struct {
	http      *resty.Client
	url       string
	daysAhead int
	now       func() time.Time
}

// NewTPL builds a TPL adapter against the given CKAN dump URL.
func NewTPL(url string, daysAhead int, timeout time.Duration) *TPLAdapter {
	return &TPLAdapter{
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(2 * time.Second),
		url:       url,
		daysAhead: daysAhead,
		now:       time.Now,
	}
}

func (a *TPLAdapter) Name() string { return SourceTPL }

// Scrape downloads the full events dump and keeps kids-relevant records
// inside the scrape horizon. Individual malformed records are skipped,
// not fatal.
func (a *TPLAdapter) Scrape(ctx context.Context) ([]models.RawEvent, error) {
	resp, err := a.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "json",
			"limit":  "30000",
		}).
		Get(a.url)
	if err != nil {
		return nil, fmt.Errorf("tpl: fetch: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("tpl: unexpected status %d", resp.StatusCode())
	}

	var dump struct {
		Records [][]any `json:"records"`
	}
	if err := json.Unmarshal(resp.Body(), &dump); err != nil {
		return nil, fmt.Errorf("tpl: decode dump: %w", err)
	}

	// ISO dates order lexically, so the window check is a string compare.
	today := dateOnly(a.now()).Format(models.DateFormat)
	horizon := dateOnly(a.now()).AddDate(0, 0, a.daysAhead).Format(models.DateFormat)
	scrapedAt := a.now()

	var events []models.RawEvent
	skipped := 0
	for _, rec := range dump.Records {
		ev, ok := a.parseRecord(rec, today, horizon, scrapedAt)
		if !ok {
			skipped++
			continue
		}
		events = append(events, ev)
	}

	logging.Debug().
		Str("source", SourceTPL).
		Int("records", len(dump.Records)).
		Int("events", len(events)).
		Int("skipped", skipped).
		Msg("tpl dump parsed")
	return events, nil
}

func (a *TPLAdapter) parseRecord(rec []any, today, horizon string, scrapedAt time.Time) (models.RawEvent, bool) {
	title := recordString(rec, tplFieldTitle)
	startDate := recordString(rec, tplFieldStartDate)
	if title == "" || startDate == "" {
		return models.RawEvent{}, false
	}

	if _, err := time.Parse(models.DateFormat, startDate); err != nil {
		return models.RawEvent{}, false
	}
	if startDate < today || startDate > horizon {
		return models.RawEvent{}, false
	}

	library := recordString(rec, tplFieldLibrary)
	description := recordString(rec, tplFieldDescription)
	age1 := recordString(rec, tplFieldAgeGroup1)
	age2 := recordString(rec, tplFieldAgeGroup2)
	age3 := recordString(rec, tplFieldAgeGroup3)
	ageText := strings.ToLower(age1 + " " + age2 + " " + age3)
	fullText := strings.ToLower(title+" "+description) + " " + ageText

	if !containsAny(fullText, tplKidsKeywords...) && !containsAny(ageText, tplAgeTerms...) {
		return models.RawEvent{}, false
	}
	if containsAny(fullText, tplJobKeywords...) {
		return models.RawEvent{}, false
	}

	description = Truncate(CleanText(description), 250)

	endTime := ""
	if raw := recordString(rec, tplFieldEndTime); raw != "" && !strings.EqualFold(raw, "none") {
		endTime = ParseClockTime(raw)
	}

	website := recordString(rec, tplFieldPageLink)
	if website == "" || website == "None" {
		website = tplDefaultWebsite
	}

	lat, lng := tplBranchCoords(library)
	category, icon := tplCategorize(title, description)

	return models.RawEvent{
		Title:       title,
		Description: description,
		Category:    category,
		Icon:        icon,
		Date:        startDate,
		StartTime:   ParseClockTime(recordString(rec, tplFieldStartTime)),
		EndTime:     endTime,
		Venue: models.Venue{
			Name:         "Toronto Public Library - " + library,
			Address:      library,
			Neighborhood: library,
			Lat:          lat,
			Lng:          lng,
		},
		AgeGroups:     tplAgeGroups(fullText, ageText),
		IndoorOutdoor: "Indoor",
		OrganizedBy:   "Toronto Public Library",
		Website:       website,
		Source:        SourceTPL,
		ScrapedAt:     scrapedAt,
	}, true
}

// tplAgeGroups maps TPL audience labels onto the catalogue age groups.
// The dedicated age-group fields win; free text is the fallback; no
// signal at all defaults to All Ages since library programming is
// generally open.
func tplAgeGroups(fullText, ageText string) []string {
	var groups []string
	if containsAny(ageText, "baby", "infant") {
		groups = append(groups, models.AgeBabies)
	}
	if containsAny(ageText, "toddler", "preschool") {
		groups = append(groups, models.AgeToddlers)
	}
	if containsAny(ageText, "child", "children", "kids") {
		groups = append(groups, models.AgeKids)
	}

	if len(groups) == 0 {
		groups = DetermineAgeGroups(fullText)
	}
	if containsAny(fullText, "family", "all ages", "everyone") && !contains(groups, models.AgeAllAges) {
		groups = append(groups, models.AgeAllAges)
	}
	if len(groups) == 0 {
		groups = []string{models.AgeAllAges}
	}
	return groups
}

// tplCategorize uses library-programming vocabulary; storytime and STEM
// programs dominate, so the default bucket is Learning.
func tplCategorize(title, description string) (string, string) {
	text := strings.ToLower(title + " " + description)

	switch {
	case containsAny(text, "story", "read", "book", "literacy"):
		return "Learning", "📚"
	case containsAny(text, "craft", "art", "paint", "draw", "create"):
		return "Arts", "🎨"
	case containsAny(text, "stem", "science", "tech", "coding", "robot"):
		return "Learning", "🔬"
	case containsAny(text, "music", "sing", "dance", "perform"):
		return "Entertainment", "🎵"
	case containsAny(text, "lego", "build", "construct"):
		return "Learning", "🧱"
	case containsAny(text, "play", "game", "toy", "earlyon"):
		return "Play", "🎈"
	default:
		return "Learning", "📚"
	}
}

// recordString extracts a string cell from a CKAN dump record array.
// Cells may be strings, numbers or null depending on the column.
func recordString(rec []any, i int) string {
	if i >= len(rec) || rec[i] == nil {
		return ""
	}
	switch v := rec[i].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// dateOnly truncates a timestamp to local midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// contains reports whether s is an element of list.
func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
