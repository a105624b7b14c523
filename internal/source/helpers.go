// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jopolko/kidsevents/internal/models"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText strips HTML tags and collapses whitespace runs. Feed
// descriptions frequently embed markup fragments.
func CleanText(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Categorize maps event text onto the catalogue's category set and its
// display icon. Checks run most-specific first; the fallback is a
// generic entertainment bucket.
func Categorize(title, description string) (category, icon string) {
	text := strings.ToLower(title + " " + description)

	switch {
	case containsAny(text, "art", "craft", "paint", "draw", "exhibit"):
		return "Arts", "🎨"
	case containsAny(text, "music", "concert", "dance", "perform"):
		return "Entertainment", "🎵"
	case containsAny(text, "story", "book", "read", "learn", "stem", "science"):
		return "Learning", "📚"
	case containsAny(text, "sport", "swim", "skate", "active"):
		return "Sports", "⚽"
	case containsAny(text, "festival", "fair", "carnival"):
		return "Entertainment", "🎪"
	case containsAny(text, "nature", "park", "outdoor", "garden"):
		return "Outdoors", "🌳"
	default:
		return "Entertainment", "🎉"
	}
}

// DetermineAgeGroups infers the supported age group labels from free
// text. Feeds describe audiences loosely ("toddler time", "ages 0-2"),
// so the match is keyword-based. An empty result means the text gave no
// signal; callers decide whether that defaults to All Ages or drops the
// event.
func DetermineAgeGroups(texts ...string) []string {
	text := strings.ToLower(strings.Join(texts, " "))

	var groups []string
	if containsAny(text, "baby", "babies", "infant", "0-2", "ages 0", "ages 1", "ages 2") {
		groups = append(groups, models.AgeBabies)
	}
	if containsAny(text, "toddler", "preschool", "3-5", "2-5", "ages 3", "ages 4", "ages 5") {
		groups = append(groups, models.AgeToddlers)
	}
	if containsAny(text, "kid", "children", "child", "6-12", "elementary", "school age") {
		groups = append(groups, models.AgeKids)
	}
	if containsAny(text, "family", "families", "all ages", "everyone") {
		groups = append(groups, models.AgeAllAges)
	}
	return groups
}

// ParseClockTime normalizes assorted feed time formats ("2:00 PM",
// "14:00", "all day") to HH:MM. Unparseable input falls back to the
// morning default most drop-in programs use.
func ParseClockTime(s string) string {
	const fallback = "10:00"

	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") || strings.EqualFold(s, "all day") {
		return fallback
	}

	upper := strings.ToUpper(s)
	if strings.Contains(upper, "AM") || strings.Contains(upper, "PM") {
		for _, layout := range []string{"3:04 PM", "3:04PM", "3 PM", "3PM"} {
			if t, err := time.Parse(layout, upper); err == nil {
				return t.Format("15:04")
			}
		}
		return fallback
	}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 2 {
		hour, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		min, err2 := strconv.Atoi(trimToDigits(parts[1]))
		if err1 == nil && err2 == nil && hour >= 0 && hour < 24 && min >= 0 && min < 60 {
			return fmt.Sprintf("%02d:%02d", hour, min)
		}
	}

	return fallback
}

// EndTimeAfter returns a clock time two hours after start, the default
// program length when a feed omits the end time.
func EndTimeAfter(start string) string {
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

// Truncate caps s at max runes, appending an ellipsis when it cuts.
func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// containsAny reports whether text contains any of the substrings.
func containsAny(text string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

// trimToDigits keeps the leading digit run of s ("30 PM" -> "30").
func trimToDigits(s string) string {
	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
	}
	return s
}
