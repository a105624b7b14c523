// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package pipeline

import (
	"crypto/md5" //nolint:gosec // dedup fingerprint, not security
	"encoding/hex"
	"strings"
)

// Fingerprint derives the stable identity of an event from the fields a
// human would use to recognize the same listing across sources. The
// digest also serves as Event.ID.
func Fingerprint(title, date, startTime, venueName string) string {
	key := strings.ToLower(title + "_" + date + "_" + startTime + "_" + venueName)
	sum := md5.Sum([]byte(key)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// Deduper collapses events sharing a fingerprint. The first occurrence
// wins, so callers control priority by insertion order.
type Deduper struct {
	seen       map[string]struct{}
	duplicates int
}

// NewDeduper returns an empty Deduper.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Add records the fingerprint and reports whether the event is the
// first with that identity.
func (d *Deduper) Add(id string) bool {
	if _, ok := d.seen[id]; ok {
		d.duplicates++
		return false
	}
	d.seen[id] = struct{}{}
	return true
}

// Duplicates returns how many events were rejected as repeats.
func (d *Deduper) Duplicates() int {
	return d.duplicates
}
