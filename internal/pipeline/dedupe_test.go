// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package pipeline

import "testing"

func TestFingerprint(t *testing.T) {
	base := Fingerprint("Storytime", "2026-03-10", "10:30", "Main Library")

	t.Run("deterministic", func(t *testing.T) {
		if Fingerprint("Storytime", "2026-03-10", "10:30", "Main Library") != base {
			t.Error("same inputs must produce the same fingerprint")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if Fingerprint("STORYTIME", "2026-03-10", "10:30", "MAIN LIBRARY") != base {
			t.Error("casing must not change identity")
		}
	})

	t.Run("distinct fields distinct identity", func(t *testing.T) {
		variants := []string{
			Fingerprint("Storytime Jr", "2026-03-10", "10:30", "Main Library"),
			Fingerprint("Storytime", "2026-03-11", "10:30", "Main Library"),
			Fingerprint("Storytime", "2026-03-10", "11:30", "Main Library"),
			Fingerprint("Storytime", "2026-03-10", "10:30", "Annex Library"),
		}
		for i, v := range variants {
			if v == base {
				t.Errorf("variant %d collided with base", i)
			}
		}
	})

	t.Run("hex digest", func(t *testing.T) {
		if len(base) != 32 {
			t.Errorf("fingerprint length = %d, want 32", len(base))
		}
	})
}

func TestDeduperFirstWins(t *testing.T) {
	d := NewDeduper()
	if !d.Add("a") {
		t.Error("first occurrence must be kept")
	}
	if d.Add("a") {
		t.Error("repeat must be rejected")
	}
	if !d.Add("b") {
		t.Error("distinct id must be kept")
	}
	if d.Duplicates() != 1 {
		t.Errorf("duplicates = %d, want 1", d.Duplicates())
	}
}
