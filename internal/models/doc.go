// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

// Package models defines the data types shared across the aggregation
// pipeline: raw adapter output, the canonical validated event, venues,
// and per-run statistics.
//
// RawEvent is what a source adapter emits and is never trusted; it
// becomes an Event only after passing through pipeline normalization.
// Events are immutable once enrichment has attached a place ID, and
// live only for the duration of a single pipeline run.
package models
