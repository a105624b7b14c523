// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

// Package source defines the adapter contract for external event feeds
// and the ordered registry the aggregator iterates.
//
// Each adapter converts one external feed (API, data dump, or published
// schedule) into RawEvent records. Adapters are black boxes to the
// pipeline: they absorb their own transport and parsing failures where
// possible, never block past their configured timeout, and never touch
// shared pipeline state. Registration order is significant: it is the
// dedup priority order, so the registry is explicit rather than
// init()-driven.
package source
