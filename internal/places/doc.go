// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

// Package places resolves venues to stable Google Place IDs.
//
// The Cache front-ends every lookup: a venue already resolved on a
// previous run is served from the persistent badger store with no
// network traffic, and a miss triggers exactly one rate-limited text
// search against the Places API (New). Failed or empty lookups are
// never cached, so unresolved venues are naturally retried on the next
// run.
//
// Lookups are issued strictly sequentially by the single pipeline
// thread; the rate limiter therefore enforces an exact upper bound on
// external request rate without any concurrent coordination.
package places
