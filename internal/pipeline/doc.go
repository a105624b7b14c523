// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

// Package pipeline turns raw scraped events into the published catalogue:
// validation and normalization, fingerprint deduplication, venue
// enrichment, sorting, statistics and artifact output.
package pipeline
