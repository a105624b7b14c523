// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package source

import (
	"context"

	"github.com/jopolko/kidsevents/internal/models"
)

// Adapter is a single external event feed.
//
// Scrape returns every raw event the feed currently offers. An adapter
// must bound its own network timeouts and should absorb per-record
// parsing failures internally (skip the record, keep the rest). A
// returned error means the whole source produced nothing this run; the
// aggregator records it as a source failure and continues; adapter
// errors never abort a pipeline run.
type Adapter interface {
	Name() string
	Scrape(ctx context.Context) ([]models.RawEvent, error)
}

// Registry holds adapters in explicit registration order. The order is
// load-bearing: when two sources emit the same event, the earlier
// registered source wins dedup.
type Registry struct {
	adapters []Adapter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an adapter. Nil adapters are ignored so callers can
// register conditionally without guards.
func (r *Registry) Register(a Adapter) {
	if a == nil {
		return
	}
	r.adapters = append(r.adapters, a)
}

// Adapters returns the registered adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	return r.adapters
}

// Len reports the number of registered adapters.
func (r *Registry) Len() int {
	return len(r.adapters)
}
