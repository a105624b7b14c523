// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package places

import (
	"context"
	"crypto/md5" //nolint:gosec // cache key fingerprint, not a security boundary
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/jopolko/kidsevents/internal/logging"
	"github.com/jopolko/kidsevents/internal/metrics"
)

// Counters aggregates cache behavior for run statistics.
type Counters struct {
	Lookups   int
	APICalls  int
	CacheHits int
}

// HitRate returns CacheHits / Lookups, or 0 when no lookups occurred.
func (c Counters) HitRate() float64 {
	if c.Lookups == 0 {
		return 0
	}
	return float64(c.CacheHits) / float64(c.Lookups)
}

// Cache resolves venues to place IDs, consulting the persistent store
// before issuing any external call. Negative results are deliberately
// never stored: a venue the API cannot resolve today is retried on the
// next run.
//
// Cache is not safe for concurrent use; the pipeline calls it from a
// single goroutine, which also keeps the rate limit exact.
type Cache struct {
	store    Store
	search   Searcher
	limiter  Limiter
	counters Counters
}

// NewCache wires a cache to its store, searcher and limiter. A nil
// searcher disables external lookups entirely (no API key); cached
// entries are still served.
func NewCache(store Store, search Searcher, limiter Limiter) *Cache {
	return &Cache{store: store, search: search, limiter: limiter}
}

// CacheKey fingerprints a venue for cache storage. Name and address are
// lowercased and trimmed so casing and whitespace differences between
// sources collapse onto one entry.
func CacheKey(name, address string) string {
	key := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(address))
	//nolint:gosec // content fingerprint only
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Lookup resolves a venue to a cache entry. Returns (nil, nil) when the
// venue cannot be resolved; that outcome is not cached. The returned
// error is reserved for store corruption, which the caller treats as a
// miss as well. Coordinates of (0, 0) mean no location bias.
func (c *Cache) Lookup(ctx context.Context, name, address string, lat, lng float64) (*CacheEntry, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(address) == "" {
		return nil, nil
	}

	c.counters.Lookups++
	metrics.PlaceLookups.Inc()

	key := CacheKey(name, address)
	entry, err := c.store.Get(key)
	if err == nil {
		c.counters.CacheHits++
		metrics.PlaceCacheHits.Inc()
		return entry, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if c.search == nil {
		// No API key configured; serve cache-only.
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.counters.APICalls++
	metrics.PlaceAPICalls.Inc()

	place, err := c.search.TextSearch(ctx, name+", "+address, lat, lng)
	if err != nil {
		metrics.PlaceAPIErrors.Inc()
		logging.Warn().Str("venue", name).Err(err).Msg("Place search failed, venue left unenriched")
		return nil, nil
	}
	if place == nil {
		metrics.PlaceAPIErrors.Inc()
		logging.Debug().Str("venue", name).Msg("Place search returned no candidates")
		return nil, nil
	}

	entry = &CacheEntry{
		PlaceID:       place.ID,
		VenueName:     name,
		Address:       address,
		GoogleName:    place.Name,
		GoogleAddress: place.Address,
		GoogleLat:     place.Lat,
		GoogleLng:     place.Lng,
		LookedUpAt:    time.Now().UTC(),
	}

	// Incremental flush: the entry is durable before the lookup result
	// is even consumed, bounding loss on abrupt termination.
	if err := c.store.Put(key, entry); err != nil {
		logging.Warn().Str("venue", name).Err(err).Msg("Failed to persist venue cache entry")
	}

	return entry, nil
}

// Stats returns the counters accumulated since the cache was created.
func (c *Cache) Stats() Counters {
	return c.counters
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}
