// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package places

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// ErrNotFound is returned by Store.Get when no entry exists for a key.
var ErrNotFound = errors.New("places: cache entry not found")

// CacheEntry is the persisted result of one successful place lookup,
// keyed by the venue fingerprint from CacheKey.
type CacheEntry struct {
	PlaceID       string    `json:"place_id"`
	VenueName     string    `json:"venue_name"`
	Address       string    `json:"address"`
	GoogleName    string    `json:"google_name,omitempty"`
	GoogleAddress string    `json:"google_address,omitempty"`
	GoogleLat     float64   `json:"google_lat,omitempty"`
	GoogleLng     float64   `json:"google_lng,omitempty"`
	LookedUpAt    time.Time `json:"looked_up_at"`
}

// Store is the persistence boundary for the venue cache. Entries are
// written immediately on Put (incremental flush) so an aborted run
// loses at most the lookup in flight. Entries are never deleted.
type Store interface {
	Get(key string) (*CacheEntry, error)
	Put(key string, entry *CacheEntry) error
	Close() error
}

// venueKeyPrefix namespaces venue entries in the badger keyspace.
const venueKeyPrefix = "venue:"

// BadgerStore is the production Store backed by a badger database.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) the venue cache at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open venue cache at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenInMemoryBadgerStore opens an ephemeral store, used by tests.
func OpenInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory venue cache: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get retrieves an entry by venue fingerprint key.
func (s *BadgerStore) Get(key string) (*CacheEntry, error) {
	var entry CacheEntry

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(venueKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get venue entry: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put stores an entry in its own transaction, committing immediately.
func (s *BadgerStore) Put(key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal venue entry: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(venueKeyPrefix+key), data)
	})
}

// Close syncs and closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// MemStore is a map-backed Store for tests and dry runs.
type MemStore struct {
	mu      sync.Mutex
	entries map[string]*CacheEntry
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]*CacheEntry)}
}

// Get retrieves an entry by key.
func (s *MemStore) Get(key string) (*CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *entry
	return &cp, nil
}

// Put stores a copy of the entry.
func (s *MemStore) Put(key string, entry *CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.entries[key] = &cp
	return nil
}

// Close is a no-op.
func (s *MemStore) Close() error { return nil }

// Len reports the number of stored entries.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
