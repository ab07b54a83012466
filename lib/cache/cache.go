// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache provides a small in-memory response cache with
// per-entry expiry. It exists to avoid redundant network calls for
// read-heavy endpoints (metric history, rule lists) within a bounded
// freshness window.
//
// Expiry is purely time-based: entries are never validated against the
// server. Each entry records an absolute deadline that is checked
// lazily on read, so there are no live timer handles to leak and tests
// can drive expiry deterministically with an injected clock.
package cache

import (
	"net/url"
	"sync"
	"time"

	"github.com/cybertiba/sentinel/lib/clock"
)

// Default freshness windows for the read-heavy endpoints. Metric
// history is polled frequently and goes stale fast; rule lists change
// only when the user edits them.
const (
	DefaultMetricsTTL = 60 * time.Second
	DefaultRulesTTL   = 300 * time.Second
)

// Cache maps request signatures to response payloads. Only the cache
// mutates its own entries. Safe for concurrent use.
type Cache struct {
	clk clock.Clock

	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// New creates an empty cache reading time from clk. Pass clock.Real()
// in production.
func New(clk clock.Clock) *Cache {
	return &Cache{
		clk:     clk,
		entries: make(map[string]entry),
	}
}

// Key derives a stable cache key from an endpoint path and its query
// parameters. url.Values.Encode sorts by key, so two parameter sets
// with the same pairs in different insertion order produce the same
// signature.
func Key(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

// Set stores value under key for the given ttl. A Set on an existing
// key replaces the value and re-arms the deadline — the earlier
// deadline no longer applies.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: c.clk.Now().Add(ttl),
	}
}

// Get returns the cached value for key, or false if the key is absent
// or its deadline has passed. Expired entries are dropped on the spot.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clk.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Has reports whether key holds an unexpired entry.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Clear drops all entries. Used at logout and for explicit
// invalidation after mutations.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, including any whose
// deadline has passed but that no read has swept yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
