// SPDX-License-Identifier: MIT

package report

import (
	lru "github.com/hashicorp/golang-lru"
)

// Cache memoizes reports by chain content and configuration, so polling
// the same chain does not recompute every diagnostic. Cached reports are
// shared between callers and must be treated as read-only.
type Cache struct {
	lru *lru.Cache
}

type cacheKey struct {
	fingerprint uint64
	cfg         Config
}

// NewCache returns a Cache holding at most size reports.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &Cache{lru: c}, nil
}

func keyOf(fingerprint uint64, cfg Config) cacheKey {
	cfg.Workers = 0 // scheduling does not change results

	return cacheKey{fingerprint: fingerprint, cfg: cfg}
}

func (c *Cache) get(fingerprint uint64, cfg Config) (*Report, bool) {
	v, ok := c.lru.Get(keyOf(fingerprint, cfg))
	if !ok {
		return nil, false
	}

	return v.(*Report), true
}

func (c *Cache) add(rep *Report, cfg Config) {
	c.lru.Add(keyOf(rep.Fingerprint, cfg), rep)
}

// Len returns the number of cached reports.
func (c *Cache) Len() int { return c.lru.Len() }
