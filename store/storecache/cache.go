// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storecache keeps recently used manifest text in memory in
// front of another collection store. Writes go straight through to
// the underlying store.
package storecache // import "keepfs.io/store/storecache"

import (
	"sync"

	"keepfs.io/cache"
	"keepfs.io/errors"
	"keepfs.io/keep"
	"keepfs.io/log"
)

// storeCache wraps a keep.CollectionStore.
type storeCache struct {
	base keep.CollectionStore

	// mu serializes updates so that a Get racing with a Put can not
	// leave stale text in the cache.
	mu  sync.Mutex
	lru *cache.LRU[keep.CollectionID, string]

	hits, misses int
}

var _ keep.CollectionStore = (*storeCache)(nil)

// New returns a store that caches up to size collections from base.
func New(base keep.CollectionStore, size int) (keep.CollectionStore, error) {
	const op = "store/storecache.New"
	if size <= 0 {
		return nil, errors.E(op, errors.Invalid, errors.Errorf("cache size %d", size))
	}
	return &storeCache{
		base: base,
		lru:  cache.NewLRU[keep.CollectionID, string](size),
	}, nil
}

// Get implements keep.CollectionStore.
func (c *storeCache) Get(id keep.CollectionID) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if text, ok := c.lru.Get(id); ok {
		c.hits++
		return text, nil
	}
	c.misses++
	text, err := c.base.Get(id)
	if err != nil {
		return "", err
	}
	c.lru.Add(id, text)
	return text, nil
}

// Put implements keep.CollectionStore.
func (c *storeCache) Put(id keep.CollectionID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.base.Put(id, text); err != nil {
		c.lru.Remove(id)
		return err
	}
	c.lru.Add(id, text)
	return nil
}

// Delete implements keep.CollectionStore.
func (c *storeCache) Delete(id keep.CollectionID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(id)
	return c.base.Delete(id)
}

// List implements keep.CollectionStore.
func (c *storeCache) List() ([]keep.CollectionID, error) {
	return c.base.List()
}

// Close implements keep.CollectionStore.
func (c *storeCache) Close() error {
	c.mu.Lock()
	log.Debug.Printf("store/storecache: %d hits, %d misses", c.hits, c.misses)
	c.mu.Unlock()
	return c.base.Close()
}
