// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache implements a least-recently-used cache for the
// collection stores.
package cache // import "keepfs.io/cache"

import (
	"container/list"
	"sync"
)

// LRU is a least-recently used cache, safe for concurrent access.
type LRU[K comparable, V any] struct {
	maxEntries int

	mu    sync.Mutex
	ll    *list.List
	cache map[K]*list.Element
}

// EvictionNotifier is implemented by values that want to know when
// Add pushes them out of the cache. It is not called by Remove or
// RemoveOldest.
type EvictionNotifier[K comparable] interface {
	OnEviction(key K)
}

// *entry is the type stored in each *list.Element.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU returns a new cache holding at most maxEntries items.
func NewLRU[K comparable, V any](maxEntries int) *LRU[K, V] {
	return &LRU[K, V]{
		maxEntries: maxEntries,
		ll:         list.New(),
		cache:      make(map[K]*list.Element),
	}
}

// Add adds the provided key and value to the cache, evicting
// an old item if necessary.
func (c *LRU[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, ok := c.cache[key]; ok {
		c.ll.MoveToFront(ele)
		ele.Value.(*entry[K, V]).value = value
		return
	}

	ele := c.ll.PushFront(&entry[K, V]{key, value})
	c.cache[key] = ele

	if c.ll.Len() > c.maxEntries {
		k, v, ok := c.removeOldest()
		if !ok {
			return
		}
		if n, ok := any(v).(EvictionNotifier[K]); ok {
			n.OnEviction(k)
		}
	}
}

// Get fetches the key's value from the cache and marks it most
// recently used. The ok result reports whether the key was present.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, hit := c.cache[key]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(*entry[K, V]).value, true
	}
	return
}

// Remove removes key from the cache and returns its value.
func (c *LRU[K, V]) Remove(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ele, hit := c.cache[key]
	if !hit {
		return
	}
	c.ll.Remove(ele)
	delete(c.cache, key)
	return ele.Value.(*entry[K, V]).value, true
}

// RemoveOldest removes the least recently used item and returns it.
// The ok result is false if the cache is empty.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeOldest()
}

// note: must hold c.mu
func (c *LRU[K, V]) removeOldest() (key K, value V, ok bool) {
	ele := c.ll.Back()
	if ele == nil {
		return
	}
	c.ll.Remove(ele)
	ent := ele.Value.(*entry[K, V])
	delete(c.cache, ent.key)
	return ent.key, ent.value, true
}

// PeekOldest returns the least recently used item without changing
// its position.
func (c *LRU[K, V]) PeekOldest() (key K, value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return peek[K, V](c.ll.Back())
}

// PeekNewest returns the most recently used item without changing
// its position.
func (c *LRU[K, V]) PeekNewest() (key K, value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return peek[K, V](c.ll.Front())
}

func peek[K comparable, V any](ele *list.Element) (key K, value V, ok bool) {
	if ele == nil {
		return
	}
	ent := ele.Value.(*entry[K, V])
	return ent.key, ent.value, true
}

// Keys returns the keys in the cache, least recently used first.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]K, 0, c.ll.Len())
	for ele := c.ll.Back(); ele != nil; ele = ele.Prev() {
		keys = append(keys, ele.Value.(*entry[K, V]).key)
	}
	return keys
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
