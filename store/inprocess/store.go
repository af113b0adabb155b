// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inprocess implements a simple non-persistent in-memory
// collection store.
package inprocess // import "keepfs.io/store/inprocess"

import (
	"sort"
	"sync"

	"keepfs.io/cache"
	"keepfs.io/errors"
	"keepfs.io/keep"
	"keepfs.io/log"
	"keepfs.io/store"
)

const maxInt = int(^uint(0) >> 1)

var errTooLarge = errors.E(errors.IO, errors.Str("collection too large"))

// Store holds manifest text in memory. Once the text held exceeds its
// capacity in bytes, the least recently used collections are dropped.
type Store struct {
	// capacity is the maximum number of bytes this store can hold.
	capacity int64

	// mu protects the fields below.
	mu sync.Mutex
	// texts maps a collection id to its manifest text.
	texts *cache.LRU[keep.CollectionID, *text]
	// usage is how much this store is currently holding.
	usage int64
}

var _ keep.CollectionStore = (*Store)(nil)

type text struct {
	s    *Store
	data string
}

// New returns an empty Store. The only option is capacity=N, the
// number of bytes to hold; it defaults to 100MB.
func New(options ...string) (keep.CollectionStore, error) {
	const op = "store/inprocess.New"
	opts, err := store.ParseOptions(op, options, "capacity")
	if err != nil {
		return nil, err
	}
	capacity, err := opts.Int(op, "capacity", 100*1024*1024)
	if err != nil {
		return nil, err
	}
	return &Store{
		capacity: capacity,
		texts:    cache.NewLRU[keep.CollectionID, *text](maxInt),
	}, nil
}

// Get implements keep.CollectionStore.
func (s *Store) Get(id keep.CollectionID) (string, error) {
	const op = "store/inprocess.Get"
	if err := store.CheckID(op, id); err != nil {
		return "", err
	}
	s.mu.Lock()
	t, ok := s.texts.Get(id)
	s.mu.Unlock()
	if !ok {
		return "", errors.E(op, errors.NotExist, errors.Errorf("no such collection: %s", id))
	}
	return t.data, nil
}

// Put implements keep.CollectionStore.
func (s *Store) Put(id keep.CollectionID, data string) error {
	const op = "store/inprocess.Put"
	if err := store.CheckID(op, id); err != nil {
		return err
	}
	size := int64(len(data))
	if size > s.capacity {
		return errors.E(op, errTooLarge)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.texts.Get(id); ok {
		s.usage -= int64(len(old.data))
	}
	s.usage += size
	// Add must be in the critical section because OnEviction can be called.
	s.texts.Add(id, &text{s: s, data: data})
	s.maybeFreeSpace()
	return nil
}

// Delete implements keep.CollectionStore.
func (s *Store) Delete(id keep.CollectionID) error {
	const op = "store/inprocess.Delete"
	if err := store.CheckID(op, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.texts.Remove(id)
	if !ok {
		return errors.E(op, errors.NotExist, errors.Errorf("no such collection: %s", id))
	}
	s.usage -= int64(len(t.data))
	return nil
}

// List implements keep.CollectionStore.
func (s *Store) List() ([]keep.CollectionID, error) {
	s.mu.Lock()
	ids := s.texts.Keys()
	s.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Close implements keep.CollectionStore. It drops everything held.
func (s *Store) Close() error {
	s.mu.Lock()
	s.texts = cache.NewLRU[keep.CollectionID, *text](maxInt)
	s.usage = 0
	s.mu.Unlock()
	return nil
}

// maybeFreeSpace ensures we don't hold more than the capacity.
// s.mu must be held.
func (s *Store) maybeFreeSpace() {
	for s.usage > s.capacity {
		id, t, ok := s.texts.RemoveOldest()
		if !ok {
			log.Error.Printf("store/inprocess: usage %d with nothing to evict", s.usage)
			s.usage = 0
			return
		}
		// RemoveOldest does not run OnEviction, so we run it ourselves.
		t.OnEviction(id)
	}
}

// OnEviction implements cache.EvictionNotifier.
// It is always called when t.s.mu is held.
func (t *text) OnEviction(id keep.CollectionID) {
	t.s.usage -= int64(len(t.data))
	log.Debug.Printf("store/inprocess: evicted %s", id)
}
