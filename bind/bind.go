// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bind maps the store names used in configuration to the
// constructors of CollectionStore implementations.
package bind // import "keepfs.io/bind"

import (
	"sort"
	"sync"

	"keepfs.io/errors"
	"keepfs.io/keep"
	"keepfs.io/log"
	"keepfs.io/store/storecache"
)

// A StoreFunc builds a CollectionStore from key=value options.
type StoreFunc func(options ...string) (keep.CollectionStore, error)

var (
	mu       sync.Mutex // Protects storeMap.
	storeMap = make(map[string]StoreFunc)
)

// RegisterStore registers a CollectionStore constructor under name.
// It is an error to register the same name twice.
func RegisterStore(name string, fn StoreFunc) error {
	const op = "bind.RegisterStore"
	mu.Lock()
	defer mu.Unlock()
	if _, ok := storeMap[name]; ok {
		return errors.E(op, errors.Exist, errors.Errorf("cannot override store %q", name))
	}
	storeMap[name] = fn
	return nil
}

// ReregisterStore is the same as RegisterStore but overwrites any
// existing registration.
func ReregisterStore(name string, fn StoreFunc) error {
	mu.Lock()
	defer mu.Unlock()
	storeMap[name] = fn
	return nil
}

// Stores returns the registered store names in sorted order.
func Stores() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(storeMap))
	for name := range storeMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store returns the store named by cfg, built with the options cfg
// gives. If cfg asks for a cache, the store is wrapped in one.
func Store(cfg keep.Config) (keep.CollectionStore, error) {
	const op = "bind.Store"
	mu.Lock()
	fn, ok := storeMap[cfg.Store()]
	mu.Unlock()
	if !ok {
		return nil, errors.E(op, errors.Invalid, errors.Errorf("store %q not registered", cfg.Store()))
	}
	s, err := fn(cfg.StoreOptions()...)
	if err != nil {
		return nil, errors.E(op, err)
	}
	log.Debug.Printf("bind: store %q with options %q", cfg.Store(), cfg.StoreOptions())
	if n := cfg.CacheSize(); n > 0 {
		c, err := storecache.New(s, n)
		if err != nil {
			s.Close()
			return nil, errors.E(op, err)
		}
		return c, nil
	}
	return s, nil
}
