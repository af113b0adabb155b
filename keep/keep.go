// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keep contains global interface and other definitions for the
// components of the collection manifest system.
package keep // import "keepfs.io/keep"

// A PathName is a slash-separated path of an item inside a collection.
// Canonical path names always begin with "./"; the collection's
// top-level stream is named ".".
type PathName string

// A CollectionID identifies a collection within a CollectionStore.
type CollectionID string

// EmptyDigest is the MD5 digest of zero bytes of data.
const EmptyDigest = "d41d8cd98f00b204e9800998ecf8427e"

// EmptyBlockLocator is the locator of the empty block.
const EmptyBlockLocator = EmptyDigest + "+0"

// The CollectionStore interface provides access to stored manifest text.
// It is the boundary between the in-memory collection model and whatever
// holds collections persistently.
type CollectionStore interface {
	// Get returns the manifest text stored under id.
	// If no collection has that id, the error has kind NotExist.
	Get(id CollectionID) (string, error)

	// Put stores the manifest text under id, replacing any
	// existing collection with the same id.
	Put(id CollectionID, text string) error

	// Delete removes the collection with the given id.
	// If no collection has that id, the error has kind NotExist.
	Delete(id CollectionID) error

	// List returns the ids of all stored collections in sorted order.
	List() ([]CollectionID, error)

	// Close releases any resources held by the store.
	Close() error
}

// Config holds the settings used to build the runtime environment of a
// keep command.
type Config interface {
	// Store returns the name of the CollectionStore implementation,
	// as registered with package bind.
	Store() string

	// StoreOptions returns the key=value options passed to the store
	// constructor.
	StoreOptions() []string

	// CacheSize returns the number of collections to cache in memory
	// in front of the store. Zero disables the cache.
	CacheSize() int

	// LogLevel returns the level at which to log.
	LogLevel() string
}
