// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"keepfs.io/errors"
	"keepfs.io/keep"
)

// Load fetches the collection stored under id and builds it.
func Load(store keep.CollectionStore, id keep.CollectionID) (*Collection, error) {
	const op = "collection.Load"
	text, err := store.Get(id)
	if err != nil {
		return nil, errors.E(op, err)
	}
	c, err := New(text)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return c, nil
}

// Save stores the normalized manifest text of c under id if c has been
// modified, and then marks c unmodified. It reports whether it wrote
// anything.
func Save(store keep.CollectionStore, id keep.CollectionID, c *Collection) (bool, error) {
	const op = "collection.Save"
	if !c.Modified() {
		return false, nil
	}
	if err := store.Put(id, c.ManifestText()); err != nil {
		return false, errors.E(op, err)
	}
	c.Unmodified()
	return true, nil
}
