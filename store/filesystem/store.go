// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filesystem implements a collection store that keeps each
// collection's manifest text in its own file under a root directory.
package filesystem // import "keepfs.io/store/filesystem"

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"keepfs.io/errors"
	"keepfs.io/keep"
	"keepfs.io/log"
	"keepfs.io/store"
)

// suffix is appended to a collection id to form its file name.
const suffix = ".manifest"

type server struct {
	root string
}

var _ keep.CollectionStore = (*server)(nil)

// New returns a store rooted at the directory given by the root=<dir>
// option, creating the directory if needed.
func New(options ...string) (keep.CollectionStore, error) {
	const op = "store/filesystem.New"
	opts, err := store.ParseOptions(op, options, "root")
	if err != nil {
		return nil, err
	}
	root := opts["root"]
	if root == "" {
		return nil, errors.E(op, errors.Invalid, errors.Str("root option required"))
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, errors.E(op, errors.IO, err)
	}
	return &server{root: root}, nil
}

func (s *server) file(id keep.CollectionID) string {
	return filepath.Join(s.root, string(id)+suffix)
}

// Get implements keep.CollectionStore.
func (s *server) Get(id keep.CollectionID) (string, error) {
	const op = "store/filesystem.Get"
	log.Debug.Println(op, id)
	if err := store.CheckID(op, id); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.file(id))
	if os.IsNotExist(err) {
		return "", errors.E(op, errors.NotExist, errors.Errorf("no such collection: %s", id))
	}
	if err != nil {
		return "", errors.E(op, errors.IO, err)
	}
	return string(data), nil
}

// Put implements keep.CollectionStore. The text is written to a
// temporary file that then replaces the collection's file.
func (s *server) Put(id keep.CollectionID, text string) error {
	const op = "store/filesystem.Put"
	if err := store.CheckID(op, id); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.root, ".put-")
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	tmp := f.Name()
	_, err = f.WriteString(text)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, s.file(id))
	}
	if err != nil {
		os.Remove(tmp)
		return errors.E(op, errors.IO, err)
	}
	return nil
}

// Delete implements keep.CollectionStore.
func (s *server) Delete(id keep.CollectionID) error {
	const op = "store/filesystem.Delete"
	if err := store.CheckID(op, id); err != nil {
		return err
	}
	err := os.Remove(s.file(id))
	if os.IsNotExist(err) {
		return errors.E(op, errors.NotExist, errors.Errorf("no such collection: %s", id))
	}
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	return nil
}

// List implements keep.CollectionStore.
func (s *server) List() ([]keep.CollectionID, error) {
	const op = "store/filesystem.List"
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, errors.E(op, errors.IO, err)
	}
	var ids []keep.CollectionID
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !strings.HasSuffix(name, suffix) {
			continue
		}
		ids = append(ids, keep.CollectionID(strings.TrimSuffix(name, suffix)))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Close implements keep.CollectionStore. Nothing is held open.
func (s *server) Close() error {
	return nil
}
