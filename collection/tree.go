// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"sort"

	"keepfs.io/errors"
	"keepfs.io/keep"
	"keepfs.io/path"
)

// An Item is a node in a collection tree: a *File or a *Stream.
type Item interface {
	// Path returns the item's path, such as "./dir/file".
	Path() keep.PathName
	// Name returns the last element of the item's path.
	Name() string
	// IsFile reports whether the item is a *File.
	IsFile() bool
	// IsLeaf reports whether the item has no children.
	IsLeaf() bool

	// copyNamed returns a copy of the item at the given path.
	copyNamed(p keep.PathName) Item
}

// A File is a leaf item holding an ordered list of segments.
type File struct {
	path     keep.PathName
	segments []Segment
}

// A Stream is a directory of items. The root of a collection is a
// Stream whose only child is the stream named ".", and which refuses
// any other child.
type Stream struct {
	path  keep.PathName
	items map[string]Item
	keys  []string // Names of items in the order they were added.
	root  bool
}

func newFile(p keep.PathName) *File {
	return &File{path: p}
}

func newStream(p keep.PathName) *Stream {
	return &Stream{path: p, items: make(map[string]Item)}
}

func newRoot() *Stream {
	s := newStream("")
	s.root = true
	s.setup()
	return s
}

// setup installs an empty "." stream in the root.
func (s *Stream) setup() {
	s.items = map[string]Item{".": newStream(path.Child(s.path, "."))}
	s.keys = []string{"."}
}

func (f *File) Path() keep.PathName { return f.path }
func (f *File) Name() string        { return path.Base(f.path) }
func (f *File) IsFile() bool        { return true }
func (f *File) IsLeaf() bool        { return true }

// Segments returns the file's segments in order.
func (f *File) Segments() []Segment {
	return f.segments
}

// Size returns the number of bytes in the file.
func (f *File) Size() int64 {
	var n int64
	for _, seg := range f.segments {
		n += seg.Length
	}
	return n
}

func (f *File) addSegment(seg Segment) {
	f.segments = append(f.segments, seg)
}

// copyNamed shares the segments, which are never modified in place.
func (f *File) copyNamed(p keep.PathName) Item {
	c := newFile(p)
	c.segments = append([]Segment(nil), f.segments...)
	return c
}

func (s *Stream) Path() keep.PathName { return s.path }
func (s *Stream) Name() string        { return path.Base(s.path) }
func (s *Stream) IsFile() bool        { return false }
func (s *Stream) IsLeaf() bool        { return len(s.items) == 0 }

// copyNamed copies the stream and everything below it.
func (s *Stream) copyNamed(p keep.PathName) Item {
	c := newStream(p)
	for _, key := range s.keys {
		c.items[key] = s.items[key].copyNamed(path.Child(p, key))
	}
	c.keys = append([]string(nil), s.keys...)
	return c
}

// Names returns the names of the stream's children in sorted order.
func (s *Stream) Names() []string {
	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the child called key, or nil if there is none.
func (s *Stream) Lookup(key string) Item {
	return s.items[key]
}

// get returns the child called key. A missing child is an error of
// kind NotExist.
func (s *Stream) get(key string) (Item, error) {
	const op = "collection.Lookup"
	item, ok := s.items[key]
	if !ok {
		return nil, errors.E(op, s.path, errors.NotExist, errors.Errorf("%q not found in %q", key, s.path))
	}
	return item, nil
}

// find returns the stream that holds the item at p and the item's
// name within it. Every element of p but the last must name an
// existing stream.
func (s *Stream) find(p keep.PathName) (*Stream, string, error) {
	const op = "collection.find"
	elems := path.Split(p)
	if len(elems) == 0 {
		return s, "", nil
	}
	cur := s
	for _, elem := range elems[:len(elems)-1] {
		item, err := cur.get(elem)
		if err != nil {
			return nil, "", err
		}
		next, ok := item.(*Stream)
		if !ok {
			return nil, "", errors.E(op, item.Path(), errors.NotDir)
		}
		cur = next
	}
	return cur, elems[len(elems)-1], nil
}

// streamAt returns the stream at p, creating it and any missing
// streams along the way.
func (s *Stream) streamAt(p keep.PathName) (*Stream, error) {
	const op = "collection.streamAt"
	cur := s
	for _, elem := range path.Split(p) {
		if elem == "" {
			return nil, errors.E(op, p, errors.Syntax, errors.Str("empty path element"))
		}
		item, err := cur.getOrNew(elem, false)
		if err != nil {
			return nil, err
		}
		cur = item.(*Stream)
	}
	return cur, nil
}

// fileAt returns the file at p, creating it and any missing streams
// along the way.
func (s *Stream) fileAt(p keep.PathName) (*File, error) {
	const op = "collection.fileAt"
	dir, name := path.SplitLast(p)
	if name == "" {
		return nil, errors.E(op, p, errors.Syntax, errors.Str("empty file name"))
	}
	parent := s
	if dir != "" {
		var err error
		if parent, err = s.streamAt(dir); err != nil {
			return nil, err
		}
	}
	item, err := parent.getOrNew(name, true)
	if err != nil {
		return nil, err
	}
	return item.(*File), nil
}

// getOrNew returns the child called key, creating a file or stream
// there if it is missing. An existing child of the other kind is an
// error of kind Invalid.
func (s *Stream) getOrNew(key string, file bool) (Item, error) {
	const op = "collection.getOrNew"
	item, ok := s.items[key]
	if !ok {
		p := path.Child(s.path, key)
		if file {
			item = newFile(p)
		} else {
			item = newStream(p)
		}
		if err := s.set(key, item); err != nil {
			return nil, err
		}
		return item, nil
	}
	if item.IsFile() != file {
		return nil, errors.E(op, s.path, errors.Invalid, errors.Errorf("in stream %q, %q is a %s, not a %s",
			s.path, key, kindName(item.IsFile()), kindName(file)))
	}
	return item, nil
}

func kindName(file bool) string {
	if file {
		return "file"
	}
	return "stream"
}

// set installs item as the child called key. The root accepts only
// a replacement for its "." stream.
func (s *Stream) set(key string, item Item) error {
	if s.root && (key != "." || item.IsFile()) {
		return s.rootWriteError(key)
	}
	if _, ok := s.items[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.items[key] = item
	return nil
}

func (s *Stream) rootWriteError(key string) error {
	const op = "collection.Stream"
	return errors.E(op, errors.Invalid, errors.Errorf("can't write to %q at collection root", key))
}

// delete removes the child called key. Removing a stream that is not
// empty requires recursive. Deleting the root's "." stream leaves a
// fresh empty one in its place.
func (s *Stream) delete(key string, recursive bool) error {
	const op = "collection.delete"
	item, err := s.get(key)
	if err != nil {
		return err
	}
	if !item.IsLeaf() && !recursive {
		return errors.E(op, item.Path(), errors.IsDir)
	}
	if s.root {
		s.setup()
		return nil
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}

// A copyMethod selects how an item is written to its destination.
type copyMethod int

const (
	// addCopy replaces whatever is at the destination, which must not
	// be a stream with children.
	addCopy copyMethod = iota
	// merge unites a source stream with an existing stream of the
	// same name, recursively.
	merge
)

func (m copyMethod) String() string {
	if m == merge {
		return "merge"
	}
	return "add_copy"
}

// A conflict describes what a copy would collide with at its
// destination.
type conflict int

const (
	noConflict   conflict = iota
	kindConflict          // The destination is a file and the source a stream, or the reverse.
	notEmpty              // The destination is a stream with children.
	rootWrite             // The destination is a new child of the root.
	notStream             // The destination container is itself a file.
)

// check reports whether src may be written to key with method m.
func (s *Stream) check(m copyMethod, src Item, key string) conflict {
	if s.root {
		if _, ok := s.items[key]; !ok {
			return rootWrite
		}
	}
	existing, ok := s.items[key]
	if !ok {
		return noConflict
	}
	if existing.IsFile() != src.IsFile() {
		return kindConflict
	}
	if m == addCopy && !existing.IsLeaf() {
		return notEmpty
	}
	return noConflict
}

// checkItem is like check but accepts any item as the destination
// container. A file can never contain anything.
func checkItem(dst Item, m copyMethod, src Item, key string) conflict {
	s, ok := dst.(*Stream)
	if !ok {
		return notStream
	}
	return s.check(m, src, key)
}

// conflictError converts c into an error for writing to key in s.
func (s *Stream) conflictError(c conflict, key string) error {
	const op = "collection.copy"
	switch c {
	case kindConflict:
		return errors.E(op, path.Child(s.path, key), errors.NotDir)
	case notEmpty:
		return errors.E(op, path.Child(s.path, key), errors.NotEmpty)
	case rootWrite:
		return s.rootWriteError(key)
	case notStream:
		return errors.E(op, s.path, errors.NotDir)
	}
	return nil
}

// write copies src to key using method m.
func (s *Stream) write(m copyMethod, src Item, key string) error {
	if m == merge {
		return s.merge(src, key)
	}
	return s.addCopy(src, key)
}

// addCopy installs a copy of src as the child called key.
func (s *Stream) addCopy(src Item, key string) error {
	return s.set(key, src.copyNamed(path.Child(s.path, key)))
}

// merge copies src to key. Where key is already a stream with
// children, the children of src are merged into it one by one,
// streams first. A file colliding with a stream, or the reverse, does
// not stop the merge; the last such collision is returned once every
// child has been tried.
func (s *Stream) merge(src Item, key string) error {
	switch c := s.check(addCopy, src, key); c {
	case noConflict:
		return s.addCopy(src, key)
	case notEmpty:
		// Both are streams with the same name.
	default:
		return s.conflictError(c, key)
	}
	dest := s.items[key].(*Stream)
	var last error
	for _, child := range src.(*Stream).mergeOrder() {
		err := dest.merge(child.item, child.key)
		switch {
		case err == nil:
		case errors.Is(errors.NotDir, err):
			last = err
		default:
			return err
		}
	}
	return last
}

type keyedItem struct {
	key  string
	item Item
}

// mergeOrder returns a snapshot of the children, streams before files
// and each group sorted by name.
func (s *Stream) mergeOrder() []keyedItem {
	children := make([]keyedItem, 0, len(s.items))
	for key, item := range s.items {
		children = append(children, keyedItem{key, item})
	}
	sort.Slice(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if a.item.IsFile() != b.item.IsFile() {
			return !a.item.IsFile()
		}
		return a.key < b.key
	})
	return children
}
