// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collection holds a Keep collection in memory as a tree of
// streams and files, and regenerates normalized manifest text from it.
//
// Paths given to the methods of Collection are relative to the
// collection root. A missing "./" prefix is added, so "dir/file" and
// "./dir/file" name the same item.
package collection // import "keepfs.io/collection"

import (
	"strings"

	"keepfs.io/errors"
	"keepfs.io/keep"
	"keepfs.io/manifest"
	"keepfs.io/path"
)

// textState records whether Collection.text matches the tree.
type textState int

const (
	stale  textState = iota // The tree has changed since text was set.
	cached                  // text is current.
)

// A Collection is a collection tree together with its manifest text.
// A Collection is not safe for concurrent use; callers that share one
// must serialize all calls.
type Collection struct {
	root     *Stream
	text     string
	state    textState
	modified bool
}

// Empty returns a collection with no files.
func Empty() *Collection {
	return &Collection{root: newRoot(), state: cached}
}

// New builds a collection from manifest text. The text is kept as
// given; it is only normalized by Normalize or by a change to the
// collection. A line lacking locators or file tokens is an error of
// kind Syntax, and a file token reaching past the stream's blocks is
// an error of kind Range.
func New(text string) (*Collection, error) {
	const op = "collection.New"
	c := Empty()
	for _, s := range manifest.New(text).Streams() {
		if s.Name == "" || len(s.Locators) == 0 || len(s.Files) == 0 {
			return nil, errors.E(op, errors.Syntax, errors.Str("manifest text includes malformed line"))
		}
		list, err := NewLocatorList(s.Locators)
		if err != nil {
			return nil, errors.E(op, err)
		}
		for _, tok := range s.Files {
			start, length, name, err := manifest.SplitFileToken(tok)
			if err != nil {
				return nil, errors.E(op, err)
			}
			p, err := path.Normalize(s.Name, name)
			if err != nil {
				return nil, errors.E(op, err)
			}
			f, err := c.root.fileAt(p)
			if err != nil {
				return nil, errors.E(op, err)
			}
			seg, err := list.Segment(start, length)
			if err != nil {
				return nil, errors.E(op, p, err)
			}
			f.addSegment(seg)
		}
	}
	c.text = text
	return c, nil
}

// ManifestText returns the collection's manifest text. After any
// change to the collection the text is normalized.
func (c *Collection) ManifestText() string {
	if c.state == stale {
		c.text = c.root.manifestText(true)
		c.state = cached
	}
	return c.text
}

// InsertionOrderText returns manifest text for the collection with
// streams and files in the order they were added rather than sorted.
// Block ranges are still coalesced.
func (c *Collection) InsertionOrderText() string {
	return c.root.manifestText(false)
}

// Normalize replaces the manifest text with its normalized form. It
// does not change Modified.
func (c *Collection) Normalize() *Collection {
	c.text = c.root.manifestText(true)
	c.state = cached
	return c
}

// Modified reports whether the collection has changed since it was
// built or since the last call to Unmodified.
func (c *Collection) Modified() bool {
	return c.modified
}

// Unmodified clears the modified flag, typically after the caller has
// saved the manifest text.
func (c *Collection) Unmodified() *Collection {
	c.modified = false
	return c
}

func (c *Collection) markModified() {
	c.state = stale
	c.modified = true
}

// find resolves p to its containing stream and its name there.
func (c *Collection) find(p string) (*Stream, string, error) {
	np, err := path.Normalize(p)
	if err != nil {
		return nil, "", err
	}
	return c.root.find(np)
}

// Lookup returns the item at p.
func (c *Collection) Lookup(p string) (Item, error) {
	const op = "collection.Lookup"
	s, name, err := c.find(p)
	if err != nil {
		return nil, errors.E(op, err)
	}
	item, err := s.get(name)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return item, nil
}

// Exist reports whether an item exists at p.
func (c *Collection) Exist(p string) bool {
	s, name, err := c.find(p)
	if err != nil {
		return false
	}
	return !s.IsLeaf() && s.items[name] != nil
}

// CpR copies the file or stream at source in the collection from to
// target in c; a nil from means c itself. Streams are merged into
// existing streams of the same name. If target is an existing stream
// the item is copied into it under its own name, unless source ends in
// a slash, in which case the contents of source are copied to target.
// Copying an item onto itself does nothing.
func (c *Collection) CpR(source, target string, from *Collection) error {
	const op = "collection.CpR"
	descend := !strings.HasSuffix(source, "/")
	if err := c.copy(merge, strings.TrimSuffix(source, "/"), target, from, descend, nil); err != nil {
		return errors.E(op, err)
	}
	return nil
}

// Rename moves the item at source to target. A stream may not replace
// a stream that has children.
func (c *Collection) Rename(source, target string) error {
	const op = "collection.Rename"
	err := c.copy(addCopy, source, target, nil, true, func() error {
		return c.RmR(source)
	})
	if err != nil {
		return errors.E(op, err)
	}
	return nil
}

// Rm removes the file or empty stream at p.
func (c *Collection) Rm(p string) error {
	const op = "collection.Rm"
	if err := c.remove(p, false); err != nil {
		return errors.E(op, err)
	}
	return nil
}

// RmR removes the item at p and everything below it. Removing "."
// empties the collection.
func (c *Collection) RmR(p string) error {
	const op = "collection.RmR"
	if err := c.remove(p, true); err != nil {
		return errors.E(op, err)
	}
	return nil
}

func (c *Collection) remove(p string, recursive bool) error {
	s, name, err := c.find(p)
	if err != nil {
		return err
	}
	if err := s.delete(name, recursive); err != nil {
		return err
	}
	c.markModified()
	return nil
}

// copy writes the item at source in from to target in c using method
// m. With descend set, a target naming an existing stream receives the
// item under the source's own name. If beforeWrite is not nil it runs
// once every check has passed and just before the tree is changed.
func (c *Collection) copy(m copyMethod, source, target string, from *Collection, descend bool, beforeWrite func() error) error {
	if from == nil {
		from = c
	}
	src, srcName, err := from.find(source)
	if err != nil {
		return err
	}
	dst, dstName, err := c.find(target)
	if err != nil {
		return err
	}
	if from == c && src.path == dst.path && srcName == dstName {
		return nil
	}
	item, err := src.get(srcName)
	if err != nil {
		return err
	}
	if dstName == "" {
		dstName = srcName
	}

	targetName := ""
	if descend {
		if tail, ok := dst.items[dstName]; ok {
			switch cf := checkItem(tail, m, item, srcName); cf {
			case noConflict:
				dst = tail.(*Stream)
				targetName = srcName
			case kindConflict, notStream:
				// Not a stream to copy into; copy to target itself.
			default:
				return tail.(*Stream).conflictError(cf, srcName)
			}
		}
	}
	if targetName == "" {
		if cf := dst.check(m, item, dstName); cf != noConflict {
			return dst.conflictError(cf, dstName)
		}
		targetName = dstName
	}

	if beforeWrite != nil {
		if err := beforeWrite(); err != nil {
			return err
		}
		// beforeWrite may have removed dst.
		if dst, err = c.root.streamAt(dst.path); err != nil {
			return err
		}
	}
	err = dst.write(m, item, targetName)
	c.markModified()
	return err
}

// FilePaths returns the path of every file in the collection. Within
// each stream the files come first, sorted by name, followed by the
// files of each substream in turn.
func (c *Collection) FilePaths() []keep.PathName {
	var paths []keep.PathName
	var walk func(s *Stream)
	walk = func(s *Stream) {
		var subs []*Stream
		for _, name := range s.Names() {
			switch item := s.items[name].(type) {
			case *File:
				paths = append(paths, item.path)
			case *Stream:
				subs = append(subs, item)
			}
		}
		for _, sub := range subs {
			walk(sub)
		}
	}
	walk(c.root)
	return paths
}
