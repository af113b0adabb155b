// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"strconv"
	"strings"

	"keepfs.io/manifest"
)

// manifestText returns the manifest text for s and every stream below
// it. With sorted set, files and streams appear in lexical order and
// the text is normalized; otherwise they appear in the order they were
// added.
func (s *Stream) manifestText(sorted bool) string {
	var b strings.Builder
	s.writeManifest(&b, sorted)
	return b.String()
}

func (s *Stream) writeManifest(b *strings.Builder, sorted bool) {
	var files []*File
	var streams []*Stream
	keys := s.keys
	if sorted {
		keys = s.Names()
	}
	for _, key := range keys {
		switch item := s.items[key].(type) {
		case *File:
			files = append(files, item)
		case *Stream:
			streams = append(streams, item)
		}
	}
	line := newStreamManifest(string(s.path))
	for _, f := range files {
		line.addFile(f)
	}
	b.WriteString(line.String())
	for _, sub := range streams {
		sub.writeManifest(b, sorted)
	}
}

// A streamManifest builds the manifest line for a single stream from
// the files added to it, in the order they are added.
type streamManifest struct {
	name   string
	ranges map[string]locatorRange
	order  []string // Locators in the order they were first seen.
	next   int64
	specs  []string
}

func newStreamManifest(name string) *streamManifest {
	return &streamManifest{
		name:   name,
		ranges: make(map[string]locatorRange),
	}
}

func (m *streamManifest) addFile(f *File) {
	for _, seg := range f.segments {
		m.extendLocatorRanges(seg.Locators)
		m.extendFileSpecs(f.Name(), seg)
	}
}

// String returns the stream's manifest line, or the empty string if
// the stream holds no files.
func (m *streamManifest) String() string {
	if len(m.specs) == 0 {
		return ""
	}
	return manifest.Escape(m.name) + " " + strings.Join(m.order, " ") + " " + strings.Join(m.specs, " ") + "\n"
}

// extendLocatorRanges appends each locator not already in the stream.
func (m *streamManifest) extendLocatorRanges(locators []string) {
	for _, tok := range locators {
		if _, ok := m.ranges[tok]; ok {
			continue
		}
		r, err := newRange(tok, m.next)
		if err != nil {
			// Locators in a tree have all been parsed once already.
			r = locatorRange{locator: tok, start: m.next, end: m.next}
		}
		m.ranges[tok] = r
		m.order = append(m.order, tok)
		m.next = r.end
	}
}

// extendFileSpecs adds the fewest file tokens that rebuild seg from
// the stream's blocks. A new token starts wherever consecutive blocks
// of the segment are not adjacent in the stream.
func (m *streamManifest) extendFileSpecs(name string, seg Segment) {
	if len(seg.Locators) == 0 {
		return
	}
	name = manifest.Escape(name)
	start, length := seg.Start, seg.Length
	first := seg.Locators[0]
	prev := first
	for _, tok := range seg.Locators[1:] {
		if m.ranges[tok].start != m.ranges[prev].end {
			pos, n := m.startAndLength(first, prev, start, length)
			m.addSpec(pos, n, name)
			start = 0
			length -= n
			first = tok
		}
		prev = tok
	}
	pos, n := m.startAndLength(first, prev, start, length)
	m.addSpec(pos, n, name)
}

// startAndLength returns the stream offset of start within the block
// first, and length capped at the end of the block last.
func (m *streamManifest) startAndLength(first, last string, start, length int64) (int64, int64) {
	pos := m.ranges[first].start + start
	if rest := m.ranges[last].end - pos; rest < length {
		length = rest
	}
	return pos, length
}

func (m *streamManifest) addSpec(pos, length int64, name string) {
	m.specs = append(m.specs, strconv.FormatInt(pos, 10)+":"+strconv.FormatInt(length, 10)+":"+name)
}
