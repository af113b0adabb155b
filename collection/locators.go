// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"keepfs.io/errors"
	"keepfs.io/locator"
)

// A Segment is a contiguous run of a file's bytes, given as a cut
// across one or more blocks. Start is relative to the first block.
type Segment struct {
	Locators []string
	Start    int64
	Length   int64
}

// A locatorRange places one block on a stream's byte numberline as
// the half-open interval [start, end).
type locatorRange struct {
	locator    string
	start, end int64
}

func (r locatorRange) contains(b int64) bool {
	return r.start <= b && b < r.end
}

// newRange returns the range for tok starting at start. A locator with
// no size hint occupies no bytes.
func newRange(tok string, start int64) (locatorRange, error) {
	loc, err := locator.Parse(tok)
	if err != nil {
		return locatorRange{}, err
	}
	return locatorRange{locator: tok, start: start, end: start + loc.Size}, nil
}

// A LocatorList maps the blocks of one stream, in order, onto the
// stream's byte offsets.
type LocatorList struct {
	ranges []locatorRange
	size   int64
}

// NewLocatorList returns the LocatorList for the given locator tokens.
func NewLocatorList(locators []string) (*LocatorList, error) {
	const op = "collection.NewLocatorList"
	l := &LocatorList{ranges: make([]locatorRange, 0, len(locators))}
	for _, tok := range locators {
		r, err := newRange(tok, l.size)
		if err != nil {
			return nil, errors.E(op, err)
		}
		l.ranges = append(l.ranges, r)
		l.size = r.end
	}
	return l, nil
}

// Size returns the total number of bytes in the stream's blocks.
func (l *LocatorList) Size() int64 {
	return l.size
}

// Segment returns the segment holding length bytes from offset start.
// A zero-length segment lies within the block holding start, or within
// the last block when start is exactly the end of the stream. An
// offset outside every block is an error of kind Range.
func (l *LocatorList) Segment(start, length int64) (Segment, error) {
	const op = "collection.Segment"
	if start < 0 || length < 0 {
		return Segment{}, errors.E(op, errors.Range, errors.Errorf("invalid segment %d:%d", start, length))
	}
	first, ok := l.searchForByte(start, 0)
	if !ok && length == 0 && start == l.size && len(l.ranges) > 0 {
		first, ok = len(l.ranges)-1, true
	}
	if !ok {
		return Segment{}, errors.E(op, errors.Range, errors.Errorf("%d not in segment", start))
	}
	last := first
	if length > 0 {
		last, ok = l.searchForByte(start+length-1, first)
		if !ok {
			return Segment{}, errors.E(op, errors.Range, errors.Errorf("%d not in segment", start+length-1))
		}
	}
	seg := Segment{
		Locators: make([]string, 0, last-first+1),
		Start:    start - l.ranges[first].start,
		Length:   length,
	}
	for _, r := range l.ranges[first : last+1] {
		seg.Locators = append(seg.Locators, r.locator)
	}
	return seg, nil
}

// searchForByte does a binary search, beginning at index lo, for the
// range holding byte b. It reports false if no range holds it.
func (l *LocatorList) searchForByte(b int64, lo int) (int, bool) {
	hi := len(l.ranges)
	if lo >= hi {
		return 0, false
	}
	for {
		i := (lo + hi) / 2
		r := l.ranges[i]
		switch {
		case r.contains(b):
			return i, true
		case i == lo:
			return 0, false
		case b < r.start:
			hi = i
		default:
			lo = i
		}
	}
}
