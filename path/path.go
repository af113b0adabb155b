// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package path provides tools for building and splitting the names of
// items in a collection. A collection path is relative to the
// collection root and always begins with "./", or is exactly ".".
//
// Unlike Go's path package, nothing here cleans a path: "." and ".."
// elements are ordinary names inside a collection.
package path // import "keepfs.io/path"

import (
	"strings"

	"keepfs.io/errors"
	"keepfs.io/keep"
)

// Join concatenates the elements, adding a separating slash at each
// boundary unless one of the two sides already has one. Empty elements
// are not skipped, so Join("", "a") is "/a".
func Join(elems ...string) keep.PathName {
	if len(elems) == 0 {
		return ""
	}
	joined := elems[0]
	for _, e := range elems[1:] {
		left := strings.HasSuffix(joined, "/")
		right := strings.HasPrefix(e, "/")
		switch {
		case left && right:
			joined += e[1:]
		case left || right:
			joined += e
		default:
			joined += "/" + e
		}
	}
	return keep.PathName(joined)
}

// Normalize joins the elements and returns the result as a collection
// path, adding a "./" prefix when it is missing. An empty result is an
// error of kind Syntax.
func Normalize(elems ...string) (keep.PathName, error) {
	const op = "path.Normalize"
	p := Join(elems...)
	switch {
	case p == "":
		return "", errors.E(op, errors.Syntax, errors.Str("empty path"))
	case p == ".", strings.HasPrefix(string(p), "./"):
		return p, nil
	}
	return "./" + p, nil
}

// Child returns the path of the item called name inside parent. The
// collection root has the empty path, so its only child is ".".
func Child(parent keep.PathName, name string) keep.PathName {
	if parent == "" {
		return keep.PathName(name)
	}
	return parent + "/" + keep.PathName(name)
}

// Split returns the elements of p. Trailing empty elements are dropped,
// so "./a/" has the elements "." and "a", but empty elements elsewhere
// are kept.
func Split(p keep.PathName) []string {
	elems := strings.Split(string(p), "/")
	for len(elems) > 0 && elems[len(elems)-1] == "" {
		elems = elems[:len(elems)-1]
	}
	return elems
}

// SplitLast splits p at its final slash. If p has no slash, dir is empty.
func SplitLast(p keep.PathName) (dir keep.PathName, base string) {
	i := strings.LastIndexByte(string(p), '/')
	if i < 0 {
		return "", string(p)
	}
	return p[:i], string(p[i+1:])
}

// Base returns the last element of p, which is the item's name.
func Base(p keep.PathName) string {
	_, base := SplitLast(p)
	return base
}
