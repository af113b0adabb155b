// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package path

import (
	"reflect"
	"testing"

	"keepfs.io/errors"
	"keepfs.io/keep"
)

type joinTest struct {
	elem []string
	path keep.PathName
}

var joinTests = []joinTest{
	// zero parameters
	{[]string{}, ""},

	// one parameter
	{[]string{""}, ""},
	{[]string{"a"}, "a"},
	{[]string{"./a"}, "./a"},

	// two parameters
	{[]string{"a", "b"}, "a/b"},
	{[]string{"a/", "b"}, "a/b"},
	{[]string{"a", "/b"}, "a/b"},
	{[]string{"a/", "/b"}, "a/b"},
	{[]string{"", "b"}, "/b"},
	{[]string{".", "file"}, "./file"},
	{[]string{"./..", "."}, "./../."},
	{[]string{"./dir", "sub/file"}, "./dir/sub/file"},
}

func TestJoin(t *testing.T) {
	for _, test := range joinTests {
		if p := Join(test.elem...); p != test.path {
			t.Errorf("Join(%q) = %q, want %q", test.elem, p, test.path)
		}
	}
}

type normalizeTest struct {
	elem []string
	path keep.PathName
}

var normalizeTests = []normalizeTest{
	{[]string{"."}, "."},
	{[]string{"./"}, "./"},
	{[]string{"./a"}, "./a"},
	{[]string{"a"}, "./a"},
	{[]string{"a/b"}, "./a/b"},
	{[]string{"s1/"}, "./s1/"},
	{[]string{"..", "x"}, "./../x"},
	{[]string{".", "simple.txt"}, "./simple.txt"},
	{[]string{"./dir1", "dir2/file"}, "./dir1/dir2/file"},
}

func TestNormalize(t *testing.T) {
	for _, test := range normalizeTests {
		p, err := Normalize(test.elem...)
		if err != nil {
			t.Errorf("Normalize(%q): %v", test.elem, err)
			continue
		}
		if p != test.path {
			t.Errorf("Normalize(%q) = %q, want %q", test.elem, p, test.path)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, elems := range [][]string{nil, {""}} {
		_, err := Normalize(elems...)
		if !errors.Is(errors.Syntax, err) {
			t.Errorf("Normalize(%q) error = %v, want syntax error", elems, err)
		}
	}
}

func TestChild(t *testing.T) {
	tests := []struct {
		parent keep.PathName
		name   string
		path   keep.PathName
	}{
		{"", ".", "."},
		{".", "a", "./a"},
		{"./a", "b c", "./a/b c"},
	}
	for _, test := range tests {
		if p := Child(test.parent, test.name); p != test.path {
			t.Errorf("Child(%q, %q) = %q, want %q", test.parent, test.name, p, test.path)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		path  keep.PathName
		elems []string
	}{
		{".", []string{"."}},
		{"./", []string{"."}},
		{"./a/b", []string{".", "a", "b"}},
		{"./a/b//", []string{".", "a", "b"}},
		{"./a//b", []string{".", "a", "", "b"}},
		{".//a", []string{".", "", "a"}},
	}
	for _, test := range tests {
		if elems := Split(test.path); !reflect.DeepEqual(elems, test.elems) {
			t.Errorf("Split(%q) = %q, want %q", test.path, elems, test.elems)
		}
	}
}

func TestSplitLast(t *testing.T) {
	tests := []struct {
		path keep.PathName
		dir  keep.PathName
		base string
	}{
		{"file", "", "file"},
		{"./file", ".", "file"},
		{"./a/b/c", "./a/b", "c"},
		{".", "", "."},
	}
	for _, test := range tests {
		dir, base := SplitLast(test.path)
		if dir != test.dir || base != test.base {
			t.Errorf("SplitLast(%q) = %q, %q, want %q, %q", test.path, dir, base, test.dir, test.base)
		}
		if b := Base(test.path); b != test.base {
			t.Errorf("Base(%q) = %q, want %q", test.path, b, test.base)
		}
	}
}
