// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"strings"

	"keepfs.io/errors"
	"keepfs.io/path"
)

// A FileSpec is one decoded file token. Any directory part of the
// token's name is folded into Stream, so Name never contains a slash.
type FileSpec struct {
	Stream string
	Start  int64
	Size   int64
	Name   string
}

// A File is the total extent of one file across all of its tokens.
type File struct {
	Stream string
	Name   string
	Size   int64
}

// EachFileSpec calls fn for each file token in the manifest until fn
// returns false. A malformed file token stops the walk with an error
// of kind Syntax.
func (m *Manifest) EachFileSpec(fn func(FileSpec) bool) error {
	var err error
	m.EachStream(func(s Stream) bool {
		for _, tok := range s.Files {
			var spec FileSpec
			spec.Start, spec.Size, spec.Name, err = SplitFileToken(tok)
			if err != nil {
				return false
			}
			spec.Stream = s.Name
			if i := strings.LastIndexByte(spec.Name, '/'); i >= 0 {
				spec.Stream = s.Name + "/" + spec.Name[:i]
				spec.Name = spec.Name[i+1:]
			}
			if !fn(spec) {
				return false
			}
		}
		return true
	})
	return err
}

// FileSpecs returns every file token in the manifest.
func (m *Manifest) FileSpecs() ([]FileSpec, error) {
	var specs []FileSpec
	err := m.EachFileSpec(func(spec FileSpec) bool {
		specs = append(specs, spec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return specs, nil
}

// Files returns each distinct file in the order it first appears, with
// the sizes of all its tokens summed.
func (m *Manifest) Files() ([]File, error) {
	if m.files != nil {
		return m.files, nil
	}
	type key struct{ stream, name string }
	index := make(map[key]int)
	files := []File{}
	err := m.EachFileSpec(func(spec FileSpec) bool {
		k := key{spec.Stream, spec.Name}
		i, ok := index[k]
		if !ok {
			i = len(files)
			index[k] = i
			files = append(files, File{Stream: spec.Stream, Name: spec.Name})
		}
		files[i].Size += spec.Size
		return true
	})
	if err != nil {
		return nil, err
	}
	m.files = files
	return files, nil
}

// FilesCount returns the number of files in the manifest. Empty
// directory placeholders, files named "." with no content, are not
// counted.
func (m *Manifest) FilesCount() (int, error) {
	return m.countFiles(-1)
}

// countFiles counts files, stopping early once it has seen stopAfter
// of them if stopAfter is not negative.
func (m *Manifest) countFiles(stopAfter int) (int, error) {
	if stopAfter < 0 || m.files != nil {
		files, err := m.Files()
		if err != nil {
			return 0, err
		}
		n := 0
		for _, f := range files {
			if !isPlaceholder(f.Name, f.Size) {
				n++
			}
		}
		return n, nil
	}
	type key struct{ stream, name string }
	seen := make(map[key]bool)
	err := m.EachFileSpec(func(spec FileSpec) bool {
		if isPlaceholder(spec.Name, spec.Size) {
			return true
		}
		seen[key{spec.Stream, spec.Name}] = true
		return len(seen) < stopAfter
	})
	if err != nil {
		return 0, err
	}
	return len(seen), nil
}

func isPlaceholder(name string, size int64) bool {
	return name == "." && size == 0
}

// FilesSize returns the sum of the sizes of every file token.
// Overlapping tokens are each counted in full.
func (m *Manifest) FilesSize() (int64, error) {
	files, err := m.Files()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total, nil
}

// MinimumFileCount reports whether the manifest holds at least n files.
func (m *Manifest) MinimumFileCount(n int) (bool, error) {
	if n <= 0 {
		return true, nil
	}
	count, err := m.countFiles(n)
	return count >= n, err
}

// ExactFileCount reports whether the manifest holds exactly n files.
func (m *Manifest) ExactFileCount(n int) (bool, error) {
	if n < 0 {
		return false, nil
	}
	count, err := m.countFiles(n + 1)
	return count == n, err
}

// HasFile reports whether the named file appears in the given stream.
// Both stream and name are unescaped.
func (m *Manifest) HasFile(stream, name string) (bool, error) {
	found := false
	err := m.EachFileSpec(func(spec FileSpec) bool {
		found = spec.Stream == stream && spec.Name == name
		return !found
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// HasPath is like HasFile but takes a collection path such as
// "./dir/file.txt" or "dir/file.txt". A path with no slash names a
// file in the "." stream. An empty path is an error of kind Syntax.
func (m *Manifest) HasPath(p string) (bool, error) {
	const op = "manifest.HasPath"
	np, err := path.Normalize(p)
	if err != nil {
		return false, errors.E(op, err)
	}
	stream, name := path.SplitLast(np)
	return m.HasFile(string(stream), name)
}
