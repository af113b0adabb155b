// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/pflag"

	"keepfs.io/collection"
)

func (s *State) cp(args ...string) {
	const help = `
Cp copies a file or stream within a collection, or into it from
another collection named by --from. Paths are relative to the
collection root; "dir/file" and "./dir/file" are the same.

If the target is an existing stream, the source is copied into it
under its own name. A source ending in a slash copies the contents
of the stream rather than the stream itself. Streams are merged with
existing streams of the same name; a file colliding with a stream is
reported after everything else has been copied.
`
	fs := pflag.NewFlagSet("cp", pflag.ContinueOnError)
	from := fs.StringP("from", "f", "", "id of the collection to copy from (default the target collection)")
	s.ParseFlags(fs, args, help, "cp [--from id] id source target")
	s.NArgs(fs, 3, 3)

	id := fs.Arg(0)
	c := s.Collection(id)
	var src *collection.Collection
	if *from != "" && *from != id {
		src = s.Collection(*from)
	}
	err := c.CpR(fs.Arg(1), fs.Arg(2), src)
	// A failed merge may still have copied some items.
	s.Save(id, c)
	if err != nil {
		s.Exit(err)
	}
}

func (s *State) mv(args ...string) {
	const help = `
Mv renames a file or stream within a collection. If the target is an
existing stream, the source is moved into it under its own name.
A stream may not replace a stream that has children.
`
	fs := pflag.NewFlagSet("mv", pflag.ContinueOnError)
	s.ParseFlags(fs, args, help, "mv id source target")
	s.NArgs(fs, 3, 3)

	id := fs.Arg(0)
	c := s.Collection(id)
	if err := c.Rename(fs.Arg(1), fs.Arg(2)); err != nil {
		s.Exit(err)
	}
	s.Save(id, c)
}
