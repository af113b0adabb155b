// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/spf13/pflag"

func (s *State) rm(args ...string) {
	const help = `
Rm removes files and streams from a collection. A stream that still
has children is removed only with -r. Removing "." with -r empties
the collection.

Rm does not delete the blocks the files refer to.
`
	fs := pflag.NewFlagSet("rm", pflag.ContinueOnError)
	recursive := fs.BoolP("recursive", "r", false, "remove streams and everything below them")
	s.ParseFlags(fs, args, help, "rm [-r] id path...")
	s.NArgs(fs, 2, -1)

	id := fs.Arg(0)
	c := s.Collection(id)
	for _, p := range fs.Args()[1:] {
		remove := c.Rm
		if *recursive {
			remove = c.RmR
		}
		if err := remove(p); err != nil {
			s.Fail(err)
		}
	}
	s.Save(id, c)
}
