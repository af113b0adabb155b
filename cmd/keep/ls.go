// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"keepfs.io/keep"
	"keepfs.io/manifest"
)

func (s *State) ls(args ...string) {
	const help = `
Ls lists the path of every file in a collection, one per line. Within
each stream the files are listed in name order before the files of
its substreams.
`
	fs := pflag.NewFlagSet("ls", pflag.ContinueOnError)
	s.ParseFlags(fs, args, help, "ls id")
	s.NArgs(fs, 1, 1)

	for _, p := range s.Collection(fs.Arg(0)).FilePaths() {
		fmt.Fprintln(s.Stdout, p)
	}
}

func (s *State) stat(args ...string) {
	const help = `
Stat prints the number of files in a collection and their total size
in bytes. Empty directory placeholders are not counted.
`
	fs := pflag.NewFlagSet("stat", pflag.ContinueOnError)
	s.ParseFlags(fs, args, help, "stat id")
	s.NArgs(fs, 1, 1)

	text, err := s.Store.Get(keep.CollectionID(fs.Arg(0)))
	if err != nil {
		s.Exit(err)
	}
	m := manifest.New(text)
	n, err := m.FilesCount()
	if err != nil {
		s.Exit(err)
	}
	size, err := m.FilesSize()
	if err != nil {
		s.Exit(err)
	}
	fmt.Fprintf(s.Stdout, "files: %d\nbytes: %d\n", n, size)
}
