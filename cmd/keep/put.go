// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/spf13/pflag"

	"keepfs.io/collection"
	"keepfs.io/keep"
	"keepfs.io/manifest"
)

func (s *State) put(args ...string) {
	const help = `
Put stores manifest text under the collection id, replacing any
collection already there. The text is read from the named file, or
from standard input if no file is given. Text that is not a valid
manifest is refused.
`
	fs := pflag.NewFlagSet("put", pflag.ContinueOnError)
	s.ParseFlags(fs, args, help, "put id [file]")
	s.NArgs(fs, 1, 2)

	text := string(s.ReadAll(fs.Arg(1)))
	if err := manifest.Validate(text); err != nil {
		s.Exit(err)
	}
	if _, err := collection.New(text); err != nil {
		s.Exit(err)
	}
	if err := s.Store.Put(keep.CollectionID(fs.Arg(0)), text); err != nil {
		s.Exit(err)
	}
}

func (s *State) get(args ...string) {
	const help = `
Get writes to standard output the manifest text stored under the
collection id. With -n the text is normalized first.
`
	fs := pflag.NewFlagSet("get", pflag.ContinueOnError)
	normalize := fs.BoolP("normalize", "n", false, "print the normalized manifest text")
	s.ParseFlags(fs, args, help, "get [-n] id")
	s.NArgs(fs, 1, 1)

	text, err := s.Store.Get(keep.CollectionID(fs.Arg(0)))
	if err != nil {
		s.Exit(err)
	}
	if *normalize {
		c, err := collection.New(text)
		if err != nil {
			s.Exit(err)
		}
		text = c.Normalize().ManifestText()
	}
	if _, err := io.WriteString(s.Stdout, text); err != nil {
		s.Exitf("writing output: %v", err)
	}
}
