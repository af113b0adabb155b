// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/spf13/pflag"

	"keepfs.io/collection"
	"keepfs.io/manifest"
)

func (s *State) validate(args ...string) {
	const help = `
Validate checks that the manifest text in the named file, or on
standard input, is well formed. Problems are reported with the number
of the stream where they occur, and the exit status is non-zero.
`
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	s.ParseFlags(fs, args, help, "validate [file]")
	s.NArgs(fs, 0, 1)

	if err := manifest.Validate(string(s.ReadAll(fs.Arg(0)))); err != nil {
		s.Fail(err)
	}
}

func (s *State) normalize(args ...string) {
	const help = `
Normalize writes the normalized form of the manifest text in the named
file, or on standard input, to standard output.
`
	fs := pflag.NewFlagSet("normalize", pflag.ContinueOnError)
	s.ParseFlags(fs, args, help, "normalize [file]")
	s.NArgs(fs, 0, 1)

	c, err := collection.New(string(s.ReadAll(fs.Arg(0))))
	if err != nil {
		s.Exit(err)
	}
	if _, err := io.WriteString(s.Stdout, c.Normalize().ManifestText()); err != nil {
		s.Exitf("writing output: %v", err)
	}
}
