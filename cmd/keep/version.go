// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"keepfs.io/version"
)

func (s *State) version(args ...string) {
	const help = `
Version prints the version of the keep binary.
`
	fs := pflag.NewFlagSet("version", pflag.ContinueOnError)
	s.ParseFlags(fs, args, help, "version")
	s.NArgs(fs, 0, 0)
	fmt.Fprint(s.Stdout, version.Version())
}
