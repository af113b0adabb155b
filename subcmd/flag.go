// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Flag helpers.

package subcmd

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ParseFlags parses the flags in the command line arguments,
// according to those set in the flag set.
func (s *State) ParseFlags(fs *pflag.FlagSet, args []string, help, usage string) {
	helpFlag := fs.Bool("help", false, "print more information about the command")
	fs.SetOutput(s.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(s.Stderr, "Usage: keep %s\n", usage)
		if *helpFlag {
			fmt.Fprintln(s.Stderr, help)
		}
		if fs.HasFlags() {
			fmt.Fprintf(s.Stderr, "Flags:\n")
			fs.PrintDefaults()
		}
	}
	if err := fs.Parse(args); err != nil {
		s.Exit(err)
	}
	if *helpFlag {
		fs.Usage()
		s.ExitCode = 2
		s.ExitNow()
	}
}

// NArgs exits with a usage message unless the flag set holds between
// min and max arguments. A negative max means no upper limit.
func (s *State) NArgs(fs *pflag.FlagSet, min, max int) {
	n := fs.NArg()
	if n < min || (max >= 0 && n > max) {
		fs.Usage()
		s.ExitCode = 2
		if s.Interactive {
			panic("exit")
		}
		s.ExitNow()
	}
}
