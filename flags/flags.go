// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flags defines the global command-line flags shared by keep
// commands. They are parsed before any subcommand name, so flags that
// follow the subcommand are left for it.
package flags // import "keepfs.io/flags"

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"keepfs.io/errors"
	"keepfs.io/log"
)

// We define the flags in two steps so clients don't have to write *flags.Flag.
// It also makes the documentation easier to read.

var (
	// Config names the keep config file to use.
	Config = defaultConfig

	// Store, if set, overrides the store named in the config file.
	Store = ""

	// Log sets the level of logging (implements pflag.Value).
	Log logFlag
)

var defaultConfig = filepath.Join(os.Getenv("HOME"), "keep", "config")

// CommandLine is the set holding the global flags.
var CommandLine = pflag.NewFlagSet("keep", pflag.ContinueOnError)

func init() {
	CommandLine.SetInterspersed(false)
	CommandLine.StringVar(&Config, "config", Config, "configuration `file`")
	CommandLine.StringVar(&Store, "store", Store, "`name` of the collection store, overriding the config file")
	CommandLine.Var(&Log, "log", "`level` of logging: debug, info, error, disabled")
}

// Parse parses the global flags from args, which should not include
// the program name.
func Parse(args []string) error {
	const op = "flags.Parse"
	if err := CommandLine.Parse(args); err != nil {
		return errors.E(op, errors.Invalid, err)
	}
	return nil
}

// Args returns the arguments remaining after the global flags.
func Args() []string {
	return CommandLine.Args()
}

// Set reports whether the named flag was given on the command line.
func Set(name string) bool {
	return CommandLine.Changed(name)
}

type logFlag string

// String implements pflag.Value.
func (f *logFlag) String() string {
	return log.Level()
}

// Set implements pflag.Value.
func (f *logFlag) Set(level string) error {
	if err := log.SetLevel(level); err != nil {
		return err
	}
	*f = logFlag(level)
	return nil
}

// Type implements pflag.Value.
func (f *logFlag) Type() string {
	return "level"
}
