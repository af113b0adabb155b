// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subcmd holds the state and helpers shared by the
// subcommands of the keep command.
package subcmd // import "keepfs.io/subcmd"

import (
	"fmt"
	"io"
	"os"

	"keepfs.io/bind"
	"keepfs.io/collection"
	"keepfs.io/keep"
	"keepfs.io/shutdown"
)

// State describes the state of a subcommand.
// See the comments for Exitf to see how Interactive is used.
type State struct {
	Name        string               // Name of the subcommand we are running.
	Config      keep.Config          // Config; may be nil.
	Store       keep.CollectionStore // Store; nil until Init.
	Interactive bool                 // Whether errors should panic rather than exit.
	Stdin       io.Reader            // Where to read standard input.
	Stdout      io.Writer            // Where to write standard output.
	Stderr      io.Writer            // Where to write error output.
	ExitCode    int                  // Exit with non-zero status for minor problems.
}

// NewState returns a new State for the named subcommand.
func NewState(name string) *State {
	s := &State{Name: name}
	s.DefaultIO()
	return s
}

// Init records the config and opens the store it names. The store is
// closed at shutdown.
func (s *State) Init(cfg keep.Config) {
	s.Config = cfg
	store, err := bind.Store(cfg)
	if err != nil {
		s.Exit(err)
	}
	s.Store = store
	shutdown.HandleClose("collection store", store)
}

// SetIO sets the standard input and output of the State.
func (s *State) SetIO(stdin io.Reader, stdout, stderr io.Writer) {
	s.Stdin = stdin
	s.Stdout = stdout
	s.Stderr = stderr
}

// DefaultIO connects the State to the process's standard input and output.
func (s *State) DefaultIO() {
	s.SetIO(os.Stdin, os.Stdout, os.Stderr)
}

// Exitf prints the error and exits the program.
// If we are interactive, it calls panic("exit"), which is intended to be recovered
// from by the caller.
// We don't use log (although the packages we call do) because the errors
// are for regular people.
func (s *State) Exitf(format string, args ...interface{}) {
	format = fmt.Sprintf("keep: %s: %s\n", s.Name, format)
	fmt.Fprintf(s.Stderr, format, args...)
	if s.Interactive {
		panic("exit")
	}
	s.ExitCode = 1
	s.ExitNow()
}

// Exit calls s.Exitf with the error.
func (s *State) Exit(err error) {
	s.Exitf("%s", err)
}

// ExitNow terminates the process with the current ExitCode.
func (s *State) ExitNow() {
	shutdown.Now(s.ExitCode)
}

// Failf prints the error and sets the exit code. It does not exit the program.
func (s *State) Failf(format string, args ...interface{}) {
	format = fmt.Sprintf("keep: %s: %s\n", s.Name, format)
	fmt.Fprintf(s.Stderr, format, args...)
	s.ExitCode = 1
}

// Fail calls s.Failf with the error.
func (s *State) Fail(err error) {
	s.Failf("%v", err)
}

// Collection loads the collection stored under id, or exits on failure.
func (s *State) Collection(id string) *collection.Collection {
	c, err := collection.Load(s.Store, keep.CollectionID(id))
	if err != nil {
		s.Exit(err)
	}
	return c
}

// Save stores c under id if it has been modified, or exits on failure.
func (s *State) Save(id string, c *collection.Collection) {
	if _, err := collection.Save(s.Store, keep.CollectionID(id), c); err != nil {
		s.Exit(err)
	}
}
