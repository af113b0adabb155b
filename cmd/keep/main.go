// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Keep is a command-line tool for reading and editing Keep collection
// manifests held in a collection store.
package main // import "keepfs.io/cmd/keep"

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"keepfs.io/config"
	"keepfs.io/errors"
	"keepfs.io/flags"
	"keepfs.io/keep"
	"keepfs.io/log"
	"keepfs.io/subcmd"

	// Load the store implementations.
	_ "keepfs.io/store/transports"
)

const intro = `
The keep command reads and edits Keep collection manifests. Each
collection is held in a collection store under an id; the store is
chosen by the configuration file (default $HOME/keep/config) or the
--store flag.

Each subcommand has a --help flag that explains it in more detail.
For instance

	keep cp --help

explains the purpose and usage of the cp subcommand.

Global flags such as --config and --log must appear before the
subcommand name; the subcommand's own flags follow it. For example,
to copy a stream out of another collection with debugging enabled, run

	keep --log debug cp --from other mine ./data ./imported

For a list of available subcommands and global flags, run

	keep --help
`

var commands = map[string]func(*State, ...string){
	"cp":        (*State).cp,
	"get":       (*State).get,
	"ls":        (*State).ls,
	"mv":        (*State).mv,
	"normalize": (*State).normalize,
	"put":       (*State).put,
	"rm":        (*State).rm,
	"stat":      (*State).stat,
	"validate":  (*State).validate,
	"version":   (*State).version,
}

// offline lists the commands that do not need a collection store.
var offline = map[string]bool{
	"normalize": true,
	"validate":  true,
	"version":   true,
}

type State struct {
	*subcmd.State
}

func main() {
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
	}
	if len(flags.Args()) < 1 {
		fmt.Fprint(os.Stderr, intro+"\n")
		os.Exit(2)
	}
	state, args := setup(flags.Args())
	state.getCommand(state.Name)(state, args...)
	state.ExitNow()
}

// setup returns the state for the command named by args[0] and the
// command's arguments.
func setup(args []string) (*State, []string) {
	s := &State{State: subcmd.NewState(strings.ToLower(args[0]))}
	if offline[s.Name] {
		return s, args[1:]
	}
	cfg, err := loadConfig()
	if err != nil {
		s.Exit(err)
	}
	if !flags.Set("log") {
		if err := log.SetLevel(cfg.LogLevel()); err != nil {
			s.Exit(err)
		}
	}
	s.Init(cfg)
	return s, args[1:]
}

// loadConfig reads the config file named by the --config flag. A
// missing default config file yields the default config. The --store
// flag overrides the store the file names.
func loadConfig() (keep.Config, error) {
	cfg, err := config.FromFile(flags.Config)
	if errors.Is(errors.NotExist, err) && !flags.Set("config") {
		log.Debug.Printf("keep: no config file %q; using defaults", flags.Config)
		cfg, err = config.InitConfig(nil)
	}
	if err != nil {
		return nil, err
	}
	if flags.Store != "" {
		cfg = config.SetStore(cfg, flags.Store)
	}
	return cfg, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage of keep:\n")
	fmt.Fprintf(os.Stderr, "\tkeep [globalflags] <command> [flags] <args>\n")
	printCommands()
	fmt.Fprintf(os.Stderr, "Global flags:\n")
	flags.CommandLine.PrintDefaults()
	os.Exit(2)
}

func printCommands() {
	fmt.Fprintf(os.Stderr, "Keep commands:\n")
	var names []string
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "\t%s\n", name)
	}
}

// getCommand looks up the command named by op. If there is none, it
// exits after listing the commands that do exist.
func (s *State) getCommand(op string) func(*State, ...string) {
	fn := commands[op]
	if fn != nil {
		return fn
	}
	fmt.Fprintf(os.Stderr, "keep: no such command %q\n", op)
	printCommands()
	os.Exit(2)
	return nil
}
