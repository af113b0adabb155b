// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// I/O helpers.

package subcmd

import (
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"keepfs.io/config"
)

var (
	userLookup = user.Lookup
	homedir    = config.Homedir
)

func homeDir(who string) string {
	if who == "" {
		home, err := homedir()
		if err != nil {
			return "~" // What else can we do?
		}
		return home
	}
	u, err := userLookup(who)
	if err != nil {
		return "~" + who // Again, what else can we do?
	}
	return u.HomeDir
}

// Tilde processes a leading tilde, if any, in the local file name.
// If the file name does not begin with a tilde, Tilde returns the argument unchanged.
// If the target user does not exist, it returns the original string.
func Tilde(file string) string {
	if file == "" || file[0] != '~' {
		return file
	}
	if file == "~" {
		return homeDir("")
	}
	slash := strings.IndexByte(file, '/')
	if slash < 0 {
		return homeDir(file[1:])
	}
	return filepath.Join(homeDir(file[1:slash]), file[slash+1:])
}

// ReadAll reads all contents from a local input file or from standard
// input if the file name is empty or "-".
func (s *State) ReadAll(fileName string) []byte {
	var input io.Reader = s.Stdin
	if fileName != "" && fileName != "-" {
		f, err := os.Open(Tilde(fileName))
		if err != nil {
			s.Exit(err)
		}
		defer f.Close()
		input = f
	}
	data, err := io.ReadAll(input)
	if err != nil {
		s.Exit(err)
	}
	return data
}
