// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package version reports the version of the running keep binary.
package version // import "keepfs.io/version"

import (
	"fmt"
	"runtime/debug"
	"time"
)

// These may be set at link time with -X; otherwise they are taken from
// the version control information recorded in the binary.
var (
	BuildTime = ""
	GitSHA    = ""
)

// Version returns a newline-terminated string describing the current
// version of the build.
func Version() string {
	sha, built := GitSHA, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && sha == "":
				sha = s.Value
			case s.Key == "vcs.time" && built == "":
				built = s.Value
			}
		}
	}
	return format(sha, built)
}

func format(sha, built string) string {
	if sha == "" {
		return "devel\n"
	}
	str := ""
	if t, err := time.Parse(time.RFC3339, built); err == nil {
		str = fmt.Sprintf("Build time: %s\n", t.In(time.UTC).Format(time.Stamp+" 2006 UTC"))
	}
	str += fmt.Sprintf("Git hash:   %s\n", sha)
	return str
}
