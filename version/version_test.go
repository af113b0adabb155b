// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package version

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		sha, built, want string
	}{
		{"", "", "devel\n"},
		{"abc123", "", "Git hash:   abc123\n"},
		{"abc123", "2026-03-04T05:06:07Z", "Build time: Mar  4 05:06:07 2026 UTC\nGit hash:   abc123\n"},
	}
	for _, test := range tests {
		if got := format(test.sha, test.built); got != test.want {
			t.Errorf("format(%q, %q) = %q; want %q", test.sha, test.built, got, test.want)
		}
	}
}
