// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transports

import (
	"reflect"
	"testing"

	"keepfs.io/bind"
)

func TestRegistered(t *testing.T) {
	if got, want := bind.Stores(), []string{"badger", "filesystem", "inprocess"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Stores() = %q; want %q", got, want)
	}
}
