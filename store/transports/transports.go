// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transports is a helper package that registers every store
// implementation with package bind. It has no functionality itself; it
// is meant to be imported, using an "underscore" import, as a
// convenient way to link with all the store implementations.
package transports // import "keepfs.io/store/transports"

import (
	"keepfs.io/bind"
	"keepfs.io/store/badgerstore"
	"keepfs.io/store/filesystem"
	"keepfs.io/store/inprocess"
)

func init() {
	bind.RegisterStore("inprocess", inprocess.New)
	bind.RegisterStore("badger", badgerstore.New)
	bind.RegisterStore("filesystem", filesystem.New)
}
