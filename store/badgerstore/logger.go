// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package badgerstore

import (
	"github.com/dgraph-io/badger/v4"

	"keepfs.io/log"
)

// badgerLogger sends badger's messages to the keepfs loggers. Badger
// reports routine compaction and replay progress at info, so that goes
// to debug; warnings go to info.
type badgerLogger struct{}

var _ badger.Logger = badgerLogger{}

func (badgerLogger) Errorf(format string, v ...interface{}) {
	log.Error.Printf("badger: "+format, v...)
}

func (badgerLogger) Warningf(format string, v ...interface{}) {
	log.Info.Printf("badger: warning: "+format, v...)
}

func (badgerLogger) Infof(format string, v ...interface{}) {
	log.Debug.Printf("badger: "+format, v...)
}

func (badgerLogger) Debugf(format string, v ...interface{}) {
	log.Debug.Printf("badger: "+format, v...)
}
