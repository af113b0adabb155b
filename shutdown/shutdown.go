// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shutdown runs registered handlers, such as closing the open
// collection store, before the process exits.
package shutdown // import "keepfs.io/shutdown"

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"keepfs.io/log"
)

// GracePeriod is how long the handlers have to finish before the
// process exits regardless.
const GracePeriod = 30 * time.Second

// Handle registers fn to be run at shutdown. Handlers run in
// last-in-first-out order. Handle may be called concurrently.
func Handle(fn func()) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.handlers = append(state.handlers, fn)
}

// HandleClose registers c to be closed at shutdown. An error from
// Close is logged with name.
func HandleClose(name string, c io.Closer) {
	Handle(func() {
		if err := c.Close(); err != nil {
			log.Error.Printf("shutdown: closing %s: %v", name, err)
		}
	})
}

// Now runs the registered handlers and exits with the given status
// code. Only the first call has any effect; later calls block.
func Now(code int) {
	state.once.Do(func() {
		log.Debug.Printf("shutdown: status code %d", code)

		go func() {
			sleep(GracePeriod)
			// The log may have been flushed already.
			fmt.Fprintf(os.Stderr, "shutdown: %v elapsed since shutdown requested; exiting forcefully\n", GracePeriod)
			exit(1)
		}()

		state.mu.Lock() // Never unlocked; no more handlers may be added.
		for i := len(state.handlers) - 1; i >= 0; i-- {
			state.handlers[i]()
		}
		exit(code)
	})
}

// Testing hooks.
var (
	sleep = time.Sleep
	exit  = os.Exit
)

var state struct {
	mu       sync.Mutex
	handlers []func()
	once     sync.Once
}

func init() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, os.Interrupt)
	go func() {
		sig := <-c
		log.Error.Printf("shutdown: process received signal %v", sig)
		Now(1)
	}()

	// Flushing the log is the last thing we do.
	Handle(log.Flush)
}
