// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log exports logging primitives that log to stderr through a
// leveled logrus backend.
package log // import "keepfs.io/log"

// We call this log instead of logging for two reasons:
// 1) It's shorter to type;
// 2) it mimics Go's log package and can be used as a drop-in replacement for it.

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the interface for logging messages.
type Logger interface {
	// Printf writes a formated message to the log.
	Printf(format string, v ...interface{})

	// Print writes a message to the log.
	Print(v ...interface{})

	// Println writes a line to the log.
	Println(v ...interface{})

	// Fatal writes a message to the log and aborts.
	Fatal(v ...interface{})

	// Fatalf writes a formated message to the log and aborts.
	Fatalf(format string, v ...interface{})
}

// level represents the level of logging.
type level int

// Different levels of logging.
const (
	debug level = iota
	info
	errors
	disabled
)

// Pre-allocated Loggers at each logging level.
var (
	Debug Logger = &logger{debug}
	Info  Logger = &logger{info}
	Error Logger = &logger{errors}
)

var state = struct {
	mu           sync.Mutex
	currentLevel level
	backend      *logrus.Logger
}{
	currentLevel: info,
	backend:      newBackend(os.Stderr),
}

func newBackend(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05.000000",
	})
	// Filtering is done by this package; logrus sees everything.
	l.SetLevel(logrus.DebugLevel)
	return l
}

type logger struct {
	level level
}

var _ Logger = (*logger)(nil)

func (l *logger) enabled() (*logrus.Logger, bool) {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.backend, l.level >= state.currentLevel
}

func (l *logger) logrusLevel() logrus.Level {
	switch l.level {
	case debug:
		return logrus.DebugLevel
	case errors:
		return logrus.ErrorLevel
	}
	return logrus.InfoLevel
}

// Printf writes a formated message to the log.
func (l *logger) Printf(format string, v ...interface{}) {
	b, ok := l.enabled()
	if !ok {
		return // Don't log at lower levels.
	}
	b.Log(l.logrusLevel(), fmt.Sprintf(format, v...))
}

// Print writes a message to the log.
func (l *logger) Print(v ...interface{}) {
	b, ok := l.enabled()
	if !ok {
		return
	}
	b.Log(l.logrusLevel(), fmt.Sprint(v...))
}

// Println writes a line to the log.
func (l *logger) Println(v ...interface{}) {
	b, ok := l.enabled()
	if !ok {
		return
	}
	b.Logln(l.logrusLevel(), v...)
}

// Fatal writes a message to the log and aborts, regardless of the current log level.
func (l *logger) Fatal(v ...interface{}) {
	b, _ := l.enabled()
	b.Fatal(v...)
}

// Fatalf writes a formated message to the log and aborts, regardless of the current log level.
func (l *logger) Fatalf(format string, v ...interface{}) {
	b, _ := l.enabled()
	b.Fatalf(format, v...)
}

// String returns the name of the logger.
func (l *logger) String() string {
	return toString(l.level)
}

func toString(level level) string {
	switch level {
	case info:
		return "info"
	case debug:
		return "debug"
	case errors:
		return "error"
	case disabled:
		return "disabled"
	}
	return "unknown"
}

func toLevel(level string) (level, error) {
	switch level {
	case "info":
		return info, nil
	case "debug":
		return debug, nil
	case "error":
		return errors, nil
	case "disabled":
		return disabled, nil
	}
	return disabled, fmt.Errorf("invalid log level %q", level)
}

// Level returns the current logging level.
func Level() string {
	state.mu.Lock()
	defer state.mu.Unlock()
	return toString(state.currentLevel)
}

// SetLevel sets the current level of logging.
func SetLevel(level string) error {
	l, err := toLevel(level)
	if err != nil {
		return err
	}
	state.mu.Lock()
	state.currentLevel = l
	state.mu.Unlock()
	return nil
}

// At returns whether the level will be logged currently.
func At(level string) bool {
	l, err := toLevel(level)
	if err != nil {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.currentLevel <= l
}

// SetOutput redirects all loggers to w.
func SetOutput(w io.Writer) {
	state.mu.Lock()
	state.backend.SetOutput(w)
	state.mu.Unlock()
}

// Printf writes a formated message to the log.
func Printf(format string, v ...interface{}) {
	Info.Printf(format, v...)
}

// Print writes a message to the log.
func Print(v ...interface{}) {
	Info.Print(v...)
}

// Println writes a line to the log.
func Println(v ...interface{}) {
	Info.Println(v...)
}

// Fatal writes a message to the log and aborts.
func Fatal(v ...interface{}) {
	Info.Fatal(v...)
}

// Fatalf writes a formated message to the log and aborts.
func Fatalf(format string, v ...interface{}) {
	Info.Fatalf(format, v...)
}

// Flush writes any buffered log output to its destination.
// It is registered as the last shutdown handler.
func Flush() {
	state.mu.Lock()
	defer state.mu.Unlock()
	if s, ok := state.backend.Out.(interface{ Sync() error }); ok {
		s.Sync()
	}
}
