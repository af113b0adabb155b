// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store holds helpers shared by the CollectionStore
// implementations in its subdirectories.
package store // import "keepfs.io/store"

import (
	"strconv"
	"strings"

	"keepfs.io/errors"
	"keepfs.io/keep"
)

// CheckID returns an error of kind Invalid if id cannot name a stored
// collection: it must be non-empty and hold no white space or slash.
func CheckID(op string, id keep.CollectionID) error {
	if id == "" {
		return errors.E(op, errors.Invalid, errors.Str("empty collection id"))
	}
	if strings.ContainsAny(string(id), " \t\n\v\f\r/") {
		return errors.E(op, errors.Invalid, errors.Errorf("bad collection id %q", id))
	}
	return nil
}

// Options holds the key=value options given to a store constructor.
type Options map[string]string

// ParseOptions splits each option at its first "=". Keys not in known
// are an error of kind Invalid.
func ParseOptions(op string, opts []string, known ...string) (Options, error) {
	o := make(Options)
	for _, opt := range opts {
		k, v, ok := strings.Cut(opt, "=")
		if !ok {
			return nil, errors.E(op, errors.Invalid, errors.Errorf("invalid option format: %q", opt))
		}
		if !contains(known, k) {
			return nil, errors.E(op, errors.Invalid, errors.Errorf("unknown option %q", k))
		}
		o[k] = v
	}
	return o, nil
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

// Int returns the integer value of option k, or def if it is unset.
func (o Options) Int(op, k string, def int64) (int64, error) {
	v, ok := o[k]
	if !ok {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, errors.E(op, errors.Invalid, errors.Errorf("invalid %s %q", k, v))
	}
	return n, nil
}

// Bool returns the boolean value of option k, or def if it is unset.
func (o Options) Bool(op, k string, def bool) (bool, error) {
	v, ok := o[k]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.E(op, errors.Invalid, errors.Errorf("invalid %s %q", k, v))
	}
	return b, nil
}
