// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package locator parses and formats Keep block locators.
//
// A locator names one content-addressed block:
//
//	locator   ::= digest size-hint? hint*
//	digest    ::= <32 lowercase hexadecimal digits>
//	size-hint ::= "+" [0-9]+
//	hint      ::= "+" [A-Z] [A-Za-z0-9@_-]*
//
// A permission signature is the hint beginning with "A", conventionally
// "+A<40 hex digits>@<8 hex digits>". Its syntax is recognized here;
// verifying it is left to the block store.
package locator // import "keepfs.io/locator"

import (
	"regexp"
	"strconv"
	"strings"

	"keepfs.io/errors"
	"keepfs.io/keep"
)

var (
	locatorRE = regexp.MustCompile(`^([0-9a-f]{32})(\+([0-9]+))?(\+([A-Z][A-Za-z0-9+@_-]*))?$`)
	hintRE    = regexp.MustCompile(`^[A-Z][A-Za-z0-9@_-]*$`)
)

// A Locator is a parsed block locator. The zero Locator is not valid.
// Locators are values; the methods that derive new locators never
// modify the receiver except StripHintsInPlace.
type Locator struct {
	// Hash is the 32-digit lowercase hex digest of the block.
	Hash string
	// Size is the block size in bytes. It is meaningful only if
	// HasSize reports true.
	Size int64
	// Hints are the trailing hints, without their leading "+".
	Hints []string

	hasSize bool
}

// New returns a Locator with the given hash, size and hints.
func New(hash string, size int64, hints ...string) Locator {
	return Locator{
		Hash:    hash,
		Size:    size,
		Hints:   hints,
		hasSize: true,
	}
}

// Parse parses tok as a locator. A malformed token is reported
// as an error of kind Syntax.
func Parse(tok string) (Locator, error) {
	const op = "locator.Parse"
	if tok == "" {
		return Locator{}, errors.E(op, errors.Syntax, errors.Str("locator is empty"))
	}
	m := locatorRE.FindStringSubmatch(tok)
	if m == nil {
		return Locator{}, errors.E(op, errors.Syntax, errors.Errorf("not a valid locator %q", tok))
	}
	loc := Locator{Hash: m[1]}
	if m[2] != "" {
		size, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return Locator{}, errors.E(op, errors.Syntax, errors.Errorf("invalid size in locator %q", tok))
		}
		loc.Size = size
		loc.hasSize = true
	}
	if m[4] != "" {
		for _, hint := range strings.Split(m[5], "+") {
			if !hintRE.MatchString(hint) {
				return Locator{}, errors.E(op, errors.Syntax, errors.Errorf("invalid hint %q in locator %q", hint, tok))
			}
			loc.Hints = append(loc.Hints, hint)
		}
	}
	return loc, nil
}

// TryParse is like Parse but reports failure with a boolean.
func TryParse(tok string) (Locator, bool) {
	loc, err := Parse(tok)
	return loc, err == nil
}

// Valid reports whether tok is a well-formed locator.
func Valid(tok string) bool {
	_, ok := TryParse(tok)
	return ok
}

// IsEmptyBlob reports whether tok names the empty block: the digest of
// zero bytes with a size that is zero or absent.
func IsEmptyBlob(tok string) bool {
	loc, ok := TryParse(tok)
	return ok && loc.IsEmptyBlob()
}

// IsEmptyBlob reports whether the locator names the empty block.
func (l Locator) IsEmptyBlob() bool {
	return l.Hash == keep.EmptyDigest && l.Size == 0
}

// HasSize reports whether the locator carries a size hint.
func (l Locator) HasSize() bool {
	return l.hasSize
}

// Signature returns the permission signature hint, if any.
func (l Locator) Signature() (string, bool) {
	for _, h := range l.Hints {
		if strings.HasPrefix(h, "A") {
			return h, true
		}
	}
	return "", false
}

// WithoutSignature returns a copy of the locator with any permission
// signature hints removed.
func (l Locator) WithoutSignature() Locator {
	var hints []string
	for _, h := range l.Hints {
		if !strings.HasPrefix(h, "A") {
			hints = append(hints, h)
		}
	}
	l.Hints = hints
	return l
}

// StripHints returns a copy of the locator with no hints.
func (l Locator) StripHints() Locator {
	l.Hints = nil
	return l
}

// StripHintsInPlace removes all hints from the locator.
func (l *Locator) StripHintsInPlace() {
	l.Hints = nil
}

// String returns the locator in its textual form. The size hint is
// omitted when the locator has none.
func (l Locator) String() string {
	var b strings.Builder
	b.WriteString(l.Hash)
	if l.hasSize {
		b.WriteByte('+')
		b.WriteString(strconv.FormatInt(l.Size, 10))
	}
	for _, h := range l.Hints {
		b.WriteByte('+')
		b.WriteString(h)
	}
	return b.String()
}
