// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"regexp"
	"strings"

	"keepfs.io/errors"
	"keepfs.io/locator"
)

var (
	// Escaped tokens: no control bytes, spaces or bare backslashes.
	streamTokenRE = regexp.MustCompile(`^([^\x00-\x20\\]|\\[0-3][0-7][0-7])+$`)
	fileTokenRE   = regexp.MustCompile(`^[0-9]+:[0-9]+:([^\x00-\x20\\]|\\[0-3][0-7][0-7])+$`)

	// Unescaped names.
	streamNameRE = regexp.MustCompile(`^\.(/[^/]+)*$`)
	dotDirRE     = regexp.MustCompile(`/\.\.?(/|$)`)
	fileNameRE   = regexp.MustCompile(`^[0-9]+:[0-9]+:([^/]+(/[^/]+)*)$`)
	emptyDirRE   = regexp.MustCompile(`^0:0:\.$`)

	// An escape for a byte value above 0377.
	wideEscapeRE = regexp.MustCompile(`[^\\]\\[4-7][0-7][0-7]`)
)

// Validate checks that text is a well-formed manifest. The empty
// manifest is valid. A problem is reported as an error of kind Syntax
// whose message names the offending stream by its 1-based line number.
func Validate(text string) error {
	const op = "manifest.Validate"
	if text == "" {
		return nil
	}
	if !strings.HasSuffix(text, "\n") {
		return errors.E(op, errors.Syntax, errors.Str("invalid manifest: does not end with newline"))
	}
	for i, line := range lines(text) {
		if err := validateLine(line); err != nil {
			return errors.E(op, errors.Syntax, errors.Errorf("manifest invalid for stream %d: %s", i+1, err))
		}
	}
	return nil
}

// Valid reports whether text is a well-formed manifest.
func Valid(text string) bool {
	return Validate(text) == nil
}

// validateLine checks one line, without its newline.
func validateLine(line string) error {
	words := strings.Split(line, " ")
	// Trailing empty words are reported below as a trailing space.
	for len(words) > 0 && words[len(words)-1] == "" {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return errors.Str("missing stream name")
	}

	word := words[0]
	words = words[1:]
	if wideEscapeRE.MatchString(word) {
		return errors.Errorf(">8-bit encoded chars not allowed on stream token %q", word)
	}
	name := Unescape(word)
	if !streamTokenRE.MatchString(word) || !streamNameRE.MatchString(name) || dotDirRE.MatchString(name) {
		return errors.Errorf("missing or invalid stream name %q", word)
	}

	n := 0
	for len(words) > 0 && locator.Valid(words[0]) {
		words = words[1:]
		n++
	}
	if n == 0 {
		if len(words) == 0 {
			return errors.Str("missing or invalid locator")
		}
		return errors.Errorf("missing or invalid locator %q", words[0])
	}

	if len(words) > 0 && wideEscapeRE.MatchString(words[0]) {
		return errors.Errorf(">8-bit encoded chars not allowed on file token %q", words[0])
	}
	n = 0
	for len(words) > 0 && validFileToken(words[0]) {
		words = words[1:]
		n++
	}
	if len(words) > 0 {
		return errors.Errorf("invalid file token %q", words[0])
	}
	if n == 0 {
		return errors.Str("no file tokens")
	}

	if strings.HasSuffix(line, " ") {
		return errors.Str("trailing space")
	}
	return nil
}

// validFileToken reports whether tok is an escaped "start:length:name"
// token whose name has no empty, "." or ".." components, or is the
// empty directory placeholder "0:0:.".
func validFileToken(tok string) bool {
	unescaped := Unescape(tok)
	if emptyDirRE.MatchString(unescaped) {
		return true
	}
	if !fileTokenRE.MatchString(tok) {
		return false
	}
	m := fileNameRE.FindStringSubmatch(unescaped)
	if m == nil {
		return false
	}
	for _, elem := range strings.Split(m[1], "/") {
		if elem == "." || elem == ".." {
			return false
		}
	}
	return true
}
