// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest decodes Keep collection manifest text.
//
// A manifest holds one line per stream:
//
//	<stream name> <locator>... <file token>...\n
//
// where each file token has the form "start:length:name". Stream and
// file names are escaped: a backslash is written as "\\" and each
// whitespace byte as a three-digit octal escape such as "\040".
package manifest // import "keepfs.io/manifest"

import (
	"strconv"
	"strings"

	"keepfs.io/errors"
	"keepfs.io/locator"
)

// A Stream is one decoded manifest line.
type Stream struct {
	// Name is the unescaped stream name, such as "." or "./dir".
	Name string
	// Locators are the block locator tokens, in order.
	Locators []string
	// Files are the file tokens, still escaped.
	Files []string
}

// Manifest is a read-only view of manifest text.
type Manifest struct {
	text  string
	files []File // Computed on first use.
}

// New returns a Manifest for the given text. The text is not
// validated; see Validate.
func New(text string) *Manifest {
	return &Manifest{text: text}
}

// Text returns the manifest text.
func (m *Manifest) Text() string {
	return m.text
}

// Streams decodes every non-blank line of the manifest. Each call
// decodes the text afresh.
func (m *Manifest) Streams() []Stream {
	var streams []Stream
	m.EachStream(func(s Stream) bool {
		streams = append(streams, s)
		return true
	})
	return streams
}

// EachStream calls fn for each non-blank line of the manifest, in order,
// until fn returns false. A token is a locator if it parses as one and
// no file token has been seen yet on the line.
func (m *Manifest) EachStream(fn func(Stream) bool) {
	for _, line := range lines(m.text) {
		tokens := fields(line)
		if len(tokens) == 0 {
			continue
		}
		s := Stream{Name: Unescape(tokens[0])}
		rest := tokens[1:]
		for len(rest) > 0 && locator.Valid(rest[0]) {
			s.Locators = append(s.Locators, rest[0])
			rest = rest[1:]
		}
		if len(rest) > 0 {
			s.Files = rest
		}
		if !fn(s) {
			return
		}
	}
}

// SplitFileToken splits a file token "start:length:name" into its parts
// and unescapes the name. The name may itself contain colons.
func SplitFileToken(tok string) (start, length int64, name string, err error) {
	const op = "manifest.SplitFileToken"
	parts := strings.SplitN(tok, ":", 3)
	if len(parts) != 3 {
		return 0, 0, "", errors.E(op, errors.Syntax, errors.Errorf("invalid file token %q", tok))
	}
	start, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil || start < 0 {
		return 0, 0, "", errors.E(op, errors.Syntax, errors.Errorf("invalid start in file token %q", tok))
	}
	length, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || length < 0 {
		return 0, 0, "", errors.E(op, errors.Syntax, errors.Errorf("invalid length in file token %q", tok))
	}
	return start, length, Unescape(parts[2]), nil
}

// Escape escapes a stream or file name for use in manifest text.
func Escape(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case isSpace(c):
			b.WriteByte('\\')
			b.WriteByte('0' + c>>6)
			b.WriteByte('0' + (c>>3)&7)
			b.WriteByte('0' + c&7)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Unescape reverses Escape. It decodes "\\" and any three-digit octal
// escape up to \377; every other backslash is left as is.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		if s[i+1] == '\\' {
			b.WriteByte('\\')
			i++
			continue
		}
		if i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) && s[i+1] <= '3' {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isOctal(c byte) bool {
	return '0' <= c && c <= '7'
}

// isSpace reports whether c is ASCII whitespace.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// lines splits text into lines, dropping the newlines.
func lines(text string) []string {
	if text == "" {
		return nil
	}
	ls := strings.Split(text, "\n")
	if ls[len(ls)-1] == "" {
		ls = ls[:len(ls)-1]
	}
	return ls
}

// fields splits a line on runs of ASCII whitespace. Bytes above 0x7f
// are never separators, so UTF-8 names pass through intact.
func fields(line string) []string {
	var toks []string
	start := -1
	for i := 0; i < len(line); i++ {
		if isSpace(line[i]) {
			if start >= 0 {
				toks = append(toks, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, line[start:])
	}
	return toks
}
