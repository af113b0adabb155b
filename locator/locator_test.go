// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package locator

import (
	"reflect"
	"testing"

	"keepfs.io/errors"
)

const emptyDigest = "d41d8cd98f00b204e9800998ecf8427e"

type parseTest struct {
	tok     string
	ok      bool
	size    int64
	hasSize bool
	hints   []string
}

var parseTests = []parseTest{
	{"", false, 0, false, nil},
	{"+0", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427+0", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e0", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e0+0", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0 ", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0\n", false, 0, false, nil},
	{" d41d8cd98f00b204e9800998ecf8427e+0", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+K+0", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0+0", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e++", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0+K+", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0++K", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0+K++", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0+K++Z", false, 0, false, nil},
	{"D41D8CD98F00B204E9800998ECF8427E+0", false, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e", true, 0, false, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0", true, 0, true, nil},
	{"d41d8cd98f00b204e9800998ecf8427e+0+Fizz+Buzz", true, 0, true, []string{"Fizz", "Buzz"}},
	{"d41d8cd98f00b204e9800998ecf8427e+Fizz+Buzz", true, 0, false, []string{"Fizz", "Buzz"}},
	{"d41d8cd98f00b204e9800998ecf8427e+0+Ad41d8cd98f00b204e9800998ecf8427e00000000+Foo", true, 0, true,
		[]string{"Ad41d8cd98f00b204e9800998ecf8427e00000000", "Foo"}},
	{"d41d8cd98f00b204e9800998ecf8427e+Ad41d8cd98f00b204e9800998ecf8427e00000000+Foo", true, 0, false,
		[]string{"Ad41d8cd98f00b204e9800998ecf8427e00000000", "Foo"}},
	{"d41d8cd98f00b204e9800998ecf8427e+0+Z", true, 0, true, []string{"Z"}},
	{"d41d8cd98f00b204e9800998ecf8427e+Z", true, 0, false, []string{"Z"}},
	{"365f83f5f808896ec834c8b595288735+2310+K@qr1hi+Af0c9a66381f3b028677411926f0be1c6282fe67c@542b5ddf", true, 2310, true,
		[]string{"K@qr1hi", "Af0c9a66381f3b028677411926f0be1c6282fe67c@542b5ddf"}},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		loc, err := Parse(test.tok)
		if !test.ok {
			if err == nil {
				t.Errorf("Parse(%q) = %v; expected error", test.tok, loc)
			} else if !errors.Is(errors.Syntax, err) {
				t.Errorf("Parse(%q) error %q is not a syntax error", test.tok, err)
			}
			if Valid(test.tok) {
				t.Errorf("Valid(%q) = true", test.tok)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", test.tok, err)
			continue
		}
		if loc.Hash != test.tok[:32] {
			t.Errorf("Parse(%q).Hash = %q", test.tok, loc.Hash)
		}
		if loc.HasSize() != test.hasSize || loc.Size != test.size {
			t.Errorf("Parse(%q) size = %d (has %t); want %d (has %t)", test.tok, loc.Size, loc.HasSize(), test.size, test.hasSize)
		}
		if !reflect.DeepEqual(loc.Hints, test.hints) {
			t.Errorf("Parse(%q).Hints = %q; want %q", test.tok, loc.Hints, test.hints)
		}
		if got := loc.String(); got != test.tok {
			t.Errorf("Parse(%q).String() = %q", test.tok, got)
		}
	}
}

func TestTryParse(t *testing.T) {
	if _, ok := TryParse("0:3:foo.txt"); ok {
		t.Error("TryParse accepted a file token")
	}
	loc, ok := TryParse("acbd18db4cc2f85cedef654fccc4a4d8+3")
	if !ok {
		t.Fatal("TryParse rejected a valid locator")
	}
	if loc.Size != 3 {
		t.Errorf("size = %d; want 3", loc.Size)
	}
}

func TestIsEmptyBlob(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{emptyDigest + "+0", true},
		{emptyDigest, true},
		{emptyDigest + "+0+Xyzzy", true},
		{emptyDigest + "0", false},
		{"acbd18db4cc2f85cedef654fccc4a4d8+3", false},
		{"acbd18db4cc2f85cedef654fccc4a4d8+0", false},
		{emptyDigest + "+1", false},
	}
	for _, test := range tests {
		if got := IsEmptyBlob(test.tok); got != test.want {
			t.Errorf("IsEmptyBlob(%q) = %t; want %t", test.tok, got, test.want)
		}
	}
}

func TestSignature(t *testing.T) {
	const sig = "Af0c9a66381f3b028677411926f0be1c6282fe67c@542b5ddf"
	loc, err := Parse("365f83f5f808896ec834c8b595288735+2310+K@qr1hi+" + sig)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := loc.Signature()
	if !ok || got != sig {
		t.Errorf("Signature() = %q, %t; want %q", got, ok, sig)
	}

	unsigned := loc.WithoutSignature()
	if _, ok := unsigned.Signature(); ok {
		t.Error("WithoutSignature left a signature")
	}
	if want := "365f83f5f808896ec834c8b595288735+2310+K@qr1hi"; unsigned.String() != want {
		t.Errorf("WithoutSignature() = %q; want %q", unsigned, want)
	}
	// The original is untouched.
	if len(loc.Hints) != 2 {
		t.Errorf("WithoutSignature modified the receiver: %q", loc.Hints)
	}
}

func TestStripHints(t *testing.T) {
	loc, err := Parse(emptyDigest + "+0+K@xyzzy+Afoo")
	if err != nil {
		t.Fatal(err)
	}
	stripped := loc.StripHints()
	if want := emptyDigest + "+0"; stripped.String() != want {
		t.Errorf("StripHints() = %q; want %q", stripped, want)
	}
	if len(loc.Hints) != 2 {
		t.Errorf("StripHints modified the receiver: %q", loc.Hints)
	}
	loc.StripHintsInPlace()
	if len(loc.Hints) != 0 {
		t.Errorf("StripHintsInPlace left hints: %q", loc.Hints)
	}

	bare, err := Parse(emptyDigest + "+K@xyzzy")
	if err != nil {
		t.Fatal(err)
	}
	if got := bare.StripHints().String(); got != emptyDigest {
		t.Errorf("StripHints() without size = %q; want %q", got, emptyDigest)
	}
}

func TestNew(t *testing.T) {
	loc := New("acbd18db4cc2f85cedef654fccc4a4d8", 3, "K@zzzzz")
	if want := "acbd18db4cc2f85cedef654fccc4a4d8+3+K@zzzzz"; loc.String() != want {
		t.Errorf("New(...).String() = %q; want %q", loc, want)
	}
}
