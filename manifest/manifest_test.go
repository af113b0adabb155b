// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"reflect"
	"sort"
	"testing"

	"keepfs.io/errors"
)

const (
	blockA = "acbd18db4cc2f85cedef654fccc4a4d8+9"
	blockB = "37b51d194a7513e45b56f6524f2d51f2+12"
	blockC = "73feffa4b7f6bb68e44cf984c85f6e88+6"

	simplest = ". " + blockA + " 0:9:simple.txt\n"

	multilevel = ". " + blockA + " 0:3:file1 3:3:file2 6:3:file3\n" +
		"./dir1 " + blockA + " 0:3:file1 3:3:file2 6:3:file3\n" +
		"./dir1/subdir " + blockA + " 0:3:file1 3:3:file2 6:3:file3\n"

	multiblock = ". " + blockA + " " + blockB + " 0:2:repfile 2:4:uniqfile 6:3:repfile 9:7:uniqfile2\n" +
		"./s1 " + blockC + " 0:3:repfile 3:3:uniqfile\n"

	dirsInFilenames = ". " + blockA + " 0:3:file1 3:3:dir1/file1 6:3:dir1/dir2/file1\n"
)

func TestStreams(t *testing.T) {
	m := New(simplest)
	streams := m.Streams()
	want := []Stream{{Name: ".", Locators: []string{blockA}, Files: []string{"0:9:simple.txt"}}}
	if !reflect.DeepEqual(streams, want) {
		t.Fatalf("Streams() = %+v; want %+v", streams, want)
	}
	// Restartable.
	if again := m.Streams(); !reflect.DeepEqual(again, streams) {
		t.Errorf("second Streams() = %+v; want %+v", again, streams)
	}
}

func TestStreamsMultilevel(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range New(multilevel).Streams() {
		if seen[s.Name] {
			t.Errorf("stream %q yielded twice", s.Name)
		}
		seen[s.Name] = true
		if len(s.Files) != 3 {
			t.Errorf("stream %q has %d files; want 3", s.Name, len(s.Files))
		}
	}
	if len(seen) != 3 {
		t.Errorf("got %d streams; want 3", len(seen))
	}
}

func TestStreamsEmpty(t *testing.T) {
	m := New("")
	if s := m.Streams(); len(s) != 0 {
		t.Errorf("Streams() = %+v; want none", s)
	}
	specs, err := m.FileSpecs()
	if err != nil || len(specs) != 0 {
		t.Errorf("FileSpecs() = %+v, %v; want none", specs, err)
	}
}

func TestStreamsBlankLine(t *testing.T) {
	m := New(". " + blockA + " 0:1:file1 1:2:file2\n\n. " + blockA + " 3:3:file3 6:4:file4\n")
	streams := m.Streams()
	if len(streams) != 2 {
		t.Fatalf("got %d streams; want 2", len(streams))
	}
	if want := []string{"3:3:file3", "6:4:file4"}; !reflect.DeepEqual(streams[1].Files, want) {
		t.Errorf("second stream files = %q; want %q", streams[1].Files, want)
	}
}

func TestStreamsEscapes(t *testing.T) {
	m := New(`./dir\040name ` + blockA + ` 0:9:file\\name\011\\here.txt` + "\n")
	streams := m.Streams()
	if len(streams) != 1 {
		t.Fatalf("got %d streams; want 1", len(streams))
	}
	if streams[0].Name != "./dir name" {
		t.Errorf("stream name = %q", streams[0].Name)
	}
	_, _, name, err := SplitFileToken(streams[0].Files[0])
	if err != nil {
		t.Fatal(err)
	}
	if want := "file\\name\t\\here.txt"; name != want {
		t.Errorf("file name = %q; want %q", name, want)
	}
}

func TestStreamsNonASCII(t *testing.T) {
	// U+00A0 is not a separator.
	m := New(". " + blockA + " 0:9:café\u00a0menu\n")
	streams := m.Streams()
	if len(streams) != 1 || len(streams[0].Files) != 1 {
		t.Fatalf("Streams() = %+v", streams)
	}
}

func TestSplitFileToken(t *testing.T) {
	tests := []struct {
		tok    string
		start  int64
		length int64
		name   string
	}{
		{"0:9:simple.txt", 0, 9, "simple.txt"},
		{"3:0:file:test.txt", 3, 0, "file:test.txt"},
		{`0:9:a\040a.txt`, 0, 9, "a a.txt"},
		{`10:5:dir\057file`, 10, 5, "dir/file"},
	}
	for _, test := range tests {
		start, length, name, err := SplitFileToken(test.tok)
		if err != nil {
			t.Errorf("SplitFileToken(%q): %v", test.tok, err)
			continue
		}
		if start != test.start || length != test.length || name != test.name {
			t.Errorf("SplitFileToken(%q) = %d, %d, %q; want %d, %d, %q",
				test.tok, start, length, name, test.start, test.length, test.name)
		}
	}
	for _, bad := range []string{"zzz", "0:", "a:1:x", "1:b:x", "-1:1:x"} {
		if _, _, _, err := SplitFileToken(bad); !errors.Is(errors.Syntax, err) {
			t.Errorf("SplitFileToken(%q) error = %v; want syntax error", bad, err)
		}
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name, escaped string
	}{
		{"plain.txt", "plain.txt"},
		{"a b", `a\040b`},
		{"tab\there", `tab\011here`},
		{"new\nline\r", `new\012line\015`},
		{`back\slash`, `back\\slash`},
		{"café", "café"},
	}
	for _, test := range tests {
		if got := Escape(test.name); got != test.escaped {
			t.Errorf("Escape(%q) = %q; want %q", test.name, got, test.escaped)
		}
		if got := Unescape(test.escaped); got != test.name {
			t.Errorf("Unescape(%q) = %q; want %q", test.escaped, got, test.name)
		}
	}
}

func TestUnescapePassThrough(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{`foo\r`, `foo\r`},
		{`foo\`, `foo\`},
		{`foo\88`, `foo\88`},
		{`foo\444`, `foo\444`},
		{`\134057foo`, `\057foo`},
		{`\\\\`, `\\`},
	}
	for _, test := range tests {
		if got := Unescape(test.in); got != test.out {
			t.Errorf("Unescape(%q) = %q; want %q", test.in, got, test.out)
		}
	}
}

func TestFiles(t *testing.T) {
	tests := []struct {
		text  string
		files []File
	}{
		{simplest, []File{{".", "simple.txt", 9}}},
		{". " + blockA + " 0:9:file:test.txt\n", []File{{".", "file:test.txt", 9}}},
		{". " + blockA + ` 0:9:a\040a.txt` + "\n", []File{{".", "a a.txt", 9}}},
	}
	for _, test := range tests {
		files, err := New(test.text).Files()
		if err != nil {
			t.Errorf("Files(%q): %v", test.text, err)
			continue
		}
		if !reflect.DeepEqual(files, test.files) {
			t.Errorf("Files(%q) = %+v; want %+v", test.text, files, test.files)
		}
	}
}

func TestFilesMultiblock(t *testing.T) {
	files, err := New(multiblock).Files()
	if err != nil {
		t.Fatal(err)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Stream != files[j].Stream {
			return files[i].Stream < files[j].Stream
		}
		return files[i].Name < files[j].Name
	})
	want := []File{
		{".", "repfile", 5},
		{".", "uniqfile", 4},
		{".", "uniqfile2", 7},
		{"./s1", "repfile", 3},
		{"./s1", "uniqfile", 3},
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files() = %+v; want %+v", files, want)
	}
}

func TestFilesDirsInNames(t *testing.T) {
	files, err := New(dirsInFilenames).Files()
	if err != nil {
		t.Fatal(err)
	}
	want := []File{
		{".", "file1", 3},
		{"./dir1", "file1", 3},
		{"./dir1/dir2", "file1", 3},
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files() = %+v; want %+v", files, want)
	}
}

func TestFilesBogus(t *testing.T) {
	_, err := New(". zzz 0:\n").Files()
	if !errors.Is(errors.Syntax, err) {
		t.Errorf("Files() error = %v; want syntax error", err)
	}
}

func TestFilesCount(t *testing.T) {
	tests := []struct {
		text  string
		count int
		size  int64
	}{
		{"", 0, 0},
		{"./empty_dir d41d8cd98f00b204e9800998ecf8427e+0 0:0:\\056\n", 0, 0},
		{simplest, 1, 9},
		{multiblock, 5, 22},
		{". " + blockA + " 3:3:f1 5:3:f2\n", 2, 6},
	}
	for _, test := range tests {
		m := New(test.text)
		count, err := m.FilesCount()
		if err != nil || count != test.count {
			t.Errorf("FilesCount(%q) = %d, %v; want %d", test.text, count, err, test.count)
		}
		size, err := m.FilesSize()
		if err != nil || size != test.size {
			t.Errorf("FilesSize(%q) = %d, %v; want %d", test.text, size, err, test.size)
		}
	}
}

func TestMinimumAndExactFileCount(t *testing.T) {
	tests := []struct {
		text    string
		n       int
		minimum bool
		exact   bool
	}{
		{simplest, 0, true, false},
		{simplest, 1, true, true},
		{simplest, 2, false, false},
		{multiblock, 2, true, false},
		{multiblock, 4, true, false},
		{multiblock, 5, true, true},
		{multiblock, 6, false, false},
	}
	for _, test := range tests {
		// Fresh manifests so the incremental count is exercised.
		min, err := New(test.text).MinimumFileCount(test.n)
		if err != nil || min != test.minimum {
			t.Errorf("MinimumFileCount(%d) = %t, %v; want %t", test.n, min, err, test.minimum)
		}
		exact, err := New(test.text).ExactFileCount(test.n)
		if err != nil || exact != test.exact {
			t.Errorf("ExactFileCount(%d) = %t, %v; want %t", test.n, exact, err, test.exact)
		}
	}
}

func TestHasFile(t *testing.T) {
	m := New(multiblock)
	tests := []struct {
		stream, name string
		want         bool
	}{
		{".", "repfile", true},
		{"./s1", "repfile", true},
		{"./s1", "uniqfile2", false},
		{"./s2", "repfile", false},
	}
	for _, test := range tests {
		got, err := m.HasFile(test.stream, test.name)
		if err != nil || got != test.want {
			t.Errorf("HasFile(%q, %q) = %t, %v; want %t", test.stream, test.name, got, err, test.want)
		}
		path := test.stream + "/" + test.name
		got, err = m.HasPath(path)
		if err != nil || got != test.want {
			t.Errorf("HasPath(%q) = %t, %v; want %t", path, got, err, test.want)
		}
	}

	if ok, _ := New("").HasFile("", ""); ok {
		t.Error("empty manifest has a file")
	}

	spaces := New(". " + blockA + ` 0:9:a\040a.txt` + "\n")
	if ok, _ := spaces.HasPath("./a a.txt"); !ok {
		t.Error(`HasPath("./a a.txt") = false`)
	}
	if ok, _ := spaces.HasPath(`a\040\141`); ok {
		t.Error(`HasPath found an escaped name`)
	}
}

func TestHasPathForms(t *testing.T) {
	m := New(". " + blockA + " 0:9:f\n./dir " + blockA + " 0:9:g\n")
	tests := []struct {
		path string
		want bool
	}{
		{"f", true},
		{"./f", true},
		{"dir/g", true},
		{"./dir/g", true},
		{"g", false},
		{"/g", false},
		{"dir", false},
		{".", false},
	}
	for _, test := range tests {
		got, err := m.HasPath(test.path)
		if err != nil || got != test.want {
			t.Errorf("HasPath(%q) = %t, %v; want %t", test.path, got, err, test.want)
		}
	}
	if _, err := m.HasPath(""); !errors.Is(errors.Syntax, err) {
		t.Errorf("HasPath(\"\") error = %v; want Syntax", err)
	}
}
