// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"keepfs.io/keep"
	"keepfs.io/store/inprocess"
	"keepfs.io/subcmd"
)

const (
	blockA = "1f3870be274f6c49b3e31a0c6728957f+9"
	blockB = "37b51d194a7513e45b56f6524f2d51f2+9"

	rootText = ". " + blockA + " 0:5:f1 5:4:f2\n"
	subText  = "./s1 " + blockB + " 0:5:f1 5:4:f3\n"
)

// runner drives commands against a shared in-memory store.
type runner struct {
	t     *testing.T
	store keep.CollectionStore
}

func newRunner(t *testing.T) *runner {
	store, err := inprocess.New()
	if err != nil {
		t.Fatal(err)
	}
	return &runner{t: t, store: store}
}

// run executes the command with the given standard input. It returns
// standard output, standard error and whether the command failed.
func (r *runner) run(stdin string, args ...string) (stdout, stderr string, failed bool) {
	var out, errs bytes.Buffer
	s := &State{State: subcmd.NewState(args[0])}
	s.Interactive = true
	s.Store = r.store
	s.SetIO(strings.NewReader(stdin), &out, &errs)
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				if rec != "exit" {
					panic(rec)
				}
				failed = true
			}
		}()
		s.getCommand(s.Name)(s, args[1:]...)
	}()
	return out.String(), errs.String(), failed || s.ExitCode != 0
}

// mustRun runs the command and fails the test if it fails.
func (r *runner) mustRun(stdin string, args ...string) string {
	r.t.Helper()
	out, errs, failed := r.run(stdin, args...)
	if failed {
		r.t.Fatalf("keep %s: failed: %s", strings.Join(args, " "), errs)
	}
	return out
}

func (r *runner) expectStored(id, want string) {
	r.t.Helper()
	got, err := r.store.Get(keep.CollectionID(id))
	if err != nil {
		r.t.Fatalf("Get(%q): %v", id, err)
	}
	if got != want {
		r.t.Errorf("collection %q:\ngot  %q\nwant %q", id, got, want)
	}
}

func TestPutGet(t *testing.T) {
	r := newRunner(t)
	r.mustRun(subText+rootText, "put", "c1")
	if got := r.mustRun("", "get", "c1"); got != subText+rootText {
		t.Errorf("get = %q, want %q", got, subText+rootText)
	}
	want := rootText + subText
	for _, flag := range []string{"-n", "--normalize"} {
		if got := r.mustRun("", "get", flag, "c1"); got != want {
			t.Errorf("get %s = %q, want %q", flag, got, want)
		}
	}
}

func TestPutInvalid(t *testing.T) {
	r := newRunner(t)
	for _, text := range []string{
		"no-dot " + blockA + " 0:1:f\n",
		". " + blockA + " 0:10:f\n",
	} {
		_, errs, failed := r.run(text, "put", "bad")
		if !failed {
			t.Errorf("put %q succeeded", text)
			continue
		}
		if !strings.HasPrefix(errs, "keep: put: ") {
			t.Errorf("put %q: error output %q", text, errs)
		}
	}
	if _, err := r.store.Get("bad"); err == nil {
		t.Error("invalid text was stored")
	}
}

func TestGetMissing(t *testing.T) {
	r := newRunner(t)
	if _, _, failed := r.run("", "get", "missing"); !failed {
		t.Error("get of missing collection succeeded")
	}
}

func TestCp(t *testing.T) {
	r := newRunner(t)
	r.mustRun(rootText, "put", "c1")
	r.mustRun("", "cp", "c1", "f1", "./g1")
	r.expectStored("c1", ". "+blockA+" 0:5:f1 5:4:f2 0:5:g1\n")
}

func TestCpFrom(t *testing.T) {
	r := newRunner(t)
	r.mustRun(rootText, "put", "dst")
	r.mustRun(subText, "put", "src")
	r.mustRun("", "cp", "--from", "src", "dst", "./s1", ".")
	r.expectStored("dst", rootText+subText)
	r.expectStored("src", subText)
}

func TestCpMissingSource(t *testing.T) {
	r := newRunner(t)
	r.mustRun(rootText, "put", "c1")
	if _, _, failed := r.run("", "cp", "c1", "nothing", "g1"); !failed {
		t.Error("cp of missing source succeeded")
	}
	r.expectStored("c1", rootText)
}

func TestMv(t *testing.T) {
	r := newRunner(t)
	r.mustRun(rootText+subText, "put", "c1")
	r.mustRun("", "mv", "c1", "./s1", "./s2")
	r.expectStored("c1", rootText+strings.Replace(subText, "./s1", "./s2", 1))
}

func TestRm(t *testing.T) {
	r := newRunner(t)
	r.mustRun(rootText+subText, "put", "c1")
	r.mustRun("", "rm", "c1", "f2", "./s1/f3")
	r.expectStored("c1", ". "+blockA+" 0:5:f1\n./s1 "+blockB+" 0:5:f1\n")
}

func TestRmStream(t *testing.T) {
	r := newRunner(t)
	r.mustRun(rootText+subText, "put", "c1")
	if _, _, failed := r.run("", "rm", "c1", "s1"); !failed {
		t.Error("rm of non-empty stream succeeded")
	}
	r.expectStored("c1", rootText+subText)
	r.mustRun("", "rm", "-r", "c1", "s1")
	r.expectStored("c1", rootText)
}

func TestLs(t *testing.T) {
	r := newRunner(t)
	r.mustRun(subText+rootText, "put", "c1")
	want := "./f1\n./f2\n./s1/f1\n./s1/f3\n"
	if got := r.mustRun("", "ls", "c1"); got != want {
		t.Errorf("ls = %q, want %q", got, want)
	}
}

func TestStat(t *testing.T) {
	r := newRunner(t)
	r.mustRun(rootText+subText, "put", "c1")
	want := "files: 4\nbytes: 18\n"
	if got := r.mustRun("", "stat", "c1"); got != want {
		t.Errorf("stat = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	r := newRunner(t)
	r.mustRun(rootText+subText, "validate")
	_, errs, failed := r.run(". "+blockA+"\n", "validate", "-")
	if !failed {
		t.Fatal("validate of stream without files succeeded")
	}
	if !strings.HasPrefix(errs, "keep: validate: ") {
		t.Errorf("validate error output %q", errs)
	}
}

func TestNormalize(t *testing.T) {
	r := newRunner(t)
	want := rootText + subText
	if got := r.mustRun(subText+rootText, "normalize"); got != want {
		t.Errorf("normalize = %q, want %q", got, want)
	}
}

func TestArgCount(t *testing.T) {
	r := newRunner(t)
	for _, args := range [][]string{
		{"get"},
		{"cp", "c1", "f1"},
		{"mv", "c1", "a", "b", "c"},
		{"rm", "c1"},
		{"ls"},
		{"validate", "a", "b"},
	} {
		if _, errs, failed := r.run("", args...); !failed {
			t.Errorf("keep %v succeeded", args)
		} else if !strings.Contains(errs, "Usage: keep "+args[0]) {
			t.Errorf("keep %v: no usage message in %q", args, errs)
		}
	}
}
