package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sdsol/gclient"
	"github.com/sdsol/gclient/internal/scm"
)

func writeWorkspace(t *testing.T, wd, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(wd, gclient.DefaultWorkspaceFile), []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSyncCommandChecksOutSolution(t *testing.T) {
	wd := t.TempDir()
	writeWorkspace(t, wd, `solutions = [ { "name": "s", "url": "http://svn/s" } ]`)

	fake := scm.NewFake()
	env := newTestEnv()
	env.Driver = fake

	cmd := &syncCommand{}
	if err := cmd.Run(env, wd, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(fake.Calls) != 1 || fake.Calls[0].Op != "checkout" {
		t.Fatalf("Calls = %+v, want one checkout", fake.Calls)
	}
}

func TestSyncCommandSurfacesDriverExitCode(t *testing.T) {
	wd := t.TempDir()
	writeWorkspace(t, wd, `solutions = [ { "name": "s", "url": "http://svn/s" } ]`)

	fake := scm.NewFake()
	fake.Fail["checkout"] = 2
	env := newTestEnv()
	env.Driver = fake

	cmd := &syncCommand{}
	err := cmd.Run(env, wd, nil)
	if err == nil {
		t.Fatal("expected an exitCodeError")
	}
	ec, ok := err.(*exitCodeError)
	if !ok {
		t.Fatalf("err = %T, want *exitCodeError", err)
	}
	if ec.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", ec.ExitCode())
	}
}

func TestSyncCommandRevisionPinAppliesToNamedSolutionOnly(t *testing.T) {
	wd := t.TempDir()
	writeWorkspace(t, wd, `solutions = [
  { "name": "s1", "url": "http://svn/s1" },
  { "name": "s2", "url": "http://svn/s2" },
]`)

	fake := scm.NewFake()
	env := newTestEnv()
	env.Driver = fake

	cmd := &syncCommand{revision: "s2@42"}
	if err := cmd.Run(env, wd, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var s1Call, s2Call *scm.Call
	for i := range fake.Calls {
		switch fake.Calls[i].Relpath {
		case "s1":
			s1Call = &fake.Calls[i]
		case "s2":
			s2Call = &fake.Calls[i]
		}
	}
	if s1Call == nil || s2Call == nil {
		t.Fatalf("Calls = %+v, want checkouts for both s1 and s2", fake.Calls)
	}
	if s1Call.URL != "http://svn/s1" {
		t.Errorf("s1 URL = %q, should be unpinned", s1Call.URL)
	}
	if s2Call.URL != "http://svn/s2@42" {
		t.Errorf("s2 URL = %q, want pinned @42", s2Call.URL)
	}
}
