// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	gclog "github.com/sdsol/gclient/log"
)

func TestFindWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, DefaultWorkspaceFile), []byte("solutions = []"), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	env := &Environment{WorkspaceFileName: DefaultWorkspaceFile}
	got, err := env.FindWorkspaceRoot(sub)
	if err != nil {
		t.Fatalf("FindWorkspaceRoot returned error: %v", err)
	}
	if got != root {
		t.Errorf("FindWorkspaceRoot = %q, want %q", got, root)
	}
}

func TestFindWorkspaceRootNotFound(t *testing.T) {
	env := &Environment{WorkspaceFileName: DefaultWorkspaceFile}
	if _, err := env.FindWorkspaceRoot(t.TempDir()); err == nil {
		t.Fatal("expected a UsageError")
	} else if _, ok := err.(*UsageError); !ok {
		t.Errorf("err = %T, want *UsageError", err)
	}
}

func TestLoadWorkspace(t *testing.T) {
	root := t.TempDir()
	text := `solutions = [ { "name": "s", "url": "http://svn/s" } ]`
	if err := os.WriteFile(filepath.Join(root, DefaultWorkspaceFile), []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	env := &Environment{WorkspaceFileName: DefaultWorkspaceFile}
	cfg, err := env.LoadWorkspace(root)
	if err != nil {
		t.Fatalf("LoadWorkspace returned error: %v", err)
	}
	if cfg.RootDir != root {
		t.Errorf("RootDir = %q, want %q", cfg.RootDir, root)
	}
	if len(cfg.Solutions) != 1 || cfg.Solutions[0].Name != "s" {
		t.Errorf("Solutions = %+v", cfg.Solutions)
	}
}

func TestLoadWorkspaceDuplicateSolution(t *testing.T) {
	root := t.TempDir()
	text := `solutions = [
  { "name": "s", "url": "http://svn/s1" },
  { "name": "s", "url": "http://svn/s2" },
]`
	if err := os.WriteFile(filepath.Join(root, DefaultWorkspaceFile), []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	env := &Environment{WorkspaceFileName: DefaultWorkspaceFile}
	_, err := env.LoadWorkspace(root)
	if err == nil {
		t.Fatal("expected a ConflictError for the duplicate solution name")
	}
	if ce, ok := err.(*ConflictError); !ok || ce.Kind != ConflictDuplicateSolution {
		t.Errorf("err = %v, want ConflictError{Kind: ConflictDuplicateSolution}", err)
	}
}

func TestDepsForMissingFileIsEmptyManifest(t *testing.T) {
	root := t.TempDir()
	env := &Environment{Err: gclog.New(io.Discard)}
	m, err := env.DepsFor(context.Background(), root, "nonexistent")
	if err != nil {
		t.Fatalf("DepsFor returned error: %v", err)
	}
	if len(m.Deps.order) != 0 {
		t.Errorf("expected an empty manifest, got %+v", m)
	}
}
