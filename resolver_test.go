// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdsol/gclient/internal/scm"
	gclog "github.com/sdsol/gclient/log"
)

func newTestEnv(driver scm.Driver) *Environment {
	return &Environment{
		Out:    gclog.New(io.Discard),
		Err:    gclog.New(io.Discard),
		Driver: driver,
	}
}

func writeDEPS(t *testing.T, rootDir, solution, text string) {
	t.Helper()
	dir := filepath.Join(rootDir, solution)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "DEPS"), []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveSingleSolutionNoDeps(t *testing.T) {
	root := t.TempDir()
	cfg := &WorkspaceConfig{
		RootDir: root,
		Solutions: []Solution{
			{Name: "s", URL: RepoCoord{URL: "http://svn/s"}, CustomDeps: newOrderedDeps()},
		},
	}
	env := newTestEnv(scm.NewFake())

	plan, err := Resolve(context.Background(), cfg, env, PlatformUnix)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(plan) != 1 || plan[0].Relpath != "s" || plan[0].Target.URL != "http://svn/s" {
		t.Fatalf("plan = %+v", plan)
	}
}

func TestResolveConflictAcrossSolutions(t *testing.T) {
	root := t.TempDir()
	writeDEPS(t, root, "s1", `deps = { "x": "http://a" }`)
	writeDEPS(t, root, "s2", `deps = { "x": "http://b" }`)

	cfg := &WorkspaceConfig{
		RootDir: root,
		Solutions: []Solution{
			{Name: "s1", URL: RepoCoord{URL: "http://svn/s1"}, CustomDeps: newOrderedDeps()},
			{Name: "s2", URL: RepoCoord{URL: "http://svn/s2"}, CustomDeps: newOrderedDeps()},
		},
	}
	env := newTestEnv(scm.NewFake())

	_, err := Resolve(context.Background(), cfg, env, PlatformUnix)
	if err == nil {
		t.Fatal("expected a ConflictError")
	}
	ce, ok := err.(*ConflictError)
	if !ok {
		t.Fatalf("err = %T, want *ConflictError", err)
	}
	if ce.Kind != ConflictDependencyVersions {
		t.Errorf("Kind = %d, want ConflictDependencyVersions", ce.Kind)
	}
	if want := `solutions have conflicting versions of dependency "x"`; ce.Detail != want {
		t.Errorf("Detail = %q, want %q", ce.Detail, want)
	}
}

func TestResolveCustomDepsExclude(t *testing.T) {
	root := t.TempDir()
	writeDEPS(t, root, "s", `deps = { "x": "http://x" }`)

	custom := newOrderedDeps()
	custom.set("x", excludedDep())
	cfg := &WorkspaceConfig{
		RootDir: root,
		Solutions: []Solution{
			{Name: "s", URL: RepoCoord{URL: "http://svn/s"}, CustomDeps: custom},
		},
	}
	env := newTestEnv(scm.NewFake())

	plan, err := Resolve(context.Background(), cfg, env, PlatformUnix)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(plan) != 1 || plan[0].Relpath != "s" {
		t.Fatalf("plan = %+v, want only the solution itself", plan)
	}
}

func TestResolveRelativeDEPSEntry(t *testing.T) {
	root := t.TempDir()
	writeDEPS(t, root, "s", `deps = { "dep": "/trunk/shared" }`)

	fake := scm.NewFake()
	fake.Infos["http://host/svn/s"] = &scm.InfoRecord{RepoRoot: "http://host/svn"}

	cfg := &WorkspaceConfig{
		RootDir: root,
		Solutions: []Solution{
			{Name: "s", URL: RepoCoord{URL: "http://host/svn/s"}, CustomDeps: newOrderedDeps()},
		},
	}
	env := newTestEnv(fake)

	plan, err := Resolve(context.Background(), cfg, env, PlatformUnix)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	var dep *ResolvedEntry
	for i := range plan {
		if plan[i].Relpath == "dep" {
			dep = &plan[i]
		}
	}
	if dep == nil {
		t.Fatal("plan has no 'dep' entry")
	}
	if want := "http://host/svn/trunk/shared"; dep.Target.URL != want {
		t.Errorf("dep URL = %q, want %q", dep.Target.URL, want)
	}
}

func TestResolveIndirectionOneHopOnly(t *testing.T) {
	root := t.TempDir()
	writeDEPS(t, root, "s1", `deps = { "x": From("s2") }`)
	writeDEPS(t, root, "s2", `deps = { "x": From("s3") }`)
	writeDEPS(t, root, "s3", `deps = { "x": "http://x" }`)

	cfg := &WorkspaceConfig{
		RootDir: root,
		Solutions: []Solution{
			{Name: "s1", URL: RepoCoord{URL: "http://svn/s1"}, CustomDeps: newOrderedDeps()},
		},
	}
	env := newTestEnv(scm.NewFake())

	_, err := Resolve(context.Background(), cfg, env, PlatformUnix)
	if err == nil {
		t.Fatal("expected an error: multi-hop indirection is unsupported")
	}
	if _, ok := err.(*ConflictError); !ok {
		t.Errorf("err = %T, want *ConflictError", err)
	}
}

func TestResolveIndirectionToNonSolutionModule(t *testing.T) {
	root := t.TempDir()
	writeDEPS(t, root, "s1", `deps = { "x": From("ext") }`)
	writeDEPS(t, root, "ext", `deps = { "x": "/trunk/shared" }`)

	fake := scm.NewFake()
	fake.Infos["ext"] = &scm.InfoRecord{RepoRoot: "http://host/svn"}

	cfg := &WorkspaceConfig{
		RootDir: root,
		Solutions: []Solution{
			{Name: "s1", URL: RepoCoord{URL: "http://svn/s1"}, CustomDeps: newOrderedDeps()},
		},
	}
	env := newTestEnv(fake)

	plan, err := Resolve(context.Background(), cfg, env, PlatformUnix)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	var x *ResolvedEntry
	for i := range plan {
		if plan[i].Relpath == "x" {
			x = &plan[i]
		}
	}
	if x == nil {
		t.Fatal("plan has no 'x' entry")
	}
	if want := "http://host/svn/trunk/shared"; x.Target.URL != want {
		t.Errorf("x URL = %q, want %q", x.Target.URL, want)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeDEPS(t, root, "s", `deps = { "b": "http://b", "a": "http://a", "c": "http://c" }`)

	cfg := &WorkspaceConfig{
		RootDir: root,
		Solutions: []Solution{
			{Name: "s", URL: RepoCoord{URL: "http://svn/s"}, CustomDeps: newOrderedDeps()},
		},
	}
	env := newTestEnv(scm.NewFake())

	plan1, err := Resolve(context.Background(), cfg, env, PlatformUnix)
	if err != nil {
		t.Fatal(err)
	}
	plan2, err := Resolve(context.Background(), cfg, env, PlatformUnix)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan1) != len(plan2) {
		t.Fatalf("plan lengths differ: %d vs %d", len(plan1), len(plan2))
	}
	for i := range plan1 {
		if plan1[i] != plan2[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, plan1[i], plan2[i])
		}
	}
	// Deps after the solution must be lexicographically sorted.
	for i := 2; i < len(plan1); i++ {
		if plan1[i-1].Relpath > plan1[i].Relpath {
			t.Errorf("plan not sorted: %q before %q", plan1[i-1].Relpath, plan1[i].Relpath)
		}
	}
}
