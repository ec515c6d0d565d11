// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scm

import (
	"context"
	"strings"
)

// Call records one driver invocation, for assertions in sync engine tests.
type Call struct {
	Op                                     string
	URL, Relpath, RootDir, Revision, Extra string
	FromRoot, ToRoot                       string
}

// Fake is an in-memory Driver used by internal/sync and resolver tests. It
// never shells out; Info answers are pre-seeded by the test, and every
// mutating call is merely recorded plus optionally scripted to fail.
type Fake struct {
	Infos map[string]*InfoRecord // keyed by target (relpath or URL)
	Fail  map[string]int         // op name -> exit code to return

	Calls []Call
}

func NewFake() *Fake {
	return &Fake{Infos: map[string]*InfoRecord{}, Fail: map[string]int{}}
}

func (f *Fake) Info(ctx context.Context, target, rootDir string) (*InfoRecord, error) {
	return f.Infos[target], nil
}

func (f *Fake) Checkout(ctx context.Context, url, relpath, rootDir string, extraArgs []string) (int, error) {
	f.Calls = append(f.Calls, Call{Op: "checkout", URL: url, Relpath: relpath, RootDir: rootDir})
	return f.Fail["checkout"], nil
}

func (f *Fake) Update(ctx context.Context, relpath, rootDir, revision string, extraArgs []string) (int, error) {
	f.Calls = append(f.Calls, Call{Op: "update", Relpath: relpath, RootDir: rootDir, Revision: revision})
	return f.Fail["update"], nil
}

func (f *Fake) Switch(ctx context.Context, url, relpath, rootDir, revision string, extraArgs []string) (int, error) {
	f.Calls = append(f.Calls, Call{Op: "switch", URL: url, Relpath: relpath, RootDir: rootDir, Revision: revision})
	return f.Fail["switch"], nil
}

func (f *Fake) Relocate(ctx context.Context, fromRoot, toRoot, relpath, rootDir string) (int, error) {
	f.Calls = append(f.Calls, Call{Op: "relocate", FromRoot: fromRoot, ToRoot: toRoot, Relpath: relpath, RootDir: rootDir})
	return f.Fail["relocate"], nil
}

func (f *Fake) StatusDiff(ctx context.Context, verb, relpath, rootDir string, extraArgs []string) (int, error) {
	f.Calls = append(f.Calls, Call{Op: verb, Relpath: relpath, RootDir: rootDir, Extra: strings.Join(extraArgs, " ")})
	return f.Fail[verb], nil
}
