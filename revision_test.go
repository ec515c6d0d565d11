// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import "testing"

func testPlan() Plan {
	return Plan{
		{Relpath: "s1", Target: RepoCoord{URL: "http://svn/s1", Revision: "10"}},
		{Relpath: "s2", Target: RepoCoord{URL: "http://svn/s2", Revision: "20"}},
		{Relpath: "dep", Target: RepoCoord{URL: "http://svn/dep", Revision: "5"}},
	}
}

func testCfg() *WorkspaceConfig {
	return &WorkspaceConfig{
		Solutions: []Solution{
			{Name: "s1"},
			{Name: "s2"},
		},
	}
}

func TestApplyRevisionPinNoOption(t *testing.T) {
	plan := testPlan()
	got := ApplyRevisionPin(plan, testCfg(), "")
	for i := range got {
		if got[i] != plan[i] {
			t.Errorf("entry %d changed with empty revisionOpt: %+v vs %+v", i, got[i], plan[i])
		}
	}
}

func TestApplyRevisionPinAllSolutions(t *testing.T) {
	got := ApplyRevisionPin(testPlan(), testCfg(), "99")
	want := map[string]string{"s1": "99", "s2": "99", "dep": "5"}
	for _, e := range got {
		if e.Target.Revision != want[e.Relpath] {
			t.Errorf("%s revision = %q, want %q", e.Relpath, e.Target.Revision, want[e.Relpath])
		}
	}
}

func TestApplyRevisionPinSingleSolution(t *testing.T) {
	got := ApplyRevisionPin(testPlan(), testCfg(), "s2@99")
	want := map[string]string{"s1": "10", "s2": "99", "dep": "5"}
	for _, e := range got {
		if e.Target.Revision != want[e.Relpath] {
			t.Errorf("%s revision = %q, want %q", e.Relpath, e.Target.Revision, want[e.Relpath])
		}
	}
}
