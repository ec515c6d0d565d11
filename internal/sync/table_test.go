package sync

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sdsol/gclient"
)

func TestPlanTableRendersRelpathURLRevision(t *testing.T) {
	plan := gclient.Plan{
		{Relpath: "chrome", Target: gclient.RepoCoord{URL: "https://example/svn/chrome/trunk", Revision: "1234"}},
		{Relpath: "chrome/third_party/zlib", Target: gclient.RepoCoord{URL: "https://example/svn/zlib/trunk"}},
	}

	var buf bytes.Buffer
	if err := PlanTable(&buf, plan); err != nil {
		t.Fatalf("PlanTable returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "chrome") || !strings.Contains(out, "1234") {
		t.Errorf("missing pinned entry in table:\n%s", out)
	}
	if !strings.Contains(out, "zlib/trunk") || !strings.Contains(out, "-") {
		t.Errorf("missing unpinned entry (want a '-' placeholder) in table:\n%s", out)
	}
}

func TestPlanTableEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := PlanTable(&buf, gclient.Plan{}); err != nil {
		t.Fatalf("PlanTable returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "PATH") {
		t.Errorf("expected header even for an empty plan, got %q", buf.String())
	}
}
