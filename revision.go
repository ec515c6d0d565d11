// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import "strings"

// ApplyRevisionPin rewrites solution targets in plan according to a
// --revision option of the form "REV" (pins every solution) or
// "SOLUTION@REV" (pins only the named solution). Dependency revisions,
// which are never affected, are left exactly as the Resolver produced
// them (§4.5).
func ApplyRevisionPin(plan Plan, cfg *WorkspaceConfig, revisionOpt string) Plan {
	if revisionOpt == "" {
		return plan
	}

	solNames := make(map[string]bool, len(cfg.Solutions))
	for _, s := range cfg.Solutions {
		solNames[s.Name] = true
	}

	onlySolution, rev := "", revisionOpt
	if i := strings.Index(revisionOpt, "@"); i >= 0 {
		onlySolution, rev = revisionOpt[:i], revisionOpt[i+1:]
	}

	out := make(Plan, len(plan))
	for i, e := range plan {
		if !solNames[e.Relpath] || (onlySolution != "" && e.Relpath != onlySolution) {
			out[i] = e
			continue
		}
		e.Target = e.Target.WithRevision(rev)
		out[i] = e
	}
	return out
}
