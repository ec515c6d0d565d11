// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sync

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sdsol/gclient"
)

// PlanTable renders a resolved Plan as a human-readable table of
// relpath, target URL, and pinned revision, the way the teacher's
// `cmd/dep status` renders a solved lock via text/tabwriter.
func PlanTable(w io.Writer, plan gclient.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tURL\tREVISION")
	for _, e := range plan {
		rev := e.Target.Revision
		if rev == "" {
			rev = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Relpath, e.Target.URL, rev)
	}
	return tw.Flush()
}
