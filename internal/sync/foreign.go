// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sync

import (
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// ScanForeignCheckouts walks rootDir once, the way the teacher's pkgtree
// scanner uses godirwalk.Walk to enumerate a source tree in a single
// pass instead of stat-ing every candidate path individually, and
// returns every directory (relative to rootDir) that contains a .git
// entry. It does not descend into a directory once it is identified as
// a foreign checkout — there is no reason to look for nested git repos
// inside one.
//
// It is purely a diagnostic helper: it reports foreign checkouts
// anywhere under rootDir, including outside any relpath the current Plan
// still knows about (step 1 of §4.5 handles the in-Plan case on its
// own). It never feeds back into the state machine's decisions, and no
// command in cmd/gclient calls it.
func ScanForeignCheckouts(rootDir string) ([]string, error) {
	var found []string

	err := godirwalk.Walk(rootDir, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path == rootDir {
				return nil
			}
			isDir, err := de.IsDirOrSymlinkToDir()
			if err != nil || !isDir {
				return nil
			}
			if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
				rel, err := filepath.Rel(rootDir, path)
				if err != nil {
					return err
				}
				found = append(found, rel)
				return filepath.SkipDir
			}
			return nil
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s for foreign checkouts", rootDir)
	}
	return found, nil
}
