// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sync implements the C5 Sync Engine: the state machine that
// turns a Plan into a sequence of SCM Driver operations, the way the
// teacher's gps.SafeWriter turns a solve result into a sequence of
// filesystem writes.
package sync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sdsol/gclient"
	"github.com/sdsol/gclient/internal/journal"
	"github.com/sdsol/gclient/internal/scm"
	gclog "github.com/sdsol/gclient/log"
)

// Options mirrors the recognized flags of `sync`/`update` (§4.5).
type Options struct {
	// Force reissues Update even when the working copy already matches
	// the target revision.
	Force bool
	// Relocate permits Relocate when a target moves to a different
	// repository root; without it, a root change is only a SkipNotice.
	Relocate bool
	// ExtraArgs is forwarded verbatim to the driver for every operation
	// (the `-- <extra args>` tail of the CLI surface).
	ExtraArgs []string
	Verbose   bool
}

// Engine drives Driver against RootDir and maintains the entries
// journal for orphan detection.
type Engine struct {
	Driver  scm.Driver
	RootDir string
	Out     *gclog.Logger
}

// Apply runs the per-entry state machine of §4.5 over every entry in
// plan, in the order the Resolver produced it (solutions first, then
// deps lexicographically — §5 ordering guarantee 1 and 2), then performs
// orphan detection against the entries journal and rewrites it.
//
// The returned exit code is the first nonzero per-entry code observed;
// later nonzero codes are logged but never overwrite it (§4.5 step 4).
func (e *Engine) Apply(ctx context.Context, plan gclient.Plan, opts Options) (int, error) {
	aggregated := 0
	attempted := make([]string, 0, len(plan))

	for _, entry := range plan {
		attempted = append(attempted, entry.Relpath)
		code, err := e.applyOne(ctx, entry, opts)
		if err != nil {
			return aggregated, err
		}
		if code != 0 {
			e.logf("%s: exit code %d", entry.Relpath, code)
			if aggregated == 0 {
				aggregated = code
			}
		}
	}

	if err := e.detectOrphans(attempted); err != nil {
		return aggregated, err
	}

	return aggregated, nil
}

// applyOne runs steps 1-3 of §4.5 for a single resolved entry.
func (e *Engine) applyOne(ctx context.Context, entry gclient.ResolvedEntry, opts Options) (int, error) {
	local := filepath.Join(e.RootDir, entry.Relpath)

	// Step 1: foreign-VCS guard.
	if _, err := os.Stat(filepath.Join(local, ".git")); err == nil {
		e.logf("found .git directory; skipping %s", entry.Relpath)
		return 0, nil
	}

	// Step 2: absent working copy.
	if _, err := os.Stat(local); os.IsNotExist(err) {
		return e.Driver.Checkout(ctx, entry.Target.String(), entry.Relpath, e.RootDir, opts.ExtraArgs)
	}

	// Step 3: existing working copy.
	from, err := e.Driver.Info(ctx, entry.Relpath, e.RootDir)
	if err != nil {
		return 0, err
	}
	if from == nil || from.URL == "" {
		return 0, &gclient.MetadataError{Relpath: entry.Relpath, Cause: errors.New("Info returned no URL")}
	}

	fromURL, fromRev, fromRoot, fromUUID := from.URL, from.Revision, from.RepoRoot, from.RepoUUID
	toURL, toRev := entry.Target.URL, entry.Target.Revision

	if fromURL != toURL {
		to, err := e.Driver.Info(ctx, toURL, e.RootDir)
		if err != nil {
			return 0, err
		}
		var toRoot, toUUID string
		if to != nil {
			toRoot, toUUID = to.RepoRoot, to.RepoUUID
		}

		if toRoot != "" && fromRoot != "" && fromRoot != toRoot {
			switch {
			case fromUUID != toUUID:
				e.logf("can not relocate %s to URL with different Repository UUID", entry.Relpath)
				return 0, nil
			case !opts.Relocate:
				e.logf("use the --relocate option to switch %s", entry.Relpath)
				return 0, nil
			default:
				code, err := e.Driver.Relocate(ctx, fromRoot, toRoot, entry.Relpath, e.RootDir)
				if err != nil || code != 0 {
					return code, err
				}
				fromURL = replaceRoot(fromURL, fromRoot, toRoot)
			}
		}
	}

	switch {
	case fromURL == toURL && fromRev == toRev && !opts.Force:
		if opts.Verbose {
			e.logf("%s at %s", fromURL, fromRev)
		}
		return 0, nil
	case fromURL == toURL:
		return e.Driver.Update(ctx, entry.Relpath, e.RootDir, toRev, opts.ExtraArgs)
	default:
		return e.Driver.Switch(ctx, toURL, entry.Relpath, e.RootDir, toRev, opts.ExtraArgs)
	}
}

// replaceRoot rewrites the repository-root prefix of a working copy's
// recorded URL after a successful Relocate, the way the spec's
// `fromURL.replace(fromRoot, toRoot)` step requires.
func replaceRoot(url, fromRoot, toRoot string) string {
	if len(url) >= len(fromRoot) && url[:len(fromRoot)] == fromRoot {
		return toRoot + url[len(fromRoot):]
	}
	return url
}

// detectOrphans reads the journal written by the previous successful run,
// warns about any relpath it names that the current plan no longer
// materializes but that still exists on disk, and rewrites the journal
// to reflect attempted (tombstoning the orphans so the warning repeats
// until the directory is actually gone).
func (e *Engine) detectOrphans(attempted []string) error {
	j, err := journal.Load(e.RootDir)
	if err != nil {
		return err
	}

	current := make(map[string]bool, len(attempted))
	for _, r := range attempted {
		current[r] = true
	}

	out := &journal.Journal{}
	for _, r := range attempted {
		out.Entries = append(out.Entries, journal.Entry{Relpath: r})
	}
	for _, prev := range j.Entries {
		if current[prev.Relpath] {
			continue
		}
		if _, err := os.Stat(filepath.Join(e.RootDir, prev.Relpath)); err == nil {
			e.logf("%s is no longer part of this client; remove it manually", prev.Relpath)
			out.Entries = append(out.Entries, journal.Entry{Relpath: prev.Relpath, Tombstone: true})
		}
	}

	return journal.Write(e.RootDir, out)
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.Out != nil {
		e.Out.LogGclientfln(format, args...)
	}
}
