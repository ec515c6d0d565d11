// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scm defines the abstract version-control contract the resolver
// and sync engine drive, and provides the concrete Subversion binding.
//
// The interface intentionally knows nothing about workspaces, solutions,
// or DEPS manifests: it only knows how to inspect and mutate a single
// working copy against a single URL.
package scm

import "context"

// InfoRecord is what a working copy, or a bare remote URL, reports about
// itself: its canonical URL, the root of the repository it lives in, the
// repository's stable identity, and the revision currently checked out (or
// HEAD, for a bare URL probe).
type InfoRecord struct {
	URL      string
	RepoRoot string
	RepoUUID string
	Revision string
}

// Driver is the abstract contract the Sync Engine (and, for repo-root
// probing, the Resolver) drives. One concrete binding is provided: Subversion.
//
// Info must return (nil, nil) — not an error — when asked about a path or
// URL that does not exist; an error return means the driver itself failed
// to answer the question (e.g. the svn binary is missing).
//
// Every mutating method returns the exit code of the underlying process
// alongside an error. The error is non-nil only when the process could not
// be run at all; a process that ran and exited non-zero is reported solely
// through the returned exit code, so callers can aggregate it the way
// spec'd in the Sync Engine.
type Driver interface {
	Info(ctx context.Context, target, rootDir string) (*InfoRecord, error)
	Checkout(ctx context.Context, url, relpath, rootDir string, extraArgs []string) (exitCode int, err error)
	Update(ctx context.Context, relpath, rootDir, revision string, extraArgs []string) (exitCode int, err error)
	Switch(ctx context.Context, url, relpath, rootDir, revision string, extraArgs []string) (exitCode int, err error)
	Relocate(ctx context.Context, fromRoot, toRoot, relpath, rootDir string) (exitCode int, err error)
	StatusDiff(ctx context.Context, verb, relpath, rootDir string, extraArgs []string) (exitCode int, err error)
}
