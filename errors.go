// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import (
	"fmt"
)

// EvalErrorKind distinguishes why a manifest could not be evaluated.
type EvalErrorKind int

const (
	// EvalSyntax means the manifest text itself does not parse.
	EvalSyntax EvalErrorKind = iota
	// EvalBadShape means the manifest parsed but a bound name has the
	// wrong value shape for its schema (e.g. deps is not a mapping).
	EvalBadShape
	// EvalMissingRequired means a schema-required name was not bound at
	// all (only solutions, in the workspace schema).
	EvalMissingRequired
)

// EvalError is returned by the manifest evaluator (C1) when a `.gclient`
// or DEPS document cannot be turned into a typed value.
type EvalError struct {
	Kind   EvalErrorKind
	Detail string
}

func (e *EvalError) Error() string { return e.Detail }

func newEvalError(kind EvalErrorKind, format string, args ...interface{}) error {
	return &EvalError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// ConflictErrorKind distinguishes the three conflict shapes the resolver can
// detect.
type ConflictErrorKind int

const (
	// ConflictDuplicateSolution: the same solution name declared twice.
	ConflictDuplicateSolution ConflictErrorKind = iota
	// ConflictDependencyVersions: two solutions disagree about a shared
	// dependency's target.
	ConflictDependencyVersions
	// ConflictSolutionVsDependency: a dependency's relpath collides with
	// a solution name and their targets differ.
	ConflictSolutionVsDependency
)

// ConflictError is raised by the Resolver (C3) when two entries can't be
// reconciled into the same Plan.
type ConflictError struct {
	Kind    ConflictErrorKind
	Relpath string
	Detail  string
}

func (e *ConflictError) Error() string { return e.Detail }

func newConflictError(kind ConflictErrorKind, relpath, format string, args ...interface{}) error {
	return &ConflictError{Kind: kind, Relpath: relpath, Detail: fmt.Sprintf(format, args...)}
}

// RelativeURLError is raised when a DEPS entry has no scheme and does not
// begin with a slash, so it is neither an absolute URL nor a legal
// repo-relative reference.
type RelativeURLError struct {
	Relpath, URL string
}

func (e *RelativeURLError) Error() string {
	return fmt.Sprintf("relative DEPS entry %q for %q must begin with a slash", e.URL, e.Relpath)
}

// MissingIndirectionTargetError is raised when a From(...) indirection
// names a module whose own DEPS does not bind the expected relpath.
type MissingIndirectionTargetError struct {
	Module, Relpath string
}

func (e *MissingIndirectionTargetError) Error() string {
	return fmt.Sprintf("From(%q) does not define a dependency for %q", e.Module, e.Relpath)
}

// MetadataError is raised by the Sync Engine (C5) when Info returns no URL
// for a working copy that the filesystem says already exists.
type MetadataError struct {
	Relpath string
	Cause   error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("unable to read metadata for %q: %v", e.Relpath, e.Cause)
}

func (e *MetadataError) Unwrap() error { return e.Cause }

// UsageError is surfaced by the Command Facade (C7) for bad invocations:
// missing subcommands, missing required arguments, or an already-existing
// `.gclient`.
type UsageError struct {
	Detail string
}

func (e *UsageError) Error() string { return e.Detail }

func newUsageError(format string, args ...interface{}) error {
	return &UsageError{Detail: fmt.Sprintf(format, args...)}
}
