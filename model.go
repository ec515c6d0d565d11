// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import "strings"

// PlatformKey is one of the three platform buckets a DEPS manifest's
// deps_os overlay can target.
type PlatformKey string

const (
	PlatformWin  PlatformKey = "win"
	PlatformMac  PlatformKey = "mac"
	PlatformUnix PlatformKey = "unix"
)

// CanonicalPlatform canonicalizes a host platform string (GOOS, or the
// source's own win32/darwin/unix spellings) into a PlatformKey, per the
// table in the evaluator's contract. Anything unrecognized falls through
// to unix, matching the source's own default-to-unix behavior.
func CanonicalPlatform(s string) PlatformKey {
	switch strings.ToLower(s) {
	case "win32", "win", "windows":
		return PlatformWin
	case "darwin", "mac":
		return PlatformMac
	default:
		return PlatformUnix
	}
}

// RepoCoord is a repository coordinate: a URL (absolute, or repo-relative
// when it begins with exactly one slash) plus an optional pinned revision.
type RepoCoord struct {
	URL      string
	Revision string // empty means unpinned
}

// ParseRepoCoord splits the wire form `url[@revision]` emitted by
// `.gclient`/DEPS string literals. The revision separator is the last '@'
// in the string, since repository-coordinate URLs in this domain never
// contain a literal '@' of their own.
func ParseRepoCoord(s string) RepoCoord {
	if i := strings.LastIndex(s, "@"); i >= 0 {
		return RepoCoord{URL: s[:i], Revision: s[i+1:]}
	}
	return RepoCoord{URL: s}
}

// String renders the wire form back out.
func (c RepoCoord) String() string {
	if c.Revision == "" {
		return c.URL
	}
	return c.URL + "@" + c.Revision
}

// WithRevision returns a copy of c pinned to rev (or unpinned, if rev is
// empty).
func (c RepoCoord) WithRevision(rev string) RepoCoord {
	c.Revision = rev
	return c
}

// IsRepoRelative reports whether c.URL is repo-relative: it begins with
// exactly one slash and carries no scheme. Anything else that isn't a
// recognizable absolute URL is the caller's problem to reject via
// RelativeURLError.
func IsRepoRelative(url string) bool {
	return strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "//") && !strings.Contains(url, "://")
}

// IsAbsoluteURL reports whether url carries a scheme (e.g. "https://...",
// "svn://...", or the "file://" form relocation rewrites produce).
func IsAbsoluteURL(url string) bool {
	return strings.Contains(url, "://")
}

// Indirection is the "From" value: a reference to another module's DEPS
// binding for the same relpath.
type Indirection struct {
	ModuleName string
}

// DepValueKind discriminates DepValue's three cases.
type DepValueKind int

const (
	// DepExcluded marks a customDeps override of null: the path is
	// omitted from the Plan entirely, regardless of what DEPS says.
	DepExcluded DepValueKind = iota
	DepDirect
	DepVia
)

// DepValue is the Dependency Model's tagged union: a direct URL, an
// indirection through another module, or an explicit exclusion.
type DepValue struct {
	Kind   DepValueKind
	Direct RepoCoord
	Via    Indirection
}

func directDep(c RepoCoord) DepValue  { return DepValue{Kind: DepDirect, Direct: c} }
func viaDep(ind Indirection) DepValue { return DepValue{Kind: DepVia, Via: ind} }
func excludedDep() DepValue           { return DepValue{Kind: DepExcluded} }

// orderedDeps is a relpath -> DepValue mapping that remembers the order
// keys were first bound in, for deterministic diagnostics; the final Plan
// is always re-sorted lexicographically regardless (invariant in §3/§4.3).
type orderedDeps struct {
	order []string
	vals  map[string]DepValue
}

func newOrderedDeps() *orderedDeps {
	return &orderedDeps{vals: map[string]DepValue{}}
}

func (d *orderedDeps) set(relpath string, v DepValue) {
	if _, ok := d.vals[relpath]; !ok {
		d.order = append(d.order, relpath)
	}
	d.vals[relpath] = v
}

// DepsManifest is a solution's (or any managed module's) DEPS: a base set
// of dependencies plus a platform-specific overlay that wins key-by-key.
type DepsManifest struct {
	Deps   *orderedDeps
	DepsOS map[PlatformKey]*orderedDeps
}

func emptyDepsManifest() *DepsManifest {
	return &DepsManifest{Deps: newOrderedDeps(), DepsOS: map[PlatformKey]*orderedDeps{}}
}

// Merged returns the base deps with the named platform's overlay applied
// on top (overlay wins key-by-key), in deterministic relpath order.
func (m *DepsManifest) Merged(platform PlatformKey) []struct {
	Relpath string
	Value   DepValue
} {
	merged := map[string]DepValue{}
	var order []string
	add := func(relpath string, v DepValue) {
		if _, ok := merged[relpath]; !ok {
			order = append(order, relpath)
		}
		merged[relpath] = v
	}
	for _, rp := range m.Deps.order {
		add(rp, m.Deps.vals[rp])
	}
	if overlay, ok := m.DepsOS[platform]; ok {
		for _, rp := range overlay.order {
			add(rp, overlay.vals[rp])
		}
	}

	out := make([]struct {
		Relpath string
		Value   DepValue
	}, len(order))
	for i, rp := range order {
		out[i] = struct {
			Relpath string
			Value   DepValue
		}{rp, merged[rp]}
	}
	return out
}

// Solution is a top-level managed module declared in the workspace file.
type Solution struct {
	Name       string
	URL        RepoCoord
	CustomDeps *orderedDeps
}

// WorkspaceConfig is the immutable result of loading `.gclient`.
type WorkspaceConfig struct {
	RootDir   string
	Solutions []Solution
	RawSource string
}
