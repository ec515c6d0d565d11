// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import (
	"context"
	"sort"

	"github.com/pkg/errors"
)

// ResolvedEntry is one line of a Plan: a relpath and the RepoCoord it
// should be materialized at. Skipped marks a tombstone kept only for
// orphan-detection bookkeeping in the entries journal (§4.5/§4.6); the
// Resolver itself never produces a Skipped entry — a customDeps exclusion
// is omitted from the Plan entirely (invariant 5), not marked Skipped.
type ResolvedEntry struct {
	Relpath string
	Target  RepoCoord
	Skipped bool
}

// Plan is solutions first (declared order), then dependencies sorted
// lexicographically by relpath (§4.3 step 6).
type Plan []ResolvedEntry

// Resolve runs the C3 algorithm: it produces the final path -> target map
// from cfg, applying customDeps overrides, indirections, relative-URL
// expansion, and conflict detection.
func Resolve(ctx context.Context, cfg *WorkspaceConfig, env *Environment, platform PlatformKey) (Plan, error) {
	r := &resolveRun{
		cfg:      cfg,
		env:      env,
		platform: platform,
		entries:  map[string]DepValue{},
		owner:    map[string]string{},
		solNames: map[string]bool{},
	}
	return r.run(ctx)
}

type resolveRun struct {
	cfg      *WorkspaceConfig
	env      *Environment
	platform PlatformKey

	entries  map[string]DepValue // relpath -> resolved value (never Excluded once final)
	owner    map[string]string   // relpath -> solution name that first contributed it (diagnostics)
	solNames map[string]bool

	solutionManifests map[string]*DepsManifest
}

func (r *resolveRun) run(ctx context.Context) (Plan, error) {
	// Step 2: solutions occupy their own name as relpath.
	for _, s := range r.cfg.Solutions {
		if r.solNames[s.Name] {
			return nil, newConflictError(ConflictDuplicateSolution, s.Name,
				"solution %q specified more than once", s.Name)
		}
		r.solNames[s.Name] = true
		r.entries[s.Name] = directDep(s.URL)
		r.owner[s.Name] = s.Name
	}

	r.solutionManifests = map[string]*DepsManifest{}
	for _, s := range r.cfg.Solutions {
		m, err := r.env.DepsFor(ctx, r.cfg.RootDir, s.Name)
		if err != nil {
			return nil, err
		}
		r.solutionManifests[s.Name] = m
	}

	// Step 3+4: per-solution deps, merged with platform overlay and
	// customDeps, aggregated with conflict detection.
	var viaOutside []struct {
		relpath string
		ind     Indirection
		owner   string
	}

	for _, s := range r.cfg.Solutions {
		m := r.solutionManifests[s.Name]
		merged := map[string]DepValue{}
		var order []string
		add := func(relpath string, v DepValue) {
			if _, ok := merged[relpath]; !ok {
				order = append(order, relpath)
			}
			merged[relpath] = v
		}
		for _, rp := range m.Merged(r.platform) {
			add(rp.Relpath, rp.Value)
		}
		// customDeps overrides/additions (may introduce new keys).
		for _, k := range s.CustomDeps.order {
			add(k, s.CustomDeps.vals[k])
		}

		for _, relpath := range order {
			v := merged[relpath]
			if v.Kind == DepExcluded {
				continue
			}
			if v.Kind == DepVia && r.solNames[v.Via.ModuleName] {
				// Covered by that solution's own dependency pass; skip here.
				continue
			}

			resolved := v
			if v.Kind == DepDirect && IsRepoRelative(v.Direct.URL) {
				root, err := r.repoRootOf(ctx, s.URL.URL)
				if err != nil {
					return nil, err
				}
				resolved = directDep(RepoCoord{URL: root + v.Direct.URL, Revision: v.Direct.Revision})
			}

			if v.Kind == DepVia {
				viaOutside = append(viaOutside, struct {
					relpath string
					ind     Indirection
					owner   string
				}{relpath, v.Via, s.Name})
				continue
			}

			if err := r.merge(relpath, resolved, s.Name); err != nil {
				return nil, err
			}
		}
	}

	// Step 5: resolve indirections pointing outside the solution set, one
	// hop only.
	for _, via := range viaOutside {
		target, err := r.followIndirection(ctx, via.ind, via.relpath)
		if err != nil {
			return nil, err
		}
		if err := r.merge(via.relpath, target, via.owner); err != nil {
			return nil, err
		}
	}

	return r.buildPlan(), nil
}

// repoRootOf probes the SCM driver for a repository root, used to expand
// repo-relative DEPS entries (invariant 3). target is either a bare URL (a
// remote probe of a solution not yet checked out) or a relpath beneath
// rootDir (an indirection target's own working copy), per Driver.Info.
func (r *resolveRun) repoRootOf(ctx context.Context, target string) (string, error) {
	info, err := r.env.Driver.Info(ctx, target, r.cfg.RootDir)
	if err != nil {
		return "", err
	}
	if info == nil || info.RepoRoot == "" {
		return "", errors.Errorf("could not determine repository root for %q; the SCM driver returned no info", target)
	}
	return info.RepoRoot, nil
}

// followIndirection resolves a single From(...) hop. Deeper indirection
// (the target's own binding is itself a From) is a resolver error per the
// spec's open-question decision: hop limit of one.
func (r *resolveRun) followIndirection(ctx context.Context, ind Indirection, relpath string) (DepValue, error) {
	m, ok := r.solutionManifests[ind.ModuleName]
	if !ok {
		loaded, err := r.env.DepsFor(ctx, r.cfg.RootDir, ind.ModuleName)
		if err != nil {
			return DepValue{}, err
		}
		m = loaded
		r.solutionManifests[ind.ModuleName] = m
	}

	for _, rp := range m.Merged(r.platform) {
		if rp.Relpath != relpath {
			continue
		}
		if rp.Value.Kind == DepVia {
			return DepValue{}, newConflictError(ConflictDependencyVersions, relpath,
				"multi-hop indirection is not supported: From(%q) for %q is itself an indirection", ind.ModuleName, relpath)
		}
		if rp.Value.Kind == DepDirect && IsRepoRelative(rp.Value.Direct.URL) {
			// ind.ModuleName is a relpath beneath rootDir, the same
			// convention Environment.DepsFor uses to locate
			// rootDir/<moduleName>/DEPS, so the probe here goes through
			// the indirection target's own working copy rather than
			// chasing it back to a declared solution's URL.
			root, err := r.repoRootOf(ctx, ind.ModuleName)
			if err != nil {
				return DepValue{}, err
			}
			return directDep(RepoCoord{URL: root + rp.Value.Direct.URL, Revision: rp.Value.Direct.Revision}), nil
		}
		return rp.Value, nil
	}
	return DepValue{}, &MissingIndirectionTargetError{Module: ind.ModuleName, Relpath: relpath}
}

// merge aggregates one (relpath, value) pair into r.entries, enforcing
// invariants 2 and 4: equal-or-conflict across solutions, and
// solution-vs-dependency collisions.
func (r *resolveRun) merge(relpath string, v DepValue, owningSolution string) error {
	if existing, ok := r.entries[relpath]; ok {
		if depValuesEqual(existing, v) {
			return nil
		}
		if r.solNames[relpath] {
			return newConflictError(ConflictSolutionVsDependency, relpath,
				"dependency conflicts with specified solution: %q", relpath)
		}
		return newConflictError(ConflictDependencyVersions, relpath,
			"solutions have conflicting versions of dependency %q", relpath)
	}
	r.entries[relpath] = v
	r.owner[relpath] = owningSolution
	return nil
}

func depValuesEqual(a, b DepValue) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case DepDirect:
		return a.Direct == b.Direct
	case DepVia:
		return a.Via == b.Via
	default:
		return true
	}
}

func (r *resolveRun) buildPlan() Plan {
	var plan Plan
	for _, s := range r.cfg.Solutions {
		plan = append(plan, ResolvedEntry{Relpath: s.Name, Target: r.entries[s.Name].Direct})
	}

	var rest []string
	for relpath := range r.entries {
		if r.solNames[relpath] {
			continue
		}
		rest = append(rest, relpath)
	}
	sort.Strings(rest)
	for _, relpath := range rest {
		plan = append(plan, ResolvedEntry{Relpath: relpath, Target: r.entries[relpath].Direct})
	}
	return plan
}

