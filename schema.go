// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

// EvaluateWorkspace evaluates `.gclient` text against the workspace
// schema: it binds `solutions`, an ordered sequence of mappings with keys
// `name`, `url`, and an optional `custom_deps`. `solutions` is the only
// required top-level name; anything else bound in the document is ignored.
func EvaluateWorkspace(text string) ([]Solution, error) {
	doc, err := Evaluate(text)
	if err != nil {
		return nil, err
	}

	sols, ok := doc["solutions"]
	if !ok {
		return nil, newEvalError(EvalMissingRequired, "workspace file does not bind 'solutions'")
	}
	if sols.Kind != KindSequence {
		return nil, newEvalError(EvalBadShape, "'solutions' must be a sequence, got %s", kindName(sols.Kind))
	}

	out := make([]Solution, 0, len(sols.Sequence))
	for i, sv := range sols.Sequence {
		if sv.Kind != KindMapping {
			return nil, newEvalError(EvalBadShape, "solutions[%d] must be a mapping, got %s", i, kindName(sv.Kind))
		}

		nameV, ok := sv.Mapping["name"]
		if !ok || nameV.Kind != KindStr || nameV.Str == "" {
			return nil, newEvalError(EvalBadShape, "solutions[%d] requires a non-empty string 'name'", i)
		}
		urlV, ok := sv.Mapping["url"]
		if !ok || urlV.Kind != KindStr {
			return nil, newEvalError(EvalBadShape, "solutions[%d] (%s) requires a string 'url'", i, nameV.Str)
		}

		sol := Solution{
			Name:       nameV.Str,
			URL:        ParseRepoCoord(urlV.Str),
			CustomDeps: newOrderedDeps(),
		}

		if cdV, ok := sv.Mapping["custom_deps"]; ok {
			if cdV.Kind != KindMapping {
				return nil, newEvalError(EvalBadShape, "solutions[%d] (%s) 'custom_deps' must be a mapping, got %s", i, nameV.Str, kindName(cdV.Kind))
			}
			for _, k := range cdV.MappingKeys {
				dv, err := convertDepValue(nameV.Str, k, cdV.Mapping[k])
				if err != nil {
					return nil, err
				}
				sol.CustomDeps.set(k, dv)
			}
		}

		out = append(out, sol)
	}
	return out, nil
}

// EvaluateDeps evaluates a DEPS document against the deps schema: `deps`
// (mapping), `deps_os` (mapping of platform -> mapping), and the `From`
// constructor. Both `deps` and `deps_os` default to empty when unbound, so
// empty text evaluates to an empty DepsManifest. A missing DEPS file never
// reaches this function: Environment.DepsFor returns an empty manifest for
// it directly.
func EvaluateDeps(text string) (*DepsManifest, error) {
	doc, err := Evaluate(text)
	if err != nil {
		return nil, err
	}

	m := emptyDepsManifest()

	if depsV, ok := doc["deps"]; ok {
		if depsV.Kind != KindMapping {
			return nil, newEvalError(EvalBadShape, "'deps' must be a mapping, got %s", kindName(depsV.Kind))
		}
		for _, k := range depsV.MappingKeys {
			dv, err := convertDepValue("", k, depsV.Mapping[k])
			if err != nil {
				return nil, err
			}
			m.Deps.set(k, dv)
		}
	}

	if osV, ok := doc["deps_os"]; ok {
		if osV.Kind != KindMapping {
			return nil, newEvalError(EvalBadShape, "'deps_os' must be a mapping, got %s", kindName(osV.Kind))
		}
		for _, platKey := range osV.MappingKeys {
			overlayV := osV.Mapping[platKey]
			if overlayV.Kind != KindMapping {
				return nil, newEvalError(EvalBadShape, "'deps_os[%s]' must be a mapping, got %s", platKey, kindName(overlayV.Kind))
			}
			plat := CanonicalPlatform(platKey)
			bucket, ok := m.DepsOS[plat]
			if !ok {
				bucket = newOrderedDeps()
				m.DepsOS[plat] = bucket
			}
			for _, k := range overlayV.MappingKeys {
				dv, err := convertDepValue("", k, overlayV.Mapping[k])
				if err != nil {
					return nil, err
				}
				bucket.set(k, dv)
			}
		}
	}

	return m, nil
}

// convertDepValue turns one deps/deps_os/custom_deps binding into a
// DepValue, enforcing the absolute-or-repo-relative rule on any string
// URL (RelativeURLError covers the neither case, e.g. "a/bad/path").
func convertDepValue(solutionName, relpath string, v Value) (DepValue, error) {
	switch v.Kind {
	case KindNull:
		return excludedDep(), nil
	case KindFrom:
		return viaDep(Indirection{ModuleName: v.From}), nil
	case KindStr:
		if !IsAbsoluteURL(v.Str) && !IsRepoRelative(v.Str) {
			return DepValue{}, &RelativeURLError{Relpath: relpath, URL: v.Str}
		}
		return directDep(ParseRepoCoord(v.Str)), nil
	default:
		return DepValue{}, newEvalError(EvalBadShape, "dependency %q must be a string, None, or From(...), got %s", relpath, kindName(v.Kind))
	}
}

func kindName(k Kind) string {
	switch k {
	case KindNull:
		return "None"
	case KindStr:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindFrom:
		return "From(...)"
	default:
		return "unknown"
	}
}
