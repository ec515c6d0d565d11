// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gclient

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sdsol/gclient/internal/scm"

	gclog "github.com/sdsol/gclient/log"
)

// DefaultWorkspaceFile is the name of the workspace file gclient looks for
// while walking upward from the working directory, unless GCLIENT_FILE
// says otherwise.
const DefaultWorkspaceFile = ".gclient"

// EntriesFileName is the name of the entries journal (C6), always sibling
// to the workspace file.
const EntriesFileName = ".gclient_entries"

// Environment carries everything C1, C4, C5, and C6 need from the outside
// world, replacing the source's module-level subprocess/stdout/execfile
// singletons (design note, §9) with one explicit, swappable value. The
// Command Facade builds the real one; tests substitute fakes.
type Environment struct {
	Out, Err *gclog.Logger
	Verbose  bool

	Driver scm.Driver

	// WorkspaceFileName is the basename of the workspace file, honoring
	// GCLIENT_FILE.
	WorkspaceFileName string
}

// NewEnvironment builds the Environment the Command Facade uses in
// production: real stdio loggers and a real Subversion driver that echoes
// every command it runs to Out.
func NewEnvironment(stdout, stderr io.Writer, verbose bool) *Environment {
	out := gclog.New(stdout)
	env := &Environment{
		Out:               out,
		Err:               gclog.New(stderr),
		Verbose:           verbose,
		WorkspaceFileName: DefaultWorkspaceFile,
	}
	env.Driver = &scm.Subversion{Command: out.Command}
	if wf := os.Getenv("GCLIENT_FILE"); wf != "" {
		env.WorkspaceFileName = wf
	}
	return env
}

// FindWorkspaceRoot walks upward from startDir looking for env's workspace
// file, the way the teacher's findProjectRootFromWD walks upward looking
// for ManifestName. Returns an error if none is found by the filesystem
// root.
func (env *Environment) FindWorkspaceRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, "resolving working directory")
	}

	for {
		candidate := filepath.Join(dir, env.WorkspaceFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", newUsageError("client not configured; could not find %s above %s", env.WorkspaceFileName, startDir)
		}
		dir = parent
	}
}

// LoadWorkspace discovers the workspace root from startDir and loads
// `.gclient` into a WorkspaceConfig.
func (env *Environment) LoadWorkspace(startDir string) (*WorkspaceConfig, error) {
	root, err := env.FindWorkspaceRoot(startDir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, env.WorkspaceFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	sols, err := EvaluateWorkspace(string(raw))
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, s := range sols {
		if seen[s.Name] {
			return nil, newConflictError(ConflictDuplicateSolution, s.Name,
				"solution %q specified more than once", s.Name)
		}
		seen[s.Name] = true
	}

	return &WorkspaceConfig{RootDir: root, Solutions: sols, RawSource: string(raw)}, nil
}

// DepsFor reads and evaluates rootDir/<solutionName>/DEPS. A missing file
// is equivalent to an empty manifest, not an error; env.Err receives a
// diagnostic in that case (C3 step 3).
func (env *Environment) DepsFor(ctx context.Context, rootDir, solutionName string) (*DepsManifest, error) {
	path := filepath.Join(rootDir, solutionName, "DEPS")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if env.Err != nil {
				env.Err.LogGclientfln("warning: no DEPS file for %s", solutionName)
			}
			return emptyDepsManifest(), nil
		}
		return nil, errors.Wrapf(err, "reading DEPS for %s", solutionName)
	}
	return EvaluateDeps(string(raw))
}
