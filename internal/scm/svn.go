// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scm

import (
	"bytes"
	"context"
	"encoding/xml"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/vcs"
)

// Subversion is the concrete Driver binding over the svn command-line
// client. It wraps github.com/Masterminds/vcs the way the teacher's
// internal/gps/vcs_repo.go wraps it for git/hg/bzr/svn: vcs.SvnRepo supplies
// only the Remote()/LocalPath() bookkeeping for Checkout, and a thin layer of
// os/exec calls here runs every svn operation itself (checkout, update,
// switch, relocate, repo-root probing, status/diff/revert pass-through).
//
// Every command it is about to run is first echoed through Command so the
// operator sees exactly what gclient is doing to their working copy, per
// the SCM Driver contract.
type Subversion struct {
	Command func(args ...string)
}

func (s *Subversion) echo(args ...string) {
	if s.Command != nil {
		s.Command(args...)
	}
}

func (s *Subversion) command(ctx context.Context, dir string, args ...string) *exec.Cmd {
	s.echo(append([]string{"svn"}, args...)...)
	cmd := exec.CommandContext(ctx, "svn", args...)
	cmd.Dir = dir
	return cmd
}

type svnInfoXML struct {
	XMLName xml.Name `xml:"info"`
	Entry   struct {
		Revision   string `xml:"revision,attr"`
		URL        string `xml:"url"`
		Repository struct {
			Root string `xml:"root"`
			UUID string `xml:"uuid"`
		} `xml:"repository"`
	} `xml:"entry"`
}

// Info implements Driver.Info. target is either a relpath beneath rootDir
// (an existing working copy) or a bare URL (a remote probe, used to learn
// a solution's repository root for relative-DEPS expansion, and to learn a
// relocation candidate's root/UUID).
func (s *Subversion) Info(ctx context.Context, target, rootDir string) (*InfoRecord, error) {
	isURL := strings.Contains(target, "://")

	var cmd *exec.Cmd
	if isURL {
		cmd = s.command(ctx, "", "info", "--xml", target)
	} else {
		cmd = s.command(ctx, filepath.Join(rootDir, target), "info", "--xml")
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	var errOut bytes.Buffer
	cmd.Stderr = &errOut

	runErr := cmd.Run()
	if runErr != nil {
		if _, ok := runErr.(*exec.Error); ok {
			// svn itself is not available; this is a genuine driver failure.
			return nil, wrapCmdErr(cmd.Args, runErr)
		}
		// Ran and exited non-zero: not a working copy / URL doesn't exist.
		return nil, nil
	}

	var doc svnInfoXML
	if err := xml.Unmarshal(out.Bytes(), &doc); err != nil {
		return nil, newLocalErrorOr("unable to parse svn info output", err, out.String())
	}
	if doc.Entry.URL == "" {
		return nil, nil
	}

	return &InfoRecord{
		URL:      doc.Entry.URL,
		RepoRoot: doc.Entry.Repository.Root,
		RepoUUID: doc.Entry.Repository.UUID,
		Revision: doc.Entry.Revision,
	}, nil
}

func runForExitCode(cmd *exec.Cmd) (int, error) {
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	// Could not even start the process: propagate as a driver error so the
	// caller doesn't mistake it for a plain nonzero exit.
	return 1, newRemoteErrorOr("unable to run svn", err, out.String())
}

// Checkout implements Driver.Checkout. It builds a vcs.SvnRepo purely for
// its Remote()/LocalPath() bookkeeping (the same role the teacher's svnRepo
// wrapper gives it) and then issues the checkout itself, since vcs.Repo's
// own Get() knows nothing about the extra pass-through args a caller may
// want forwarded to svn.
func (s *Subversion) Checkout(ctx context.Context, url, relpath, rootDir string, extraArgs []string) (int, error) {
	local := filepath.Join(rootDir, relpath)
	repo, err := vcs.NewSvnRepo(url, local)
	if err != nil {
		return 1, err
	}
	args := append([]string{"checkout", repo.Remote(), repo.LocalPath()}, extraArgs...)
	return runForExitCode(s.command(ctx, "", args...))
}

// Update implements Driver.Update.
func (s *Subversion) Update(ctx context.Context, relpath, rootDir, revision string, extraArgs []string) (int, error) {
	local := filepath.Join(rootDir, relpath)
	args := []string{"update"}
	if revision != "" {
		args = append(args, "-r", revision)
	}
	args = append(args, extraArgs...)
	return runForExitCode(s.command(ctx, local, args...))
}

// Switch implements Driver.Switch.
func (s *Subversion) Switch(ctx context.Context, url, relpath, rootDir, revision string, extraArgs []string) (int, error) {
	args := []string{"switch", url}
	if revision != "" {
		args = append(args, "-r", revision)
	}
	args = append(args, extraArgs...)
	return runForExitCode(s.command(ctx, filepath.Join(rootDir, relpath), args...))
}

// Relocate implements Driver.Relocate: rewrite a working copy's recorded
// repository root in place, without touching its checked-out revision.
func (s *Subversion) Relocate(ctx context.Context, fromRoot, toRoot, relpath, rootDir string) (int, error) {
	return runForExitCode(s.command(ctx, filepath.Join(rootDir, relpath), "relocate", fromRoot, toRoot))
}

// StatusDiff implements Driver.StatusDiff, the read-only pass-through path
// used by the status/diff/revert verbs.
func (s *Subversion) StatusDiff(ctx context.Context, verb, relpath, rootDir string, extraArgs []string) (int, error) {
	args := append([]string{verb}, extraArgs...)
	return runForExitCode(s.command(ctx, filepath.Join(rootDir, relpath), args...))
}

