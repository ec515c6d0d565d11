// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"runtime"

	"github.com/sdsol/gclient"
	"github.com/sdsol/gclient/internal/sync"
)

const syncShortHelp = `Fetch and checkout the workspace's solutions and dependencies`
const syncLongHelp = `
Resolves the workspace's solutions and their DEPS into a Plan, then drives
the SCM Driver to materialize every entry: checking out what is missing,
updating or switching what has drifted, and relocating a working copy whose
repository root has moved when -relocate is given.

 -- <extra args> forwards arguments verbatim to every SCM invocation.
`

func (cmd *syncCommand) Name() string      { return "sync" }
func (cmd *syncCommand) Args() string      { return "[--force] [--relocate] [--revision REV|SOLUTION@REV]" }
func (cmd *syncCommand) ShortHelp() string { return syncShortHelp }
func (cmd *syncCommand) LongHelp() string  { return syncLongHelp }
func (cmd *syncCommand) Hidden() bool      { return false }

func (cmd *syncCommand) Register(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.force, "force", false, "reissue update even when revisions already match")
	fs.BoolVar(&cmd.relocate, "relocate", false, "permit switching a working copy to a different repository root")
	fs.StringVar(&cmd.revision, "revision", "", "pin REV (all solutions) or SOLUTION@REV")
}

type syncCommand struct {
	force    bool
	relocate bool
	revision string
}

func (cmd *syncCommand) Run(env *gclient.Environment, wd string, args []string) error {
	ctx := context.Background()

	cfg, err := env.LoadWorkspace(wd)
	if err != nil {
		return err
	}

	plan, err := gclient.Resolve(ctx, cfg, env, gclient.CanonicalPlatform(runtime.GOOS))
	if err != nil {
		return err
	}
	plan = gclient.ApplyRevisionPin(plan, cfg, cmd.revision)

	engine := &sync.Engine{Driver: env.Driver, RootDir: cfg.RootDir, Out: env.Out}
	code, err := engine.Apply(ctx, plan, sync.Options{
		Force:     cmd.force,
		Relocate:  cmd.relocate,
		ExtraArgs: args,
		Verbose:   env.Verbose,
	})
	if err != nil {
		return err
	}
	if code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}
