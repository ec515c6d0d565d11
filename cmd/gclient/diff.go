// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/sdsol/gclient"
)

const diffShortHelp = `Show local modifications for every entry in the workspace`
const diffLongHelp = `
Resolves the workspace's Plan and runs "svn diff" for every entry, in Plan
order. Does not consult or enforce pinned revisions.
`

func (cmd *diffCommand) Name() string      { return "diff" }
func (cmd *diffCommand) Args() string      { return "[-- <extra args>]" }
func (cmd *diffCommand) ShortHelp() string { return diffShortHelp }
func (cmd *diffCommand) LongHelp() string  { return diffLongHelp }
func (cmd *diffCommand) Hidden() bool      { return false }
func (cmd *diffCommand) Register(fs *flag.FlagSet) {}

type diffCommand struct{}

func (cmd *diffCommand) Run(env *gclient.Environment, wd string, args []string) error {
	return runPassthrough(env, wd, "diff", args)
}
