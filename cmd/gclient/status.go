// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/sdsol/gclient"
)

const statusShortHelp = `Report the SCM status of every entry in the workspace`
const statusLongHelp = `
Resolves the workspace's Plan and runs "svn status" for every entry, in Plan
order. Does not consult or enforce pinned revisions.
`

func (cmd *statusCommand) Name() string      { return "status" }
func (cmd *statusCommand) Args() string      { return "[-- <extra args>]" }
func (cmd *statusCommand) ShortHelp() string { return statusShortHelp }
func (cmd *statusCommand) LongHelp() string  { return statusLongHelp }
func (cmd *statusCommand) Hidden() bool      { return false }
func (cmd *statusCommand) Register(fs *flag.FlagSet) {}

type statusCommand struct{}

func (cmd *statusCommand) Run(env *gclient.Environment, wd string, args []string) error {
	return runPassthrough(env, wd, "status", args)
}
