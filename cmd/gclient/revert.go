// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/sdsol/gclient"
)

const revertShortHelp = `Discard local modifications for every entry in the workspace`
const revertLongHelp = `
Resolves the workspace's Plan and runs "svn revert --recursive *.*" for
every entry, in Plan order.
`

func (cmd *revertCommand) Name() string      { return "revert" }
func (cmd *revertCommand) Args() string      { return "" }
func (cmd *revertCommand) ShortHelp() string { return revertShortHelp }
func (cmd *revertCommand) LongHelp() string  { return revertLongHelp }
func (cmd *revertCommand) Hidden() bool      { return false }
func (cmd *revertCommand) Register(fs *flag.FlagSet) {}

type revertCommand struct{}

func (cmd *revertCommand) Run(env *gclient.Environment, wd string, args []string) error {
	return runPassthrough(env, wd, "revert", []string{"--recursive", "*.*"})
}
