// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sdsol/gclient"
)

const configShortHelp = `Create a .gclient file in the current directory`
const configLongHelp = `
Creates a .gclient file in the current directory from either a solution URL,
whose last path component becomes the solution name, or a literal manifest
given with -spec. Fails if .gclient already exists.
`

func (cmd *configCommand) Name() string      { return "config" }
func (cmd *configCommand) Args() string      { return "(<url> | -spec=<text>)" }
func (cmd *configCommand) ShortHelp() string { return configShortHelp }
func (cmd *configCommand) LongHelp() string  { return configLongHelp }
func (cmd *configCommand) Hidden() bool      { return false }

func (cmd *configCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.spec, "spec", "", "literal .gclient manifest text")
}

type configCommand struct {
	spec string
}

func (cmd *configCommand) Run(env *gclient.Environment, wd string, args []string) error {
	target := filepath.Join(wd, env.WorkspaceFileName)
	if _, err := os.Stat(target); err == nil {
		return &gclient.UsageError{Detail: fmt.Sprintf("%s already exists", target)}
	}

	var text string
	switch {
	case cmd.spec != "":
		text = cmd.spec
	case len(args) == 1:
		text = renderSolutionsLiteral(args[0])
	default:
		return &gclient.UsageError{Detail: "config requires a solution URL or -spec=<text>"}
	}

	if err := os.WriteFile(target, []byte(text), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", target)
	}
	env.Out.LogGclientfln("created %s", target)
	return nil
}

// renderSolutionsLiteral builds the single-solution manifest literal the
// teacher's equivalent `dep init` writes for the trivial case: one
// solution bound from a bare URL, its name taken from the URL's last
// path component.
func renderSolutionsLiteral(url string) string {
	name := path.Base(strings.TrimRight(url, "/"))
	return fmt.Sprintf("solutions = [\n  { \"name\": %q,\n    \"url\":  %q,\n  },\n]\n", name, url)
}
