// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gclient is the C7 Command Facade: a thin dispatch surface over
// the resolver and sync engine, in the image of the teacher's cmd/dep.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sdsol/gclient"
)

type command interface {
	Name() string           // "sync"
	Args() string           // "[--force] [--relocate]"
	ShortHelp() string      // "Fetch and checkout dependencies"
	LongHelp() string       // multi-line description
	Register(*flag.FlagSet) // command-specific flags
	Hidden() bool
	Run(env *gclient.Environment, wd string, args []string) error
}

func main() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to get working directory", err)
		os.Exit(1)
	}
	c := &Config{
		Args:       os.Args,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		WorkingDir: wd,
	}
	os.Exit(c.Run())
}

// Config specifies a full configuration for one gclient invocation.
type Config struct {
	WorkingDir     string
	Args           []string
	Stdout, Stderr *os.File
}

// Run executes a configuration and returns an exit code (§6: 0 success, 1
// resolver/internal error, otherwise the pass-through code of the first
// failing SCM invocation).
func (c *Config) Run() (exitCode int) {
	commands := []command{
		&configCommand{},
		&syncCommand{},
		&statusCommand{},
		&diffCommand{},
		&revertCommand{},
	}

	errLogger := log.New(c.Stderr, "", 0)

	cmdName, printCommandHelp, exit := parseArgs(c.Args)
	if exit {
		printUsage(c.Stderr, errLogger, commands)
		exitCode = 1
		return
	}

	for _, cmd := range commands {
		if cmd.Name() != cmdName && !(cmdName == "update" && cmd.Name() == "sync") {
			continue
		}

		fs := flag.NewFlagSet(cmdName, flag.ContinueOnError)
		fs.SetOutput(c.Stderr)
		verbose := fs.Bool("verbose", false, "additional diagnostics")
		cmd.Register(fs)
		resetUsage(errLogger, fs, cmdName, cmd.Args(), cmd.LongHelp())

		if printCommandHelp {
			fs.Usage()
			exitCode = 1
			return
		}

		if err := fs.Parse(c.Args[2:]); err != nil {
			exitCode = 1
			return
		}

		env := gclient.NewEnvironment(c.Stdout, c.Stderr, *verbose)

		if err := cmd.Run(env, c.WorkingDir, fs.Args()); err != nil {
			if code, ok := err.(exitCoder); ok {
				return code.ExitCode()
			}
			errLogger.Printf("gclient: %v\n", err)
			exitCode = 1
			return
		}
		return
	}

	errLogger.Printf("gclient: %s: no such command\n", cmdName)
	printUsage(c.Stderr, errLogger, commands)
	exitCode = 1
	return
}

// exitCoder lets a command's Run report a specific, non-1 exit code (the
// pass-through SCM failure code of §6) without abusing the error string.
type exitCoder interface {
	error
	ExitCode() int
}

type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit code %d", e.code) }
func (e *exitCodeError) ExitCode() int { return e.code }
