// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"
)

// printUsage renders the top-level "gclient <command>" listing, the way
// the teacher's dep usage func does for its own command table.
func printUsage(w io.Writer, logger *log.Logger, commands []command) {
	logger.Println("gclient manages a workspace assembled from multiple Subversion modules")
	logger.Println()
	logger.Println("Usage: gclient <command> [arguments]")
	logger.Println()
	logger.Println("Commands:")
	logger.Println()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cmd := range commands {
		if !cmd.Hidden() {
			fmt.Fprintf(tw, "\t%s\t%s\n", cmd.Name(), cmd.ShortHelp())
		}
	}
	tw.Flush()
	logger.Println()
	logger.Println(`Use "gclient help [command]" for more information about a command.`)
}

// renderFlagTable formats fs's registered flags as a tab-aligned block, or
// the empty string if fs has none registered.
func renderFlagTable(fs *flag.FlagSet) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	n := 0
	fs.VisitAll(func(f *flag.Flag) {
		n++
		def := f.DefValue
		if def == "" {
			def = "<none>"
		}
		fmt.Fprintf(tw, "\t-%s\t%s (default: %s)\n", f.Name, f.Usage, def)
	})
	tw.Flush()
	if n == 0 {
		return ""
	}
	return buf.String()
}

// resetUsage overrides fs.Usage with a nicer rendering of a single
// subcommand's help text and registered flags.
func resetUsage(logger *log.Logger, fs *flag.FlagSet, name, args, longHelp string) {
	flagTable := renderFlagTable(fs)
	fs.Usage = func() {
		logger.Printf("Usage: gclient %s %s\n", name, args)
		logger.Println()
		logger.Println(strings.TrimSpace(longHelp))
		logger.Println()
		if flagTable != "" {
			logger.Println("Flags:")
			logger.Println()
			logger.Println(flagTable)
		}
	}
}

// looksLikeHelpToken reports whether a command-line token is asking for
// help rather than naming a command.
func looksLikeHelpToken(s string) bool {
	s = strings.ToLower(s)
	return s == "-h" || strings.Contains(s, "help")
}

// parseArgs determines the name of the gclient command and whether the
// user asked for help to be printed.
func parseArgs(args []string) (cmdName string, printCmdUsage bool, exit bool) {
	if len(args) < 2 {
		return "", false, true
	}
	if len(args) == 2 {
		return args[1], false, looksLikeHelpToken(args[1])
	}
	if looksLikeHelpToken(args[1]) {
		return args[2], true, false
	}
	return args[1], false, false
}
