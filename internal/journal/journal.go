// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package journal implements the entries journal (C6): the persisted set
// of relpaths materialized by the last successful sync, used solely for
// orphan detection.
package journal

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FileName is the journal's basename, always a sibling of the workspace
// file.
const FileName = ".gclient_entries"

// Entry is one journal line: a relpath and whether it is a live entry from
// the last Plan or a tombstone kept only to keep warning about an orphan
// that has not yet been cleaned up (spec §3, §4.5).
type Entry struct {
	Relpath   string
	Tombstone bool
}

// Journal binds the single top-level name `entries` to an ordered sequence
// of relpath strings, written as a tiny literal document in the same
// family as `.gclient`/DEPS (one binding, `entries = [...]`), so a human
// can read it without a decoder. Tombstoned relpaths are serialized with a
// trailing "!" marker.
type Journal struct {
	Entries []Entry
}

// Load reads rootDir/.gclient_entries. A missing file is equivalent to an
// empty journal, not an error.
func Load(rootDir string) (*Journal, error) {
	path := filepath.Join(rootDir, FileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Journal{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	defer f.Close()

	j := &Journal{}
	sc := bufio.NewScanner(f)
	inEntries := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "entries = ["):
			inEntries = true
		case inEntries && line == "]":
			inEntries = false
		case inEntries:
			entry, err := parseLine(line)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing %s", path)
			}
			j.Entries = append(j.Entries, entry)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return j, nil
}

func parseLine(line string) (Entry, error) {
	line = strings.TrimSuffix(line, ",")
	tomb := strings.HasSuffix(line, "!")
	if tomb {
		line = strings.TrimSuffix(line, "!")
	}
	s, err := strconv.Unquote(line)
	if err != nil {
		return Entry{}, errors.Wrapf(err, "invalid entry %q", line)
	}
	return Entry{Relpath: s, Tombstone: tomb}, nil
}

// Write rewrites the whole journal atomically: a temp file is written and
// renamed over the target, so a crash mid-write never leaves a partially
// written journal (§4.6: "no partial writes").
func Write(rootDir string, j *Journal) error {
	sorted := append([]Entry(nil), j.Entries...)
	sort.Slice(sorted, func(i, k int) bool { return sorted[i].Relpath < sorted[k].Relpath })

	var b strings.Builder
	b.WriteString("entries = [\n")
	for _, e := range sorted {
		b.WriteString("    ")
		b.WriteString(strconv.Quote(e.Relpath))
		if e.Tombstone {
			b.WriteString("!")
		}
		b.WriteString(",\n")
	}
	b.WriteString("]\n")

	path := filepath.Join(rootDir, FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "renaming %s to %s", tmp, path)
	}
	return nil
}

// Relpaths returns the live (non-tombstone) relpaths, for callers that
// just want "what did we manage last time".
func (j *Journal) Relpaths() []string {
	out := make([]string, 0, len(j.Entries))
	for _, e := range j.Entries {
		if !e.Tombstone {
			out = append(out, e.Relpath)
		}
	}
	return out
}
