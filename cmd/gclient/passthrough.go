// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"runtime"

	"github.com/sdsol/gclient"
)

// runPassthrough resolves the workspace's Plan and drives the SCM
// Driver's StatusDiff pass-through for every entry, the way status/diff
// and revert do (§4.7): these three verbs never consult revisions, they
// only forward a verb and extra args per entry.
func runPassthrough(env *gclient.Environment, wd, verb string, extraArgs []string) error {
	ctx := context.Background()

	cfg, err := env.LoadWorkspace(wd)
	if err != nil {
		return err
	}

	plan, err := gclient.Resolve(ctx, cfg, env, gclient.CanonicalPlatform(runtime.GOOS))
	if err != nil {
		return err
	}

	aggregated := 0
	for _, entry := range plan {
		code, err := env.Driver.StatusDiff(ctx, verb, entry.Relpath, cfg.RootDir, extraArgs)
		if err != nil {
			return err
		}
		if code != 0 && aggregated == 0 {
			aggregated = code
		}
	}
	if aggregated != 0 {
		return &exitCodeError{code: aggregated}
	}
	return nil
}
