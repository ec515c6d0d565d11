// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scm

import (
	"context"

	"github.com/Masterminds/vcs"
	"github.com/pkg/errors"
)

// newRemoteErrorOr mirrors the teacher's newVcsRemoteErrorOr: a canceled or
// timed-out context is returned verbatim so callers can distinguish
// cancellation from a genuine remote failure, everything else is wrapped as
// a vcs.RemoteError carrying the process's combined output.
func newRemoteErrorOr(msg string, err error, out string) error {
	if err == context.Canceled || err == context.DeadlineExceeded {
		return err
	}
	return vcs.NewRemoteError(msg, err, out)
}

// newLocalErrorOr is newRemoteErrorOr's counterpart for failures that never
// left the local working copy (switch, update-to-revision, status parsing).
func newLocalErrorOr(msg string, err error, out string) error {
	if err == context.Canceled || err == context.DeadlineExceeded {
		return err
	}
	return vcs.NewLocalError(msg, err, out)
}

func wrapCmdErr(cmd []string, err error) error {
	return errors.Wrapf(err, "command failed: %v", cmd)
}
