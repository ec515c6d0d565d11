package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdsol/gclient"
	gclog "github.com/sdsol/gclient/log"
)

func newTestEnv() *gclient.Environment {
	return &gclient.Environment{
		Out:               gclog.New(io.Discard),
		Err:               gclog.New(io.Discard),
		WorkspaceFileName: gclient.DefaultWorkspaceFile,
	}
}

func TestConfigCommandFromURL(t *testing.T) {
	wd := t.TempDir()
	env := newTestEnv()
	cmd := &configCommand{}

	if err := cmd.Run(env, wd, []string{"https://example/svn/chrome/trunk"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(wd, gclient.DefaultWorkspaceFile))
	if err != nil {
		t.Fatalf("expected %s to be written: %v", gclient.DefaultWorkspaceFile, err)
	}
	sols, err := gclient.EvaluateWorkspace(string(raw))
	if err != nil {
		t.Fatalf("written manifest does not evaluate: %v", err)
	}
	if len(sols) != 1 || sols[0].Name != "chrome" {
		t.Errorf("solutions = %+v, want one named 'chrome'", sols)
	}
}

func TestConfigCommandFromSpec(t *testing.T) {
	wd := t.TempDir()
	env := newTestEnv()
	cmd := &configCommand{spec: `solutions = [ { "name": "s", "url": "http://svn/s" } ]`}

	if err := cmd.Run(env, wd, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(wd, gclient.DefaultWorkspaceFile)); err != nil {
		t.Errorf("expected workspace file to exist: %v", err)
	}
}

func TestConfigCommandFailsIfAlreadyExists(t *testing.T) {
	wd := t.TempDir()
	if err := os.WriteFile(filepath.Join(wd, gclient.DefaultWorkspaceFile), []byte("solutions = []"), 0644); err != nil {
		t.Fatal(err)
	}
	env := newTestEnv()
	cmd := &configCommand{}

	err := cmd.Run(env, wd, []string{"https://example/svn/s"})
	if err == nil {
		t.Fatal("expected a UsageError")
	}
	if _, ok := err.(*gclient.UsageError); !ok {
		t.Errorf("err = %T, want *gclient.UsageError", err)
	}
}

func TestConfigCommandRequiresURLOrSpec(t *testing.T) {
	env := newTestEnv()
	cmd := &configCommand{}
	if err := cmd.Run(env, t.TempDir(), nil); err == nil {
		t.Fatal("expected a UsageError when neither URL nor -spec is given")
	}
}
