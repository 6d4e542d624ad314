package everything_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"clipshelf/internal/everything"
	"clipshelf/internal/testsupport"
)

func TestLocatePrefersConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "Everything.exe")
	testsupport.WriteFile(t, exe, []byte("stub"))

	cfg := testsupport.NewConfig(t, testsupport.WithEverythingPath(exe))
	path, ok := everything.Locate(cfg)
	if !ok {
		t.Fatal("expected configured executable to be found")
	}
	if path != exe {
		t.Fatalf("path = %q, want %q", path, exe)
	}
}

func TestLocateFallsBackToInstallPath(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEverythingPath(filepath.Join(t.TempDir(), "absent.exe")))
	path, ok := everything.Locate(cfg)
	if ok {
		// A development machine may genuinely have Everything installed or
		// a copy beside the test binary; only assert when nothing exists.
		t.Skipf("an Everything executable exists at %s", path)
	}
	if path != everything.DefaultInstallPath {
		t.Fatalf("fallback path = %q", path)
	}
}

func TestOpenStartsDetachedProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts need a shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "everything-stub")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	launcher := everything.NewCLI(stub)
	if err := launcher.Open(context.Background(), filepath.Join(dir, "list.efu")); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
}

func TestOpenValidatesArguments(t *testing.T) {
	launcher := everything.NewCLI("")
	if err := launcher.Open(context.Background(), "list.efu"); err == nil {
		t.Fatal("expected error for missing executable")
	}

	launcher = everything.NewCLI("/usr/bin/true")
	if err := launcher.Open(context.Background(), ""); err == nil {
		t.Fatal("expected error for missing list path")
	}
}

func TestOpenMissingBinaryFails(t *testing.T) {
	launcher := everything.NewCLI(filepath.Join(t.TempDir(), "nope"))
	if err := launcher.Open(context.Background(), "list.efu"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestOpenHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	launcher := everything.NewCLI("/usr/bin/true")
	if err := launcher.Open(ctx, "list.efu"); err == nil {
		t.Fatal("expected context error")
	}
}
