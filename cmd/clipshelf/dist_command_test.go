package main

import (
	"os"
	"path/filepath"
	"testing"

	"clipshelf/internal/testsupport"
)

func TestCLIDistFailsWithoutPackager(t *testing.T) {
	env := setupCLITestEnv(t)

	// An empty PATH guarantees the packager cannot be resolved.
	emptyBin := filepath.Join(env.baseDir, "empty-bin")
	if err := os.MkdirAll(emptyBin, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv("PATH", emptyBin)

	_, _, err := runCLI(t, env.configPath, "dist")
	if err == nil {
		t.Fatal("expected dist to fail without a packager")
	}
	requireContains(t, err.Error(), "pip install")

	if _, statErr := os.Stat(filepath.Join(env.distDir, "Everything.exe")); !os.IsNotExist(statErr) {
		t.Fatal("no bundle file should exist after a failed build")
	}
}

func TestCLIDistSucceedsWithWarningWhenBundleMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubBinaries(t, env.baseDir, 0, "pyinstaller")

	out, stderr, err := runCLI(t, env.configPath, "dist", "--dir", env.baseDir)
	if err != nil {
		t.Fatalf("dist should succeed despite missing bundle source: %v", err)
	}
	requireContains(t, out, "finished")
	requireContains(t, stderr, "Warning")

	if _, statErr := os.Stat(filepath.Join(env.distDir, "Everything.exe")); !os.IsNotExist(statErr) {
		t.Fatal("bundle target must not exist when the source was missing")
	}
}

func TestCLIDistBundlesAuxiliaryFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubBinaries(t, env.baseDir, 0, "pyinstaller")

	source := filepath.Join(env.baseDir, "everything.exe")
	if err := os.WriteFile(source, []byte("tool payload"), 0o644); err != nil {
		t.Fatalf("write bundle source: %v", err)
	}

	out, stderr, err := runCLI(t, env.configPath, "dist", "--dir", env.baseDir)
	if err != nil {
		t.Fatalf("dist: %v", err)
	}
	requireContains(t, out, "Bundled:")
	if stderr != "" {
		t.Fatalf("unexpected warnings: %q", stderr)
	}

	data, err := os.ReadFile(filepath.Join(env.distDir, "Everything.exe"))
	if err != nil {
		t.Fatalf("bundle target missing: %v", err)
	}
	if string(data) != "tool payload" {
		t.Fatalf("bundle content = %q", data)
	}
}
