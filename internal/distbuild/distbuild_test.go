package distbuild_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"clipshelf/internal/distbuild"
	"clipshelf/internal/testsupport"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestBuildFailsWhenPackagerMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Dist.Packager = "clipshelf-test-absent-packager"

	builder := distbuild.NewBuilder(cfg, discardLogger())
	_, err := builder.Build(context.Background())
	if !errors.Is(err, distbuild.ErrPackagerNotFound) {
		t.Fatalf("err = %v, want ErrPackagerNotFound", err)
	}
}

func TestCheckPackagerMessageNamesInstallCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Dist.Packager = "clipshelf-test-absent-packager"

	_, err := distbuild.CheckPackager(cfg)
	if err == nil {
		t.Fatal("expected error for missing packager")
	}
	if got := err.Error(); !strings.Contains(got, "pip install") {
		t.Fatalf("error should carry install guidance, got %q", got)
	}
}

func TestBuildCopiesBundleFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	base := testsupport.BaseDir(cfg)
	testsupport.WriteFile(t, filepath.Join(base, "everything.exe"), []byte("binary payload"))

	builder := distbuild.NewBuilder(cfg, discardLogger(), distbuild.WithWorkDir(base))
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
	if len(result.Copied) != 1 {
		t.Fatalf("copied = %v, want one entry", result.Copied)
	}
	if result.BuildID == "" {
		t.Fatal("expected a build id")
	}

	target := filepath.Join(cfg.Dist.OutputDir, "Everything.exe")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("bundle target missing: %v", err)
	}
	if string(data) != "binary payload" {
		t.Fatalf("bundle content = %q", data)
	}

	// The output directory ships as-is; the build lock must not be in it.
	entries, err := os.ReadDir(cfg.Dist.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".lock") {
			t.Fatalf("lock file %s left inside the output directory", entry.Name())
		}
	}
}

func TestBuildWarnsWhenBundleSourceMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	base := testsupport.BaseDir(cfg)

	builder := distbuild.NewBuilder(cfg, discardLogger(), distbuild.WithWorkDir(base))
	result, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build should succeed despite missing bundle source: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one", result.Warnings)
	}
	if len(result.Copied) != 0 {
		t.Fatalf("nothing should have been copied, got %v", result.Copied)
	}
	if _, err := os.Stat(filepath.Join(cfg.Dist.OutputDir, "Everything.exe")); !os.IsNotExist(err) {
		t.Fatal("bundle target must not exist")
	}
}

func TestBuildReportsPackagerFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	testsupport.StubBinaries(t, base, 2, cfg.Dist.Packager)

	builder := distbuild.NewBuilder(cfg, discardLogger(), distbuild.WithWorkDir(base))
	if _, err := builder.Build(context.Background()); err == nil {
		t.Fatal("expected error when packager exits non-zero")
	}
}

func TestBuildRefusesConcurrentRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	base := testsupport.BaseDir(cfg)

	held := flock.New(filepath.Clean(cfg.Dist.OutputDir) + ".lock")
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("acquire lock: locked=%v err=%v", locked, err)
	}
	defer func() { _ = held.Unlock() }()

	builder := distbuild.NewBuilder(cfg, discardLogger(), distbuild.WithWorkDir(base))
	if _, err := builder.Build(context.Background()); !errors.Is(err, distbuild.ErrBuildInProgress) {
		t.Fatalf("err = %v, want ErrBuildInProgress", err)
	}
}
