// Package testsupport provides shared fixtures for clipshelf tests: temp
// configs, catalog stores, sample media files, and stubbed external
// binaries.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"clipshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Dist.OutputDir = filepath.Join(base, "dist")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTagLanguage sets the tag collation locale on the test config.
func WithTagLanguage(lang string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tags.Language = lang
	}
}

// WithEverythingPath points the config at an explicit Everything executable.
func WithEverythingPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Everything.Path = path
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default packager binary is
// stubbed. Each stub exits successfully.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{b.cfg.Dist.Packager}
		}
		StubBinaries(b.t, b.baseDir, 0, names...)
	}
}

// StubBinaries writes stub executables that exit with the given code and
// prepends their directory to PATH for the remainder of the test.
func StubBinaries(t testing.TB, baseDir string, exitCode int, names ...string) {
	t.Helper()

	binDir := filepath.Join(baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := []byte(fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
	for _, name := range names {
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
