// Package distbuild drives the distribution packaging pipeline: it invokes
// the configured packager to produce a standalone binary and copies the
// configured auxiliary bundle files beside it.
//
// Packager absence is fatal. Bundle copy failures are reported as warnings
// because the packaged binary is still usable without the auxiliary files.
package distbuild

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"clipshelf/internal/config"
	"clipshelf/internal/fileutil"
)

// ErrPackagerNotFound reports that the configured packager executable is not
// on PATH.
var ErrPackagerNotFound = errors.New("packager not found")

// ErrBuildInProgress reports that another build holds the output lock.
var ErrBuildInProgress = errors.New("another distribution build is in progress")

// lockPath returns the flock file guarding builds for an output directory.
// The lock lives beside the directory, not inside it, so it never ships
// with the packaged artifacts.
func lockPath(outputDir string) string {
	return filepath.Clean(outputDir) + ".lock"
}

// outputTailLines bounds how much packager output is attached to errors.
const outputTailLines = 20

var commandContext = exec.CommandContext

// Result describes a completed build.
type Result struct {
	BuildID  string
	Packager string
	Artifact string
	Copied   []string
	Warnings []string
	Duration time.Duration
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkDir sets the directory that the packager runs in and that relative
// entry and bundle source paths resolve against.
func WithWorkDir(dir string) Option {
	return func(b *Builder) {
		if dir != "" {
			b.workDir = dir
		}
	}
}

// Builder runs the packaging pipeline for a single configuration.
type Builder struct {
	cfg     *config.Config
	logger  *slog.Logger
	workDir string
}

// NewBuilder constructs a Builder. The logger must not be nil.
func NewBuilder(cfg *config.Config, logger *slog.Logger, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, logger: logger, workDir: "."}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CheckPackager resolves the configured packager on PATH. The returned error
// carries installation guidance when the executable is absent.
func CheckPackager(cfg *config.Config) (string, error) {
	packager := cfg.Dist.Packager
	if packager == "" {
		return "", fmt.Errorf("%w: no packager configured", ErrPackagerNotFound)
	}
	path, err := exec.LookPath(packager)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not on PATH, install it with 'pip install %s'", ErrPackagerNotFound, packager, packager)
	}
	return path, nil
}

// Build runs the packager and copies the auxiliary bundle into the output
// directory. A non-nil Result with Warnings means the binary was packaged
// but one or more bundle files could not be copied.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	started := time.Now()

	packagerPath, err := CheckPackager(b.cfg)
	if err != nil {
		return nil, err
	}

	outputDir := b.resolve(b.cfg.Dist.OutputDir)
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(lockPath(outputDir))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire build lock: %w", err)
	}
	if !locked {
		return nil, ErrBuildInProgress
	}
	defer func() {
		_ = lock.Unlock()
	}()

	result := &Result{
		BuildID:  uuid.NewString(),
		Packager: packagerPath,
		Artifact: artifactPath(outputDir, b.cfg.Dist.Name),
	}

	b.logger.Info("packaging distribution",
		"build_id", result.BuildID,
		"packager", packagerPath,
		"entry", b.cfg.Dist.Entry,
		"name", b.cfg.Dist.Name)

	if err := b.runPackager(ctx, packagerPath, outputDir); err != nil {
		return nil, err
	}

	for _, entry := range b.cfg.Dist.Bundle {
		source := b.resolve(entry.Source)
		target := filepath.Join(outputDir, entry.Target)
		if err := fileutil.CopyFileVerified(source, target); err != nil {
			warning := fmt.Sprintf("skipped bundle file %s: %v", entry.Source, err)
			result.Warnings = append(result.Warnings, warning)
			b.logger.Warn("bundle copy failed",
				"build_id", result.BuildID,
				"source", source,
				"target", target,
				"error", err)
			continue
		}
		result.Copied = append(result.Copied, target)
		b.logger.Info("bundled auxiliary file",
			"build_id", result.BuildID,
			"target", target)
	}

	result.Duration = time.Since(started)
	b.logger.Info("distribution build finished",
		"build_id", result.BuildID,
		"artifact", result.Artifact,
		"copied", len(result.Copied),
		"warnings", len(result.Warnings),
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

func (b *Builder) runPackager(ctx context.Context, packagerPath, outputDir string) error {
	args := []string{
		"--onefile",
		"--windowed",
		"--name", b.cfg.Dist.Name,
		"--distpath", outputDir,
	}
	args = append(args, b.cfg.Dist.ExtraArgs...)
	args = append(args, b.cfg.Dist.Entry)

	cmd := commandContext(ctx, packagerPath, args...)
	cmd.Dir = b.workDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("packager failed: %w%s", err, formatOutputTail(output))
	}
	return nil
}

// resolve makes a configured path absolute relative to the work dir.
func (b *Builder) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.workDir, path)
}

func artifactPath(outputDir, name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(outputDir, name)
}

func formatOutputTail(output []byte) string {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > outputTailLines {
		lines = lines[len(lines)-outputTailLines:]
	}
	return "\n" + strings.Join(lines, "\n")
}
