// Package everything locates and launches the Everything search tool.
//
// Everything is a third-party desktop search utility; clipshelf hands it an
// EFU file list so exported selections open directly in its UI. The
// executable is discovered from config, from the directory holding the
// clipshelf binary, or from the conventional install location, in that
// order.
package everything

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"clipshelf/internal/config"
	"clipshelf/internal/fileutil"
)

// DefaultInstallPath is the conventional Everything install location.
const DefaultInstallPath = `C:\Program Files\Everything\Everything.exe`

// executableName is the file looked for beside the clipshelf binary.
const executableName = "Everything.exe"

var command = exec.Command

// Locate resolves the Everything executable. The boolean reports whether
// the returned path actually exists; when nothing is found the conventional
// install path is returned so error messages can name a concrete location.
func Locate(cfg *config.Config) (string, bool) {
	var candidates []string
	if cfg != nil && cfg.Everything.Path != "" {
		candidates = append(candidates, cfg.Everything.Path)
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), executableName))
	}
	candidates = append(candidates, DefaultInstallPath)

	for _, candidate := range candidates {
		if fileutil.FileExists(candidate) {
			return candidate, true
		}
	}
	return candidates[len(candidates)-1], false
}

// Launcher opens an EFU file list in Everything.
type Launcher interface {
	Open(ctx context.Context, listPath string) error
}

// Option configures the CLI launcher.
type Option func(*CLI)

// WithExecutable overrides the executable path.
func WithExecutable(path string) Option {
	return func(c *CLI) {
		if path != "" {
			c.executable = path
		}
	}
}

// CLI launches the Everything executable as a detached process.
type CLI struct {
	executable string
}

// NewCLI constructs a launcher for the given executable path.
func NewCLI(executable string, opts ...Option) *CLI {
	cli := &CLI{executable: executable}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Open starts Everything on the given file list without waiting for it to
// exit; the UI owns its own lifetime.
func (c *CLI) Open(ctx context.Context, listPath string) error {
	if c.executable == "" {
		return errors.New("everything executable not configured")
	}
	if listPath == "" {
		return errors.New("file list path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := command(c.executable, listPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch everything: %w", err)
	}
	// Detach: the viewer outlives the CLI invocation.
	return cmd.Process.Release()
}

var _ Launcher = (*CLI)(nil)
