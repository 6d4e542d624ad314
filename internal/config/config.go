package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Everything contains configuration for the Everything search tool.
type Everything struct {
	// Path points at the Everything executable. When empty the executable
	// is located automatically (beside the clipshelf binary, then the
	// conventional install location).
	Path string `toml:"path"`
}

// Export contains configuration for EFU file-list exports.
type Export struct {
	EFUName string `toml:"efu_name"`
	Open    bool   `toml:"open"`
}

// Import contains configuration for batch imports.
type Import struct {
	Extensions []string `toml:"extensions"`
}

// Tags contains tag presentation settings.
type Tags struct {
	// Language selects the collation locale for tag ordering (BCP 47,
	// e.g. "zh" or "en"). Empty means undetermined-locale collation.
	Language string `toml:"language"`
}

// BundleEntry names an auxiliary file copied into the distribution output.
type BundleEntry struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// Dist contains configuration for the distribution build pipeline.
type Dist struct {
	Packager  string        `toml:"packager"`
	Entry     string        `toml:"entry"`
	Name      string        `toml:"name"`
	OutputDir string        `toml:"output_dir"`
	ExtraArgs []string      `toml:"extra_args"`
	Bundle    []BundleEntry `toml:"bundle"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for clipshelf.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - Everything: search tool executable location
//   - Export: EFU file-list export settings
//   - Import: accepted video extensions for batch imports
//   - Tags: collation locale for tag listings
//   - Dist: packager invocation and bundled auxiliary files
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Everything Everything `toml:"everything"`
	Export     Export     `toml:"export"`
	Import     Import     `toml:"import"`
	Tags       Tags       `toml:"tags"`
	Dist       Dist       `toml:"dist"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipshelf/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved config path and the third reports whether it existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipshelf.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the catalog database location inside the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "catalog.db")
}

// EFUPath returns the default EFU export destination.
func (c *Config) EFUPath() string {
	return filepath.Join(c.Paths.DataDir, c.Export.EFUName)
}

// AcceptsExtension reports whether ext (with leading dot, any case) is an
// accepted video extension for imports.
func (c *Config) AcceptsExtension(ext string) bool {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	for _, candidate := range c.Import.Extensions {
		if candidate == normalized {
			return true
		}
	}
	return false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
