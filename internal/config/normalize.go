package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeEverything(); err != nil {
		return err
	}
	c.normalizeExport()
	c.normalizeImport()
	c.normalizeTags()
	c.normalizeDist()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEverything() error {
	c.Everything.Path = strings.TrimSpace(c.Everything.Path)
	if c.Everything.Path == "" {
		return nil
	}
	expanded, err := expandPath(c.Everything.Path)
	if err != nil {
		return fmt.Errorf("everything.path: %w", err)
	}
	c.Everything.Path = expanded
	return nil
}

func (c *Config) normalizeExport() {
	c.Export.EFUName = strings.TrimSpace(c.Export.EFUName)
	if c.Export.EFUName == "" {
		c.Export.EFUName = defaultEFUName
	}
}

func (c *Config) normalizeImport() {
	if len(c.Import.Extensions) == 0 {
		c.Import.Extensions = append([]string(nil), defaultImportExtensions...)
		return
	}
	extensions := make([]string, 0, len(c.Import.Extensions))
	seen := make(map[string]struct{}, len(c.Import.Extensions))
	for _, ext := range c.Import.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		extensions = append(extensions, normalized)
	}
	if len(extensions) == 0 {
		extensions = append([]string(nil), defaultImportExtensions...)
	}
	c.Import.Extensions = extensions
}

func (c *Config) normalizeTags() {
	c.Tags.Language = strings.TrimSpace(c.Tags.Language)
}

func (c *Config) normalizeDist() {
	c.Dist.Packager = strings.TrimSpace(c.Dist.Packager)
	if c.Dist.Packager == "" {
		c.Dist.Packager = defaultDistPackager
	}
	c.Dist.Entry = strings.TrimSpace(c.Dist.Entry)
	if c.Dist.Entry == "" {
		c.Dist.Entry = defaultDistEntry
	}
	c.Dist.Name = strings.TrimSpace(c.Dist.Name)
	if c.Dist.Name == "" {
		c.Dist.Name = defaultDistName
	}
	c.Dist.OutputDir = strings.TrimSpace(c.Dist.OutputDir)
	if c.Dist.OutputDir == "" {
		c.Dist.OutputDir = defaultDistOutputDir
	}

	bundle := make([]BundleEntry, 0, len(c.Dist.Bundle))
	for _, entry := range c.Dist.Bundle {
		source := strings.TrimSpace(entry.Source)
		if source == "" {
			continue
		}
		target := strings.TrimSpace(entry.Target)
		if target == "" {
			target = filepath.Base(source)
		}
		bundle = append(bundle, BundleEntry{Source: source, Target: target})
	}
	c.Dist.Bundle = bundle
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
