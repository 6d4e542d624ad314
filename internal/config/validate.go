package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	if err := c.validateTags(); err != nil {
		return err
	}
	if err := c.validateDist(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateImport() error {
	if len(c.Import.Extensions) == 0 {
		return errors.New("import.extensions must include at least one extension")
	}
	for _, ext := range c.Import.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("import.extensions entry %q must start with a dot", ext)
		}
	}
	return nil
}

func (c *Config) validateTags() error {
	if c.Tags.Language == "" {
		return nil
	}
	if _, err := language.Parse(c.Tags.Language); err != nil {
		return fmt.Errorf("tags.language %q is not a valid BCP 47 tag: %w", c.Tags.Language, err)
	}
	return nil
}

func (c *Config) validateDist() error {
	if c.Dist.Packager == "" {
		return errors.New("dist.packager must be set")
	}
	if c.Dist.Entry == "" {
		return errors.New("dist.entry must be set")
	}
	if c.Dist.Name == "" {
		return errors.New("dist.name must be set")
	}
	if c.Dist.OutputDir == "" {
		return errors.New("dist.output_dir must be set")
	}
	for _, entry := range c.Dist.Bundle {
		if strings.TrimSpace(entry.Source) == "" {
			return errors.New("dist.bundle entries must name a source file")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
