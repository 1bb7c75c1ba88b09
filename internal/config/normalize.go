package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizePWConfig()
	c.normalizeTarget()
	c.normalizeDisplay()
	if err := c.normalizeStaging(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePWConfig() {
	c.PWConfig.Binary = strings.TrimSpace(c.PWConfig.Binary)
	if c.PWConfig.Binary == "" {
		if value, ok := os.LookupEnv("PWTUNE_PW_CONFIG"); ok && strings.TrimSpace(value) != "" {
			c.PWConfig.Binary = strings.TrimSpace(value)
		} else {
			c.PWConfig.Binary = defaultPWConfigBinary
		}
	}
	c.PWConfig.TemplateDir = strings.TrimSpace(c.PWConfig.TemplateDir)
	if c.PWConfig.TemplateDir == "" {
		c.PWConfig.TemplateDir = defaultTemplateDir
	}
}

func (c *Config) normalizeTarget() {
	c.Target.File = strings.TrimSpace(c.Target.File)
	c.Target.Section = strings.TrimSpace(c.Target.Section)
	c.Target.Subsection = strings.TrimSuffix(strings.TrimSpace(c.Target.Subsection), ".")
}

func (c *Config) normalizeDisplay() {
	c.Display.UnscopedTitle = strings.TrimSpace(c.Display.UnscopedTitle)
	if c.Display.UnscopedTitle == "" {
		c.Display.UnscopedTitle = defaultUnscopedTitle
	}
	c.Display.UnscopedPosition = strings.ToLower(strings.TrimSpace(c.Display.UnscopedPosition))
	if c.Display.UnscopedPosition == "" {
		c.Display.UnscopedPosition = UnscopedFirst
	}
}

func (c *Config) normalizeStaging() error {
	if strings.TrimSpace(c.Staging.DraftsPath) == "" {
		c.Staging.DraftsPath = defaultDraftsPath()
	}
	var err error
	if c.Staging.DraftsPath, err = expandPath(strings.TrimSpace(c.Staging.DraftsPath)); err != nil {
		return fmt.Errorf("staging.drafts_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
