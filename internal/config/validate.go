package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePWConfig(); err != nil {
		return err
	}
	if err := c.validateTarget(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePWConfig() error {
	if c.PWConfig.Binary == "" {
		return errors.New("pwconfig.binary must be set")
	}
	if c.PWConfig.TimeoutSeconds < 0 {
		return errors.New("pwconfig.timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateTarget() error {
	if c.Target.File == "" {
		return errors.New("target.file must be set")
	}
	if c.Target.Section == "" {
		return errors.New("target.section must be set")
	}
	return nil
}

func (c *Config) validateDisplay() error {
	switch c.Display.UnscopedPosition {
	case UnscopedFirst, UnscopedLast:
		return nil
	default:
		return fmt.Errorf("display.unscoped_position must be %q or %q, got %q", UnscopedFirst, UnscopedLast, c.Display.UnscopedPosition)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
