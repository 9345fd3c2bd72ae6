package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConvert() error {
	size := c.Convert.FrameSize
	if size <= 0 || size&(size-1) != 0 {
		return fmt.Errorf("convert.frame_size must be a power of two, got %d", size)
	}
	if size > 1024 {
		return fmt.Errorf("convert.frame_size must not exceed 1024, got %d", size)
	}
	if c.Convert.FrameRate <= 0 {
		return errors.New("convert.frame_rate must be positive")
	}
	if c.Convert.FrameRate > 120 {
		return fmt.Errorf("convert.frame_rate must not exceed 120, got %d", c.Convert.FrameRate)
	}
	switch c.Convert.Quality {
	case QualityStandard, QualityHigh:
	default:
		return fmt.Errorf("convert.quality must be %q or %q, got %q", QualityStandard, QualityHigh, c.Convert.Quality)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
