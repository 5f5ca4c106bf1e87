package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateChunking(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateRefinement(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateChunking() error {
	if c.Chunking.Minutes <= 0 {
		return fmt.Errorf("chunking.minutes must be positive, got %d", c.Chunking.Minutes)
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if c.Transcription.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/subweave/config.toml"
		}
		return fmt.Errorf("transcription.api_key is required. Set OPENAI_API_KEY env var or edit %s (create with 'subweave config init')", defaultPath)
	}
	if c.Transcription.TimeoutSeconds < 0 {
		return errors.New("transcription.timeout_seconds must not be negative")
	}
	if c.Transcription.RetryAttempts < 1 {
		return errors.New("transcription.retry_attempts must be at least 1")
	}
	return nil
}

func (c *Config) validateRefinement() error {
	if !c.Refinement.Enabled {
		return nil
	}
	if c.Refinement.APIKey == "" {
		return errors.New("refinement.api_key must be set (or GEMINI_API_KEY exported) when refinement.enabled is true")
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
