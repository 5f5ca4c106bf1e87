package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTranscription(); err != nil {
		return err
	}
	c.normalizeRefinement()
	if err := c.normalizeDictionary(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscription() error {
	if c.Transcription.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.Transcription.APIKey = value
		}
	}
	c.Transcription.BaseURL = strings.TrimRight(strings.TrimSpace(c.Transcription.BaseURL), "/")
	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = defaultTranscriptionBaseURL
	}
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultTranscriptionModel
	}

	// The transcription API wants a bare ISO 639-1 code; accept any parsable
	// tag (e.g. "zh-TW", "English") and reduce it to its base language.
	lang := strings.TrimSpace(c.Transcription.Language)
	if lang != "" {
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("transcription.language: unrecognized tag %q: %w", lang, err)
		}
		base, _ := tag.Base()
		c.Transcription.Language = base.String()
	}
	return nil
}

func (c *Config) normalizeRefinement() {
	if c.Refinement.APIKey == "" {
		if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			c.Refinement.APIKey = value
		}
	}
	c.Refinement.Model = strings.TrimSpace(c.Refinement.Model)
	if c.Refinement.Model == "" {
		c.Refinement.Model = defaultRefinementModel
	}
	if c.Refinement.RetryAttempts <= 0 {
		c.Refinement.RetryAttempts = defaultRefinementRetries
	}
	if c.Refinement.RetryBaseSeconds <= 0 {
		c.Refinement.RetryBaseSeconds = defaultRefinementRetryBaseSecs
	}
}

func (c *Config) normalizeDictionary() error {
	if strings.TrimSpace(c.Dictionary.Path) == "" {
		c.Dictionary.Path = ""
		return nil
	}
	expanded, err := expandPath(c.Dictionary.Path)
	if err != nil {
		return fmt.Errorf("dictionary.path: %w", err)
	}
	c.Dictionary.Path = expanded
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpegBinary = strings.TrimSpace(c.Tools.FFmpegBinary)
	if c.Tools.FFmpegBinary == "" {
		c.Tools.FFmpegBinary = defaultFFmpegBinary
	}
	c.Tools.FFprobeBinary = strings.TrimSpace(c.Tools.FFprobeBinary)
	if c.Tools.FFprobeBinary == "" {
		c.Tools.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
