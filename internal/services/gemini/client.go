package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel          = "gemini-2.5-pro"
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 2 * time.Second
	defaultRetryMaxDelay  = 30 * time.Second
)

// Config captures the runtime settings for the refinement model.
type Config struct {
	APIKey         string
	Model          string
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

// generateFunc produces model output for a prompt. It exists so tests can
// exercise the retry loop without a live API.
type generateFunc func(ctx context.Context, model, prompt string) (string, error)

// Client wraps the Gemini text generation endpoint for subtitle refinement.
type Client struct {
	cfg      Config
	generate generateFunc
	sleeper  func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithGenerateFunc overrides the model call (useful for tests).
func WithGenerateFunc(fn generateFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// WithSleeper overrides how retry sleeps are performed.
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient constructs a refinement client. It dials the Gemini API unless a
// generate function is injected via options.
func NewClient(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	client := &Client{cfg: normalizeConfig(cfg)}
	for _, opt := range opts {
		opt(client)
	}
	if client.generate == nil {
		if client.cfg.APIKey == "" {
			return nil, errors.New("refine: api key required")
		}
		api, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  client.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("refine: create client: %w", err)
		}
		client.generate = func(ctx context.Context, model, prompt string) (string, error) {
			resp, err := api.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
				SystemInstruction: &genai.Content{
					Parts: []*genai.Part{{Text: systemInstruction}},
				},
			})
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		}
	}
	return client, nil
}

func normalizeConfig(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = defaultRetryAttempts
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}
	return cfg
}

// RefineDocument sends one SRT document for correction and returns the
// model's version. Failures are retried with exponential backoff up to the
// configured attempt count; the final error wraps the last failure.
func (c *Client) RefineDocument(ctx context.Context, document string) (string, error) {
	if strings.TrimSpace(document) == "" {
		return "", errors.New("refine: empty document")
	}

	prompt := RefinementPrompt(document)
	var lastErr error
	for attempt := 1; attempt <= c.cfg.RetryAttempts; attempt++ {
		text, err := c.generate(ctx, c.cfg.Model, prompt)
		if err == nil {
			refined := stripCodeFences(strings.TrimSpace(text))
			if refined == "" {
				err = errors.New("model returned empty text")
			} else {
				return refined, nil
			}
		}

		lastErr = err
		if attempt >= c.cfg.RetryAttempts || ctx.Err() != nil {
			break
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		c.sleep(backoffDelay(c.cfg.RetryBaseDelay, attempt))
	}
	return "", fmt.Errorf("refine: failed after %d attempts: %w", c.cfg.RetryAttempts, lastErr)
}

// stripCodeFences unwraps responses the model wrapped in a markdown fence
// despite instructions.
func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func backoffDelay(base time.Duration, attempt int) time.Duration {
	delay := base
	for i := 1; i < attempt; i++ {
		if delay > defaultRetryMaxDelay/2 {
			return defaultRetryMaxDelay
		}
		delay *= 2
	}
	if delay > defaultRetryMaxDelay {
		delay = defaultRetryMaxDelay
	}
	return delay
}

func (c *Client) sleep(delay time.Duration) {
	if delay <= 0 {
		return
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return
	}
	time.Sleep(delay)
}
