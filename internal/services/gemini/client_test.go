package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleDoc = "1\n00:00:01,000 --> 00:00:02,500\n你好世界"

func newTestClient(t *testing.T, fn generateFunc) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), Config{
		Model:          "test-model",
		RetryAttempts:  3,
		RetryBaseDelay: time.Millisecond,
	}, WithGenerateFunc(fn), WithSleeper(func(time.Duration) {}))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestRefineDocumentSuccess(t *testing.T) {
	var gotModel, gotPrompt string
	client := newTestClient(t, func(ctx context.Context, model, prompt string) (string, error) {
		gotModel = model
		gotPrompt = prompt
		return sampleDoc + "\n", nil
	})

	refined, err := client.RefineDocument(context.Background(), sampleDoc)
	if err != nil {
		t.Fatalf("RefineDocument returned error: %v", err)
	}
	if refined != sampleDoc {
		t.Errorf("refined = %q", refined)
	}
	if gotModel != "test-model" {
		t.Errorf("model = %q", gotModel)
	}
	if !strings.Contains(gotPrompt, sampleDoc) {
		t.Errorf("prompt does not contain document: %q", gotPrompt)
	}
}

func TestRefineDocumentStripsCodeFences(t *testing.T) {
	client := newTestClient(t, func(ctx context.Context, model, prompt string) (string, error) {
		return "```srt\n" + sampleDoc + "\n```", nil
	})
	refined, err := client.RefineDocument(context.Background(), sampleDoc)
	if err != nil {
		t.Fatalf("RefineDocument returned error: %v", err)
	}
	if refined != sampleDoc {
		t.Errorf("refined = %q", refined)
	}
}

func TestRefineDocumentRetriesThenSucceeds(t *testing.T) {
	calls := 0
	var slept []time.Duration
	client, err := NewClient(context.Background(), Config{
		RetryAttempts:  3,
		RetryBaseDelay: 10 * time.Millisecond,
	}, WithGenerateFunc(func(ctx context.Context, model, prompt string) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient upstream failure")
		}
		return sampleDoc, nil
	}), WithSleeper(func(d time.Duration) { slept = append(slept, d) }))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := client.RefineDocument(context.Background(), sampleDoc); err != nil {
		t.Fatalf("RefineDocument returned error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	wantSleeps := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}
	if len(slept) != len(wantSleeps) || slept[0] != wantSleeps[0] || slept[1] != wantSleeps[1] {
		t.Errorf("slept %v, want %v", slept, wantSleeps)
	}
}

func TestRefineDocumentExhaustsRetries(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(ctx context.Context, model, prompt string) (string, error) {
		calls++
		return "", errors.New("still failing")
	})
	_, err := client.RefineDocument(context.Background(), sampleDoc)
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if !strings.Contains(err.Error(), "failed after 3 attempts") {
		t.Errorf("error = %v", err)
	}
}

func TestRefineDocumentStopsOnContextCancel(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(ctx context.Context, model, prompt string) (string, error) {
		calls++
		return "", context.Canceled
	})
	if _, err := client.RefineDocument(context.Background(), sampleDoc); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRefineDocumentRejectsEmptyInput(t *testing.T) {
	client := newTestClient(t, func(ctx context.Context, model, prompt string) (string, error) {
		t.Fatal("generate should not run")
		return "", nil
	})
	if _, err := client.RefineDocument(context.Background(), "  \n"); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestRefineDocumentTreatsEmptyResponseAsFailure(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(ctx context.Context, model, prompt string) (string, error) {
		calls++
		return "   ", nil
	})
	if _, err := client.RefineDocument(context.Background(), sampleDoc); err == nil {
		t.Fatal("expected error for empty model output")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestNewClientRequiresAPIKeyWithoutInjectedGenerate(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
