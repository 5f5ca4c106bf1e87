package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveOffsets(t *testing.T) {
	offsets, err := resolveOffsets("0,300.5,600", 0, 3)
	if err != nil {
		t.Fatalf("resolveOffsets returned error: %v", err)
	}
	want := []float64{0, 300.5, 600}
	for i, value := range want {
		if offsets[i] != value {
			t.Errorf("offsets[%d] = %v, want %v", i, offsets[i], value)
		}
	}

	offsets, err = resolveOffsets("", 5, 3)
	if err != nil {
		t.Fatalf("resolveOffsets returned error: %v", err)
	}
	want = []float64{0, 300, 600}
	for i, value := range want {
		if offsets[i] != value {
			t.Errorf("derived offsets[%d] = %v, want %v", i, offsets[i], value)
		}
	}
}

func TestResolveOffsetsErrors(t *testing.T) {
	if _, err := resolveOffsets("0,300", 0, 3); err == nil {
		t.Error("expected error for offset count mismatch")
	}
	if _, err := resolveOffsets("0,abc", 0, 2); err == nil {
		t.Error("expected error for unparseable offset")
	}
	if _, err := resolveOffsets("0", 5, 1); err == nil {
		t.Error("expected error for mutually exclusive flags")
	}
	if _, err := resolveOffsets("", 0, 2); err == nil {
		t.Error("expected error when no offset source given")
	}
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "chunk0.srt")
	second := filepath.Join(dir, "chunk1.srt")
	writeFile(t, first, "1\n00:00:01,000 --> 00:00:02,000\nhello\n")
	writeFile(t, second, "1\n00:00:03,000 --> 00:00:04,000\nworld\n")
	output := filepath.Join(dir, "merged.srt")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"merge", "--chunk-minutes", "5", "-o", output, first, second})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("merge command returned error: %v", err)
	}

	merged, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read merged output: %v", err)
	}
	want := "1\n00:00:01,000 --> 00:00:02,000\nhello\n\n" +
		"2\n00:05:03,000 --> 00:05:04,000\nworld\n"
	if string(merged) != want {
		t.Errorf("merged = %q, want %q", merged, want)
	}
}

func TestMergeCommandStdout(t *testing.T) {
	dir := t.TempDir()
	only := filepath.Join(dir, "only.srt")
	doc := "7\n00:00:01,000 --> 00:00:02,000\nsingle"
	writeFile(t, only, doc)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"merge", "--offsets", "0", only})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("merge command returned error: %v", err)
	}
	// A single document passes through untouched, odd index included.
	if got := strings.TrimRight(stdout.String(), "\n"); got != doc {
		t.Errorf("stdout = %q, want %q", got, doc)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
