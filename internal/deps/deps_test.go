package deps

import (
	"os"
	"path/filepath"
	"testing"

	"subweave/internal/testsupport"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available || results[0].Detail != "" {
		t.Errorf("present binary: %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Errorf("missing binary: %#v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Errorf("unset binary: %#v", results[2])
	}
}

func TestVerify(t *testing.T) {
	binDir := t.TempDir()
	cfg := testsupport.NewConfig(t)
	cfg.Tools.FFmpegBinary = writeStub(t, binDir, "ffmpeg")
	cfg.Tools.FFprobeBinary = writeStub(t, binDir, "ffprobe")

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify returned error: %v", err)
	}

	cfg.Tools.FFprobeBinary = "definitely-not-installed"
	if err := Verify(cfg); err == nil {
		t.Error("expected error for missing ffprobe")
	}
}
