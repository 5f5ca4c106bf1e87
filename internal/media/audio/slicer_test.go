package audio

import (
	"context"
	"strings"
	"testing"
)

func TestExtractSegmentBuildsExpectedCommand(t *testing.T) {
	slicer := NewSlicer("ffmpeg")

	var gotName string
	var gotArgs []string
	slicer.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	err := slicer.ExtractSegment(context.Background(), "talk.mp3", 300_000, 100_500, "out/chunk_002.mp3")
	if err != nil {
		t.Fatalf("ExtractSegment returned error: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Errorf("binary = %q", gotName)
	}

	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{"-ss 300.000", "-t 100.500", "-i talk.mp3", "-c:a libmp3lame", "out/chunk_002.mp3"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
}

func TestExtractSegmentRejectsBadInput(t *testing.T) {
	slicer := NewSlicer("")
	slicer.WithCommandRunner(func(context.Context, string, ...string) error { return nil })

	ctx := context.Background()
	if err := slicer.ExtractSegment(ctx, "", 0, 1000, "out.mp3"); err == nil {
		t.Error("expected error for empty source")
	}
	if err := slicer.ExtractSegment(ctx, "talk.mp3", 0, 0, "out.mp3"); err == nil {
		t.Error("expected error for zero duration")
	}
	if err := slicer.ExtractSegment(ctx, "talk.mp3", -1, 1000, "out.mp3"); err == nil {
		t.Error("expected error for negative start")
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		millis int64
		want   string
	}{
		{0, "0.000"},
		{1500, "1.500"},
		{300_000, "300.000"},
		{100_001, "100.001"},
	}
	for _, tc := range tests {
		if got := formatSeconds(tc.millis); got != tc.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tc.millis, got, tc.want)
		}
	}
}
