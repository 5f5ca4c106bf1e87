package chunk

import (
	"errors"
	"testing"
)

func TestPlanLastChunkShorter(t *testing.T) {
	spans, err := Plan(700_000, 300_000)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	wantOffsets := []float64{0, 300, 600}
	for i, span := range spans {
		if span.StartOffsetSeconds != wantOffsets[i] {
			t.Errorf("span %d offset = %g, want %g", i, span.StartOffsetSeconds, wantOffsets[i])
		}
		if span.Index != i {
			t.Errorf("span %d carries index %d", i, span.Index)
		}
	}
	if spans[0].DurationMillis != 300_000 || spans[1].DurationMillis != 300_000 {
		t.Errorf("full spans have durations %d, %d", spans[0].DurationMillis, spans[1].DurationMillis)
	}
	if spans[2].DurationMillis != 100_000 {
		t.Errorf("final span duration = %d, want 100000", spans[2].DurationMillis)
	}
}

func TestPlanExactMultiple(t *testing.T) {
	spans, err := Plan(600_000, 300_000)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].DurationMillis != 300_000 {
		t.Errorf("final span duration = %d", spans[1].DurationMillis)
	}
}

func TestPlanNoGapsOrOverlaps(t *testing.T) {
	spans, err := Plan(1_234_567, 45_000)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	var covered int64
	for i, span := range spans {
		if got := span.StartOffsetMillis(); got != covered {
			t.Fatalf("span %d starts at %dms, expected %dms", i, got, covered)
		}
		covered += span.DurationMillis
	}
	if covered != 1_234_567 {
		t.Fatalf("spans cover %dms of 1234567ms", covered)
	}
}

func TestPlanShortRecording(t *testing.T) {
	spans, err := Plan(1000, 300_000)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(spans) != 1 || spans[0].DurationMillis != 1000 {
		t.Fatalf("unexpected spans: %+v", spans)
	}
}

func TestPlanZeroDuration(t *testing.T) {
	spans, err := Plan(0, 300_000)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(spans) != 0 {
		t.Fatalf("expected no spans, got %d", len(spans))
	}
}

func TestPlanInvalidChunkLength(t *testing.T) {
	for _, length := range []int64{0, -1} {
		if _, err := Plan(1000, length); !errors.Is(err, ErrChunkLength) {
			t.Errorf("Plan(1000, %d) = %v, want ErrChunkLength", length, err)
		}
	}
}

func TestPlanNegativeTotal(t *testing.T) {
	if _, err := Plan(-1, 1000); err == nil {
		t.Fatal("expected error for negative total duration")
	}
}
