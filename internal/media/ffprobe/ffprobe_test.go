package ffprobe

import "testing"

const sampleOutput = `{
  "streams": [
    {"index": 0, "codec_name": "mp3", "codec_type": "audio", "sample_rate": "44100", "channels": 2}
  ],
  "format": {
    "filename": "talk.mp3",
    "nb_streams": 1,
    "duration": "700.123456",
    "format_name": "mp3"
  }
}`

func TestParseResult(t *testing.T) {
	result, err := parseResult([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("parseResult returned error: %v", err)
	}
	if len(result.Streams) != 1 || result.Streams[0].CodecName != "mp3" {
		t.Errorf("unexpected streams: %+v", result.Streams)
	}
	if result.Format.FormatName != "mp3" {
		t.Errorf("format name = %q", result.Format.FormatName)
	}
}

func TestDurationMillis(t *testing.T) {
	result, err := parseResult([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("parseResult returned error: %v", err)
	}
	millis, err := result.DurationMillis()
	if err != nil {
		t.Fatalf("DurationMillis returned error: %v", err)
	}
	if millis != 700_123 {
		t.Errorf("duration = %dms, want 700123", millis)
	}
}

func TestDurationMillisMissing(t *testing.T) {
	result, err := parseResult([]byte(`{"format": {}}`))
	if err != nil {
		t.Fatalf("parseResult returned error: %v", err)
	}
	if _, err := result.DurationMillis(); err == nil {
		t.Fatal("expected error for missing duration")
	}
}

func TestParseResultBadJSON(t *testing.T) {
	if _, err := parseResult([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
