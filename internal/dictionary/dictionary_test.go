package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAndApply(t *testing.T) {
	dict, err := Parse(strings.NewReader("財經平方=>財經M平方\nRaychel=>Rachel\n\n# comment\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if dict.Len() != 2 {
		t.Fatalf("Len = %d, want 2", dict.Len())
	}

	in := "1\n00:00:00,000 --> 00:00:02,000\nRaychel 在財經平方說話"
	want := "1\n00:00:00,000 --> 00:00:02,000\nRachel 在財經M平方說話"
	if got := dict.Apply(in); got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}
}

func TestParseAppliesInFileOrder(t *testing.T) {
	dict, err := Parse(strings.NewReader("aa=>bb\nbb=>cc\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// First pair rewrites before the second sees the text.
	if got := dict.Apply("aa"); got != "cc" {
		t.Errorf("Apply = %q, want %q", got, "cc")
	}
}

func TestParseRejectsMalformedLines(t *testing.T) {
	tests := []string{
		"no separator here",
		"=>missing term",
		"00:00:01,000=>oops",
		"a --> b=>c",
	}
	for _, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestApplyNilDictionary(t *testing.T) {
	var dict *Dictionary
	if got := dict.Apply("unchanged"); got != "unchanged" {
		t.Errorf("nil Apply = %q", got)
	}
	if dict.Len() != 0 {
		t.Errorf("nil Len = %d", dict.Len())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_dict.txt")
	if err := os.WriteFile(path, []byte("teh=>the\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dict, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := dict.Apply("teh end"); got != "the end" {
		t.Errorf("Apply = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
