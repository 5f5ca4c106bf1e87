package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const separator = "=>"

var timestampLike = regexp.MustCompile(`\d{2,}:\d{2}:\d{2},\d{3}`)

// Entry is a single replacement pair.
type Entry struct {
	Wrong string
	Right string
}

// Dictionary holds ordered replacement pairs.
type Dictionary struct {
	entries []Entry
}

// Load reads a correction file from path. Each line is "wrong=>right";
// blank lines and lines starting with # are skipped.
func Load(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer file.Close()

	dict, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	return dict, nil
}

// Parse reads correction pairs from r.
func Parse(r io.Reader) (*Dictionary, error) {
	dict := &Dictionary{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		wrong, right, found := strings.Cut(line, separator)
		if !found {
			return nil, fmt.Errorf("line %d: missing %q separator", lineNo, separator)
		}
		wrong = strings.TrimSpace(wrong)
		right = strings.TrimSpace(right)
		if wrong == "" {
			return nil, fmt.Errorf("line %d: empty search term", lineNo)
		}
		if timestampLike.MatchString(wrong) || strings.Contains(wrong, "-->") {
			return nil, fmt.Errorf("line %d: term %q could corrupt timing lines", lineNo, wrong)
		}
		dict.entries = append(dict.entries, Entry{Wrong: wrong, Right: right})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return dict, nil
}

// Apply replaces every occurrence of each wrong term with its correction,
// in file order.
func (d *Dictionary) Apply(text string) string {
	if d == nil {
		return text
	}
	for _, entry := range d.entries {
		text = strings.ReplaceAll(text, entry.Wrong, entry.Right)
	}
	return text
}

// Len returns the number of loaded pairs.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
