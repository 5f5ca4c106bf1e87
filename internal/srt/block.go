package srt

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	timeRangePattern = regexp.MustCompile(`^(\d{2,}:\d{2}:\d{2},\d{3}) --> (\d{2,}:\d{2}:\d{2},\d{3})$`)
	blankLinePattern = regexp.MustCompile(`\n{2,}`)
)

// Block is a single subtitle cue: a numeric index, a time range, and one or
// more lines of text.
type Block struct {
	Index int
	Start Timestamp
	End   Timestamp
	Lines []string
}

// ParseDocument splits an SRT document into its blocks. Candidates with fewer
// than three non-empty lines, a second line that is not a time range, or a
// reversed time range are dropped silently: transcription output is noisy and
// a partial block carries no recoverable timing.
func ParseDocument(doc string) []Block {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil
	}

	var blocks []Block
	for _, candidate := range blankLinePattern.Split(doc, -1) {
		if block, ok := parseBlock(candidate); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func parseBlock(candidate string) (Block, bool) {
	var lines []string
	for _, line := range strings.Split(candidate, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 3 {
		return Block{}, false
	}

	match := timeRangePattern.FindStringSubmatch(strings.TrimSpace(lines[1]))
	if match == nil {
		return Block{}, false
	}
	start, err := ParseTimestamp(match[1])
	if err != nil {
		return Block{}, false
	}
	end, err := ParseTimestamp(match[2])
	if err != nil {
		return Block{}, false
	}
	if start.TotalSeconds() > end.TotalSeconds() {
		return Block{}, false
	}

	// The source index is informational only; merge reassigns it. A garbled
	// index line does not disqualify an otherwise valid block.
	index, _ := strconv.Atoi(strings.TrimSpace(lines[0]))

	return Block{Index: index, Start: start, End: end, Lines: lines[2:]}, true
}

// RenderDocument writes blocks back out as SRT text with exactly one blank
// line between blocks and no trailing blank line.
func RenderDocument(blocks []Block) string {
	var sb strings.Builder
	for i, block := range blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strconv.Itoa(block.Index))
		sb.WriteByte('\n')
		sb.WriteString(block.Start.String())
		sb.WriteString(" --> ")
		sb.WriteString(block.End.String())
		for _, line := range block.Lines {
			sb.WriteByte('\n')
			sb.WriteString(line)
		}
	}
	return sb.String()
}
