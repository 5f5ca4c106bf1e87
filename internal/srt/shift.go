package srt

import "strings"

// ShiftDocument adds offsetSeconds to every timestamp in doc and returns the
// rewritten text. Substitution happens only on lines matching the time-range
// shape, so subtitle text can never be mistaken for timing data. A zero
// offset returns the input untouched, which also keeps the first chunk free
// of any float reformatting.
func ShiftDocument(doc string, offsetSeconds float64) string {
	if offsetSeconds == 0 {
		return doc
	}

	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		match := timeRangePattern.FindStringSubmatch(strings.TrimSpace(strings.TrimSuffix(line, "\r")))
		if match == nil {
			continue
		}
		start, err := ParseTimestamp(match[1])
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(match[2])
		if err != nil {
			continue
		}
		lines[i] = start.Add(offsetSeconds).String() + " --> " + end.Add(offsetSeconds).String()
	}
	return strings.Join(lines, "\n")
}
