package srt

import "fmt"

// Merge stitches per-chunk SRT documents into one continuous stream. Each
// document is shifted by its chunk's start offset, reparsed, and the
// surviving blocks are renumbered sequentially across the whole result.
//
// A single document is returned byte-for-byte unchanged: no shifting and no
// renumbering, matching single-chunk behavior. Output block count never
// exceeds the sum of input block counts; malformed blocks are dropped, never
// fabricated.
func Merge(docs []string, offsets []float64) (string, error) {
	if len(docs) != len(offsets) {
		return "", fmt.Errorf("merge: %d documents with %d offsets", len(docs), len(offsets))
	}
	if len(docs) == 0 {
		return "", nil
	}
	if len(docs) == 1 {
		return docs[0], nil
	}

	var merged []Block
	for i, doc := range docs {
		merged = append(merged, ParseDocument(ShiftDocument(doc, offsets[i]))...)
	}
	for i := range merged {
		merged[i].Index = i + 1
	}
	return RenderDocument(merged), nil
}
