package srt

import "fmt"

// VerifyRefinement checks that a refined document preserves the original's
// block count, order, and every timestamp. Refinement passes are only allowed
// to touch text lines; a violation means the refined document must not be
// trusted and the caller should fall back to the original.
func VerifyRefinement(original, refined string) error {
	before := ParseDocument(original)
	after := ParseDocument(refined)

	if len(before) != len(after) {
		return fmt.Errorf("refinement changed block count from %d to %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Start != after[i].Start || before[i].End != after[i].End {
			return fmt.Errorf("refinement changed timing of block %d: %s --> %s became %s --> %s",
				i+1, before[i].Start, before[i].End, after[i].Start, after[i].End)
		}
	}
	return nil
}
