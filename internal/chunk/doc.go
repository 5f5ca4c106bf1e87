// Package chunk plans how a recording is cut into fixed-length segments for
// independent transcription. Spans are gap-free and overlap-free; the merge
// engine's offset arithmetic depends on that.
package chunk
