package chunk

import (
	"errors"
	"fmt"
)

// ErrChunkLength reports a non-positive chunk length configuration.
var ErrChunkLength = errors.New("chunk length must be positive")

// Span is one planned slice of the source audio.
type Span struct {
	// Index is the zero-based position of the span in the recording.
	Index int
	// StartOffsetSeconds is how far after the start of the recording this
	// span begins. Added to every timestamp the span's transcription
	// produces before merging.
	StartOffsetSeconds float64
	// DurationMillis is the actual length of the span. Equal to the chunk
	// length for all spans except possibly the last.
	DurationMillis int64
}

// Plan covers totalMillis with consecutive chunkMillis-long spans; the final
// span absorbs whatever remains. A zero-length recording plans no spans.
func Plan(totalMillis, chunkMillis int64) ([]Span, error) {
	if chunkMillis <= 0 {
		return nil, fmt.Errorf("%w: got %dms", ErrChunkLength, chunkMillis)
	}
	if totalMillis < 0 {
		return nil, fmt.Errorf("plan: negative total duration %dms", totalMillis)
	}

	var spans []Span
	for start := int64(0); start < totalMillis; start += chunkMillis {
		length := chunkMillis
		if start+length > totalMillis {
			length = totalMillis - start
		}
		spans = append(spans, Span{
			Index:              len(spans),
			StartOffsetSeconds: float64(start) / 1000,
			DurationMillis:     length,
		})
	}
	return spans, nil
}

// StartOffsetMillis returns the span start as milliseconds.
func (s Span) StartOffsetMillis() int64 {
	return int64(s.StartOffsetSeconds * 1000)
}
