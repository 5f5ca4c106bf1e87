// Package pipeline orchestrates the end-to-end conversion of one audio
// recording into merged subtitle files. It plans fixed-length chunks, slices
// the audio, transcribes each slice, applies local dictionary corrections,
// optionally refines each chunk with an LLM, and merges everything back onto
// the recording's timeline.
//
// Chunk transcriptions are cached in the artifacts store keyed by content
// fingerprint, so re-running an interrupted job only pays for the chunks it
// never finished. A file lock on the work directory keeps concurrent
// invocations from trampling each other's scratch files.
package pipeline
