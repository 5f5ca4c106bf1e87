// Package artifacts persists per-chunk transcription results and run history
// in SQLite. Chunks are keyed by source fingerprint, chunk index, and chunk
// length so a rerun over the same recording with the same chunking reuses
// finished transcriptions instead of paying for them again.
package artifacts
