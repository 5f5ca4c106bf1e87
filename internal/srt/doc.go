// Package srt implements the subtitle timeline core: timestamp encoding,
// lenient block parsing, uniform time shifting, and the merge engine that
// stitches independently transcribed chunk documents into one renumbered
// stream.
//
// Everything in this package is pure. Parsing is deliberately lossy toward
// malformed blocks because upstream transcription output is noisy; the exact
// dropping rules are part of the contract and covered by tests. Callers that
// route documents through an LLM refinement pass can use VerifyRefinement to
// confirm the pass left block structure and timing untouched.
package srt
