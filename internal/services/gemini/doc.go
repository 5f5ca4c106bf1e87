// Package gemini refines transcribed subtitle documents with the Gemini API.
// The model cleans up recognition mistakes and filler words inside each cue
// while leaving cue boundaries and timestamps alone; callers verify that
// contract after every call and fall back to the unrefined text when the
// model breaks it.
package gemini
