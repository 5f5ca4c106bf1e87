// Package audio cuts time-range segments out of a source recording with
// ffmpeg, producing the per-chunk files handed to the transcription service.
package audio
