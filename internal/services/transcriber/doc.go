// Package transcriber wraps the OpenAI audio transcription API. One call
// uploads one audio chunk and returns its subtitle document in SRT form with
// chunk-local timestamps; the merge engine later lifts those onto the full
// recording's timeline.
//
// Transient failures (throttling, 5xx, network timeouts) are retried with
// exponential backoff up to a bounded attempt count. Anything else surfaces
// immediately so callers can distinguish a bad request from a flaky service.
package transcriber
