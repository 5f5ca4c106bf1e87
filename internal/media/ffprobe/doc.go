// Package ffprobe shells out to ffprobe to inspect media containers. The
// pipeline only needs the container duration, but the full stream/format
// decode is kept so callers can log what they are about to slice.
package ffprobe
