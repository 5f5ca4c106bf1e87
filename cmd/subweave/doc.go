// Command subweave turns long audio recordings into corrected SRT subtitle
// files by transcribing fixed-length chunks and merging them back onto the
// recording's timeline.
package main
