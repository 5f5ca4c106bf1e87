// Package dictionary applies local wrong=>right term corrections to
// transcribed subtitle text before any LLM refinement runs. Replacement is
// exact-substring and order-preserving; entries that could collide with
// timing lines are rejected at load time.
package dictionary
