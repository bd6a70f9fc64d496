// Package pipeline orchestrates ranking runs end to end: structured
// extraction from raw text, the two funnel stages, and persistence of
// every intermediate artifact with a per-stage checkpoint.
//
// A run's identity is derived from its inputs, so repeating a run with
// the same opening and pool overwrites the previous artifacts instead
// of duplicating them. Interrupted runs can be continued with Resume.
package pipeline
