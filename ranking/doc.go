// Package ranking implements the two-stage candidate ranking funnel.
//
// Stage 1 (SimilarityFilter) ranks the entire candidate pool against an
// opening by embedding cosine similarity. It is cheap, covers every
// candidate, and is completeness-critical: an embedding failure fails
// the stage rather than silently shrinking the pool.
//
// Stage 2 (Fuser) re-ranks only the top of the Stage 1 ranking with two
// expensive signals scored concurrently per candidate: a qualitative
// LLM judgment on a [0,10] scale and a cross-encoder relevance score
// rescaled onto (0,10) by a sigmoid. The two are combined with caller
// weights. Unlike Stage 1 this stage degrades gracefully: component
// failures contribute zero instead of failing the run.
//
// Both stages accept an optional FunnelMonitor for observing
// intermediate steps.
package ranking
