package ai

import (
	"context"

	"github.com/poiesic/talentrank/core"
)

// Embedder generates vector embeddings from signal text for semantic
// similarity scoring. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The same text must yield the same vector (or near-identical, within
	// the tolerance cosine similarity is robust to).
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice contains embeddings in the same order as the inputs.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// PairwiseScorer scores a (query, document) text pair jointly in one pass.
// The returned score is a raw relevance value with an unbounded,
// model-specific range; higher means more relevant. Callers rescale it
// before combining with other signals.
type PairwiseScorer interface {
	Score(ctx context.Context, query, document string) (float64, error)
}

// Judge produces a qualitative evaluation of a candidate against an
// opening: a narrative analysis, strengths, weaknesses, criterion-level
// matches, and a score on the fixed [0,10] scale.
// A Judge may fail; callers treat a failed judgment as absent.
type Judge interface {
	Evaluate(ctx context.Context, spec *core.JobSpec, record *core.CandidateRecord) (*core.Judgment, error)
}

// RecordExtractor turns raw text into structured records. It sits outside
// the ranking funnel: the funnel consumes structured records and never
// calls the extractor itself.
type RecordExtractor interface {
	// ExtractJobSpec parses a raw job description into a structured spec.
	ExtractJobSpec(ctx context.Context, text string) (*core.JobSpec, error)

	// ExtractCandidate parses raw resume text into a structured record.
	ExtractCandidate(ctx context.Context, text string) (*core.CandidateRecord, error)
}

// AIProvider aggregates the scoring capabilities for convenient
// initialization and lifecycle management. Capabilities are explicit
// handles owned by whoever built the provider, never ambient state.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// PairwiseScorer returns the cross-encoder scoring service.
	PairwiseScorer() PairwiseScorer

	// Judge returns the qualitative judgment service.
	Judge() Judge

	// RecordExtractor returns the structured extraction service.
	RecordExtractor() RecordExtractor

	// Close releases resources held by the provider and its services.
	Close() error
}
