package ranking

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/signal"
)

// SimilarityFilter is the first stage of the ranking funnel. It embeds
// the opening and every candidate in the pool and ranks the whole pool
// by cosine similarity. The stage is completeness-critical: it either
// returns one entry per candidate or fails outright.
type SimilarityFilter struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// FilterOption configures a SimilarityFilter.
type FilterOption func(*SimilarityFilter) error

// WithFilterLogger sets a custom logger.
// Default is slog.Default().
func WithFilterLogger(logger *slog.Logger) FilterOption {
	return func(f *SimilarityFilter) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewSimilarityFilter creates a new similarity filter.
func NewSimilarityFilter(embedder ai.Embedder, opts ...FilterOption) (*SimilarityFilter, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	f := &SimilarityFilter{
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Filter ranks the full candidate pool against the opening by embedding
// similarity. Returns one entry per candidate, sorted by score descending;
// ties keep pool order.
func (f *SimilarityFilter) Filter(ctx context.Context, spec *core.JobSpec, candidates []*core.CandidateRecord) ([]core.SimilarityRankingEntry, error) {
	return f.FilterWithMonitor(ctx, spec, candidates, nil)
}

// FilterWithMonitor ranks the full candidate pool with monitoring.
// The monitor receives callbacks at each step of the filtering process.
func (f *SimilarityFilter) FilterWithMonitor(ctx context.Context, spec *core.JobSpec, candidates []*core.CandidateRecord, monitor FunnelMonitor) ([]core.SimilarityRankingEntry, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	// A nil spec ranks against the empty signal text, matching the
	// serializer's tolerance.
	if spec == nil {
		spec = &core.JobSpec{}
	}

	monitor.StartFilter(spec.JobContext.JobTitle, len(candidates))

	if len(candidates) == 0 {
		return []core.SimilarityRankingEntry{}, nil
	}

	jobText := signal.JobText(spec)
	jobVector, err := f.embedder.EmbedText(ctx, jobText)
	if err != nil {
		f.logger.Error("error embedding job text", "jobTitle", spec.JobContext.JobTitle, "err", err)
		return nil, err
	}
	monitor.AfterJobEmbedding(len(jobVector))

	texts := make([]string, len(candidates))
	for i, record := range candidates {
		texts[i] = signal.CandidateText(record)
	}

	// Any embedding failure fails the whole stage: a partial ranking here
	// would silently drop candidates from the funnel.
	vectors, err := f.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		f.logger.Error("error embedding candidate pool", "poolSize", len(candidates), "err", err)
		return nil, err
	}
	if len(vectors) != len(candidates) {
		f.logger.Error("embedder returned wrong vector count",
			"expected", len(candidates), "got", len(vectors))
		return nil, ErrEmbeddingCountMismatch
	}
	monitor.AfterCandidateEmbeddings(len(vectors))

	ranked := make([]core.SimilarityRankingEntry, len(candidates))
	for i, record := range candidates {
		ranked[i] = core.SimilarityRankingEntry{
			CandidateName: record.Identity(),
			Score:         CosineSimilarity(jobVector, vectors[i]),
		}
	}

	// Stable so that equal scores preserve pool order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	monitor.FinishFilter(ranked)

	f.logger.Debug("similarity filter complete", "poolSize", len(candidates))
	return ranked, nil
}
