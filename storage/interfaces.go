package storage

import (
	"context"

	"github.com/poiesic/talentrank/core"
)

// RunRepository persists the artifacts of ranking pipeline runs: the
// structured inputs, the per-stage rankings, and a checkpoint recording
// how far each run has progressed.
// Implementations must be thread-safe and support concurrent access.
type RunRepository interface {
	// SaveJobSpec stores the opening for a run.
	SaveJobSpec(ctx context.Context, runID core.ID, spec *core.JobSpec) error

	// GetJobSpec retrieves the opening for a run.
	// Returns ErrNotFound if the run has no stored spec.
	GetJobSpec(ctx context.Context, runID core.ID) (*core.JobSpec, error)

	// SaveCandidates stores the candidate pool for a run.
	SaveCandidates(ctx context.Context, runID core.ID, records []*core.CandidateRecord) error

	// GetCandidates retrieves the candidate pool for a run.
	// Returns ErrNotFound if the run has no stored pool.
	GetCandidates(ctx context.Context, runID core.ID) ([]*core.CandidateRecord, error)

	// SaveSimilarityRanking stores the Stage 1 result for a run.
	SaveSimilarityRanking(ctx context.Context, runID core.ID, ranking []core.SimilarityRankingEntry) error

	// GetSimilarityRanking retrieves the Stage 1 result for a run.
	// Returns ErrNotFound if the run has no stored ranking.
	GetSimilarityRanking(ctx context.Context, runID core.ID) ([]core.SimilarityRankingEntry, error)

	// SaveFusionRanking stores the Stage 2 result for a run.
	SaveFusionRanking(ctx context.Context, runID core.ID, ranking []core.FusionRankingEntry) error

	// GetFusionRanking retrieves the Stage 2 result for a run.
	// Returns ErrNotFound if the run has no stored ranking.
	GetFusionRanking(ctx context.Context, runID core.ID) ([]core.FusionRankingEntry, error)

	// SaveCheckpoint records the stage a run has reached.
	// Sets UpdatedAt automatically.
	SaveCheckpoint(ctx context.Context, checkpoint *core.RunCheckpoint) error

	// LoadCheckpoint retrieves the checkpoint for a run.
	// Returns nil, nil if the run has no checkpoint.
	LoadCheckpoint(ctx context.Context, runID core.ID) (*core.RunCheckpoint, error)

	// ListRuns returns the IDs of all runs that have a checkpoint.
	ListRuns(ctx context.Context) ([]core.ID, error)

	// Close closes the repository and releases resources.
	Close() error
}
