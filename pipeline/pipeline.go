// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/ranking"
	"github.com/poiesic/talentrank/signal"
	"github.com/poiesic/talentrank/storage"
)

// Default fusion parameters.
const (
	DefaultTopN           = 5
	DefaultJudgeWeight    = 0.7
	DefaultPairwiseWeight = 0.3
)

// Pipeline orchestrates a full ranking run: extraction of structured
// records from raw text, the similarity filter over the whole pool, and
// the fusion scorer over the shortlist, persisting artifacts and a
// checkpoint after each stage.
type Pipeline struct {
	repository     storage.RunRepository
	provider       ai.AIProvider
	filter         *ranking.SimilarityFilter
	fuser          *ranking.Fuser
	extractPool    *ants.Pool
	poolSize       int
	topN           int
	judgeWeight    float64
	pairwiseWeight float64
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithTopN sets how many Stage 1 candidates advance to fusion.
// Default is DefaultTopN.
func WithTopN(topN int) Option {
	return func(p *Pipeline) error {
		p.topN = topN
		return nil
	}
}

// WithWeights sets the fusion weights for the judge and pairwise
// components. Weights are applied as given, without normalization.
// Defaults are DefaultJudgeWeight and DefaultPairwiseWeight.
func WithWeights(judgeWeight, pairwiseWeight float64) Option {
	return func(p *Pipeline) error {
		p.judgeWeight = judgeWeight
		p.pairwiseWeight = pairwiseWeight
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent extraction and
// scoring. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ranking pipeline.
func NewPipeline(repository storage.RunRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	p := &Pipeline{
		repository:     repository,
		provider:       provider,
		poolSize:       poolSize,
		topN:           DefaultTopN,
		judgeWeight:    DefaultJudgeWeight,
		pairwiseWeight: DefaultPairwiseWeight,
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	// Create stages after options are applied (so they get final config)
	filter, err := ranking.NewSimilarityFilter(provider.Embedder(), ranking.WithFilterLogger(p.logger))
	if err != nil {
		return nil, err
	}

	fuser, err := ranking.NewFuser(provider.Judge(), provider.PairwiseScorer(),
		ranking.WithFuserPoolSize(p.poolSize), ranking.WithFuserLogger(p.logger))
	if err != nil {
		return nil, err
	}

	extractPool, err := ants.NewPool(p.poolSize)
	if err != nil {
		fuser.Release()
		return nil, err
	}

	p.filter = filter
	p.fuser = fuser
	p.extractPool = extractPool

	return p, nil
}

// RunResult is the output of a complete ranking run.
type RunResult struct {
	RunID      core.ID                       `json:"run_id"`
	Similarity []core.SimilarityRankingEntry `json:"similarity_ranking"`
	Fusion     []core.FusionRankingEntry     `json:"fusion_ranking"`
}

// runID derives a deterministic run identity from the opening and the
// candidate pool, so re-running the same inputs overwrites the same run
// rather than accumulating copies.
func runID(spec *core.JobSpec, candidates []*core.CandidateRecord) core.ID {
	var sb strings.Builder
	sb.WriteString(signal.JobText(spec))
	for _, record := range candidates {
		sb.WriteByte(0)
		sb.WriteString(record.Identity())
	}
	return core.IDFromContent(sb.String())
}

// Rank runs the full two-stage funnel over structured inputs.
// The spec and every record are validated before any scoring happens,
// and each stage's output is persisted before the next stage starts.
func (p *Pipeline) Rank(ctx context.Context, spec *core.JobSpec, candidates []*core.CandidateRecord) (*RunResult, error) {
	return p.RankWithMonitor(ctx, spec, candidates, nil)
}

// RankWithMonitor runs the full two-stage funnel with monitoring.
// The monitor receives callbacks from both funnel stages.
func (p *Pipeline) RankWithMonitor(ctx context.Context, spec *core.JobSpec, candidates []*core.CandidateRecord, monitor ranking.FunnelMonitor) (*RunResult, error) {
	if err := core.ValidateJobSpec(spec); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if err := core.ValidateCandidatePool(candidates); err != nil {
		return nil, err
	}

	id := runID(spec, candidates)
	logger := p.logger.With("runID", id)
	logger.Info("starting ranking run",
		"jobTitle", spec.JobContext.JobTitle,
		"poolSize", len(candidates),
		"topN", p.topN)

	if err := p.repository.SaveJobSpec(ctx, id, spec); err != nil {
		return nil, err
	}
	if err := p.repository.SaveCandidates(ctx, id, candidates); err != nil {
		return nil, err
	}

	similarity, err := p.filter.FilterWithMonitor(ctx, spec, candidates, monitor)
	if err != nil {
		logger.Error("similarity filter failed", "err", err)
		return nil, err
	}
	if err := p.repository.SaveSimilarityRanking(ctx, id, similarity); err != nil {
		return nil, err
	}
	if err := p.repository.SaveCheckpoint(ctx, &core.RunCheckpoint{RunID: id, Stage: core.StageFiltered}); err != nil {
		return nil, err
	}
	logger.Info("similarity filter complete", "ranked", len(similarity))

	fusion, err := p.fuser.FuseWithMonitor(ctx, spec, similarity, candidates, p.topN, p.judgeWeight, p.pairwiseWeight, monitor)
	if err != nil {
		logger.Error("fusion scoring failed", "err", err)
		return nil, err
	}
	if err := p.repository.SaveFusionRanking(ctx, id, fusion); err != nil {
		return nil, err
	}
	if err := p.repository.SaveCheckpoint(ctx, &core.RunCheckpoint{RunID: id, Stage: core.StageRanked}); err != nil {
		return nil, err
	}
	logger.Info("ranking run complete", "shortlist", len(fusion))

	return &RunResult{RunID: id, Similarity: similarity, Fusion: fusion}, nil
}

// RankTexts extracts structured records from raw job and resume texts,
// then runs the full funnel over them. Extraction runs concurrently;
// any extraction failure fails the run, since a dropped resume would
// silently exclude a candidate.
func (p *Pipeline) RankTexts(ctx context.Context, jobText string, resumeTexts []string) (*RunResult, error) {
	extractor := p.provider.RecordExtractor()

	spec, err := extractor.ExtractJobSpec(ctx, jobText)
	if err != nil {
		p.logger.Error("job spec extraction failed", "err", err)
		return nil, err
	}

	candidates := make([]*core.CandidateRecord, len(resumeTexts))
	errs := make([]error, len(resumeTexts))

	var wg sync.WaitGroup
	for i, text := range resumeTexts {
		i, text := i, text
		wg.Add(1)

		task := func() {
			defer wg.Done()
			candidates[i], errs[i] = extractor.ExtractCandidate(ctx, text)
		}

		if err := p.extractPool.Submit(task); err != nil {
			p.logger.Warn("worker pool rejected extraction task, running inline", "err", err)
			task()
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			p.logger.Error("resume extraction failed", "resumeIndex", i, "err", err)
			return nil, err
		}
	}

	return p.Rank(ctx, spec, candidates)
}

// Resume continues a checkpointed run. A run checkpointed at the
// filtered stage re-runs fusion from the stored Stage 1 ranking without
// repeating the full-pool embedding pass; a run already at the ranked
// stage returns its stored result.
func (p *Pipeline) Resume(ctx context.Context, id core.ID) (*RunResult, error) {
	checkpoint, err := p.repository.LoadCheckpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if checkpoint == nil {
		return nil, ErrNoCheckpoint
	}

	similarity, err := p.repository.GetSimilarityRanking(ctx, id)
	if err != nil {
		return nil, err
	}

	if checkpoint.Stage == core.StageRanked {
		fusion, err := p.repository.GetFusionRanking(ctx, id)
		if err != nil {
			return nil, err
		}
		return &RunResult{RunID: id, Similarity: similarity, Fusion: fusion}, nil
	}

	spec, err := p.repository.GetJobSpec(ctx, id)
	if err != nil {
		return nil, err
	}
	candidates, err := p.repository.GetCandidates(ctx, id)
	if err != nil {
		return nil, err
	}

	p.logger.Info("resuming run at fusion stage", "runID", id)

	fusion, err := p.fuser.Fuse(ctx, spec, similarity, candidates, p.topN, p.judgeWeight, p.pairwiseWeight)
	if err != nil {
		return nil, err
	}
	if err := p.repository.SaveFusionRanking(ctx, id, fusion); err != nil {
		return nil, err
	}
	if err := p.repository.SaveCheckpoint(ctx, &core.RunCheckpoint{RunID: id, Stage: core.StageRanked}); err != nil {
		return nil, err
	}

	return &RunResult{RunID: id, Similarity: similarity, Fusion: fusion}, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.fuser != nil {
		p.fuser.Release()
	}
	if p.extractPool != nil {
		p.extractPool.Release()
	}
}
