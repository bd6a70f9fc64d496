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


package ranking

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/signal"
)

// Fuser is the second stage of the ranking funnel. It takes the Stage 1
// shortlist and re-ranks it by combining a qualitative judge score with
// a rescaled cross-encoder score. The stage tolerates partial failure:
// a candidate whose judge or scorer call fails keeps its slot with the
// failed component contributing zero.
type Fuser struct {
	judge  ai.Judge
	scorer ai.PairwiseScorer
	pool   *ants.Pool
	logger *slog.Logger
}

// FuserOption configures a Fuser.
type FuserOption func(*Fuser) error

// WithFuserPoolSize sets the worker pool size for concurrent scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithFuserPoolSize(size int) FuserOption {
	return func(f *Fuser) error {
		if size < 1 {
			size = 1
		}

		if f.pool != nil {
			f.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		f.pool = pool
		return nil
	}
}

// WithFuserLogger sets a custom logger.
// Default is slog.Default().
func WithFuserLogger(logger *slog.Logger) FuserOption {
	return func(f *Fuser) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFuser creates a new fusion scorer.
func NewFuser(judge ai.Judge, scorer ai.PairwiseScorer, opts ...FuserOption) (*Fuser, error) {
	if judge == nil {
		return nil, ErrJudgeRequired
	}
	if scorer == nil {
		return nil, ErrScorerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	f := &Fuser{
		judge:  judge,
		scorer: scorer,
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(f); optErr != nil {
			f.Release()
			return nil, optErr
		}
	}

	return f, nil
}

// RescalePairwise maps a raw cross-encoder score onto the open interval
// (0, 10) via a sigmoid, putting it on the same scale as judge scores.
func RescalePairwise(raw float64) float64 {
	return 10 / (1 + math.Exp(-raw))
}

// Fuse re-ranks the top topN entries of a similarity ranking.
// judgeWeight and pairwiseWeight are applied as given, without
// normalization; callers who want a weighted average pass weights that
// sum to 1. Entries below the cutoff never reach the judge or scorer.
// Returns results sorted by combined score descending; ties keep
// shortlist order.
func (f *Fuser) Fuse(ctx context.Context, spec *core.JobSpec, ranked []core.SimilarityRankingEntry, records []*core.CandidateRecord, topN int, judgeWeight, pairwiseWeight float64) ([]core.FusionRankingEntry, error) {
	return f.FuseWithMonitor(ctx, spec, ranked, records, topN, judgeWeight, pairwiseWeight, nil)
}

// FuseWithMonitor re-ranks the top topN entries with monitoring.
// The monitor receives callbacks for each judge and scorer result.
func (f *Fuser) FuseWithMonitor(ctx context.Context, spec *core.JobSpec, ranked []core.SimilarityRankingEntry, records []*core.CandidateRecord, topN int, judgeWeight, pairwiseWeight float64, monitor FunnelMonitor) ([]core.FusionRankingEntry, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if topN <= 0 {
		return []core.FusionRankingEntry{}, nil
	}
	if topN > len(ranked) {
		topN = len(ranked)
	}

	// First record wins for a given name; the pool validator rejects
	// duplicates upstream.
	byName := make(map[string]*core.CandidateRecord, len(records))
	for _, record := range records {
		name := record.Identity()
		if _, ok := byName[name]; !ok {
			byName[name] = record
		}
	}

	type shortlisted struct {
		name   string
		record *core.CandidateRecord
	}
	shortlist := make([]shortlisted, 0, topN)
	names := make([]string, 0, topN)
	for _, entry := range ranked[:topN] {
		record, ok := byName[entry.CandidateName]
		if !ok {
			f.logger.Warn("shortlisted candidate has no record, skipping", "candidate", entry.CandidateName)
			continue
		}
		shortlist = append(shortlist, shortlisted{name: entry.CandidateName, record: record})
		names = append(names, entry.CandidateName)
	}
	monitor.StartFusion(names)

	jobText := signal.JobText(spec)
	results := make([]core.FusionRankingEntry, len(shortlist))

	var wg sync.WaitGroup
	for i, cand := range shortlist {
		i, cand := i, cand
		wg.Add(1)

		task := func() {
			defer wg.Done()
			results[i] = f.scoreCandidate(ctx, spec, jobText, cand.name, cand.record, judgeWeight, pairwiseWeight, monitor)
		}

		if err := f.pool.Submit(task); err != nil {
			// Pool unavailable, run inline rather than dropping the candidate
			f.logger.Warn("worker pool rejected task, scoring inline", "candidate", cand.name, "err", err)
			task()
		}
	}
	wg.Wait()

	// Stable so that equal scores preserve shortlist order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})
	monitor.FinishFusion(results)

	f.logger.Debug("fusion complete", "shortlist", len(results))
	return results, nil
}

// scoreCandidate runs both scoring components for one candidate and
// combines them. Component failures degrade to zero contributions.
func (f *Fuser) scoreCandidate(ctx context.Context, spec *core.JobSpec, jobText, name string, record *core.CandidateRecord, judgeWeight, pairwiseWeight float64, monitor FunnelMonitor) core.FusionRankingEntry {
	entry := core.FusionRankingEntry{CandidateName: name}

	judgment, err := f.judge.Evaluate(ctx, spec, record)
	if err != nil {
		f.logger.Warn("judge failed for candidate", "candidate", name, "err", err)
		monitor.JudgeResult(name, 0, err)
	} else {
		entry.Judgment = judgment
		entry.JudgeScore = judgment.FinalScore
		monitor.JudgeResult(name, judgment.FinalScore, nil)
	}

	raw, err := f.scorer.Score(ctx, jobText, signal.CandidateText(record))
	if err != nil {
		f.logger.Warn("pairwise scorer failed for candidate", "candidate", name, "err", err)
		monitor.PairwiseResult(name, 0, 0, err)
	} else {
		entry.PairwiseScore = RescalePairwise(raw)
		monitor.PairwiseResult(name, raw, entry.PairwiseScore, nil)
	}

	entry.CombinedScore = entry.JudgeScore*judgeWeight + entry.PairwiseScore*pairwiseWeight
	return entry
}

// Release releases the worker pool.
// The fuser should not be used after calling Release.
func (f *Fuser) Release() {
	if f.pool != nil {
		f.pool.Release()
	}
}
