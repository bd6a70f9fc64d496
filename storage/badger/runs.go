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


package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) *RunRepository {
	return &RunRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *RunRepository) Close() error {
	return nil
}

// setArtifact stores a JSON artifact under the given key.
func (r *RunRepository) setArtifact(key []byte, v any) error {
	value, err := storage.MarshalArtifact(v)
	if err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// getArtifact reads a JSON artifact from the given key.
// Returns storage.ErrNotFound if the key doesn't exist.
func (r *RunRepository) getArtifact(key []byte, v any) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return storage.UnmarshalArtifact(val, v)
		})
	}, false)
}

// SaveJobSpec stores the opening for a run.
func (r *RunRepository) SaveJobSpec(ctx context.Context, runID core.ID, spec *core.JobSpec) error {
	return r.setArtifact(makeJobSpecKey(runID), spec)
}

// GetJobSpec retrieves the opening for a run.
func (r *RunRepository) GetJobSpec(ctx context.Context, runID core.ID) (*core.JobSpec, error) {
	var spec core.JobSpec
	if err := r.getArtifact(makeJobSpecKey(runID), &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// SaveCandidates stores the candidate pool for a run.
func (r *RunRepository) SaveCandidates(ctx context.Context, runID core.ID, records []*core.CandidateRecord) error {
	return r.setArtifact(makeCandidatesKey(runID), records)
}

// GetCandidates retrieves the candidate pool for a run.
func (r *RunRepository) GetCandidates(ctx context.Context, runID core.ID) ([]*core.CandidateRecord, error) {
	var records []*core.CandidateRecord
	if err := r.getArtifact(makeCandidatesKey(runID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveSimilarityRanking stores the Stage 1 result for a run.
func (r *RunRepository) SaveSimilarityRanking(ctx context.Context, runID core.ID, ranking []core.SimilarityRankingEntry) error {
	return r.setArtifact(makeSimilarityKey(runID), ranking)
}

// GetSimilarityRanking retrieves the Stage 1 result for a run.
func (r *RunRepository) GetSimilarityRanking(ctx context.Context, runID core.ID) ([]core.SimilarityRankingEntry, error) {
	var ranking []core.SimilarityRankingEntry
	if err := r.getArtifact(makeSimilarityKey(runID), &ranking); err != nil {
		return nil, err
	}
	return ranking, nil
}

// SaveFusionRanking stores the Stage 2 result for a run.
func (r *RunRepository) SaveFusionRanking(ctx context.Context, runID core.ID, ranking []core.FusionRankingEntry) error {
	return r.setArtifact(makeFusionKey(runID), ranking)
}

// GetFusionRanking retrieves the Stage 2 result for a run.
func (r *RunRepository) GetFusionRanking(ctx context.Context, runID core.ID) ([]core.FusionRankingEntry, error) {
	var ranking []core.FusionRankingEntry
	if err := r.getArtifact(makeFusionKey(runID), &ranking); err != nil {
		return nil, err
	}
	return ranking, nil
}

// SaveCheckpoint records the stage a run has reached.
func (r *RunRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.RunCheckpoint) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		checkpoint.UpdatedAt = time.Now().UTC()
		key := makeCheckpointKey(checkpoint.RunID)
		value := storage.MarshalRunCheckpoint(checkpoint)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadCheckpoint retrieves the checkpoint for a run.
// Returns nil, nil if no checkpoint exists.
func (r *RunRepository) LoadCheckpoint(ctx context.Context, runID core.ID) (*core.RunCheckpoint, error) {
	var checkpoint *core.RunCheckpoint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(runID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			checkpoint, unmarshalErr = storage.UnmarshalRunCheckpoint(val)
			return unmarshalErr
		})
	}, false)

	return checkpoint, err
}

// ListRuns returns the IDs of all runs that have a checkpoint.
func (r *RunRepository) ListRuns(ctx context.Context) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runCheckpointPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			id, err := parseCheckpointKey(iter.Item().Key())
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return ids, nil
}
