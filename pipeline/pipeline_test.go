package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/ai/mock"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/storage"
	"github.com/poiesic/talentrank/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.RunRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRunRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func newTestPipeline(t *testing.T, repo storage.RunRepository, provider ai.AIProvider, opts ...Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline(repo, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func testSpec() *core.JobSpec {
	return &core.JobSpec{
		JobContext: core.JobContext{JobTitle: "Backend Engineer", SeniorityLevel: "Senior"},
		HardRequirements: core.HardRequirements{
			MustHaveSkills: []string{"Go"},
		},
	}
}

func testPool(names ...string) []*core.CandidateRecord {
	records := make([]*core.CandidateRecord, len(names))
	for i, name := range names {
		records[i] = &core.CandidateRecord{
			ContactInfo: core.ContactInfo{Name: name},
			SkillsSection: core.SkillSection{
				ProgrammingLanguages: []string{"Go"},
			},
		}
	}
	return records
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires repository", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewProvider())
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("requires provider", func(t *testing.T) {
		_, err := NewPipeline(newTestRepo(t), nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})
}

func TestRankEndToEnd(t *testing.T) {
	repo := newTestRepo(t)
	p := newTestPipeline(t, repo, mock.NewProvider(), WithTopN(2), WithPoolSize(2))

	ctx := context.Background()
	candidates := testPool("Alice", "Bob", "Carol")

	result, err := p.Rank(ctx, testSpec(), candidates)
	require.NoError(t, err)

	// Stage 1 covers the whole pool, Stage 2 only the shortlist
	assert.Len(t, result.Similarity, 3)
	assert.Len(t, result.Fusion, 2)

	// Every artifact is persisted under the run
	storedSpec, err := repo.GetJobSpec(ctx, result.RunID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", storedSpec.JobContext.JobTitle)

	storedCandidates, err := repo.GetCandidates(ctx, result.RunID)
	require.NoError(t, err)
	assert.Len(t, storedCandidates, 3)

	storedSimilarity, err := repo.GetSimilarityRanking(ctx, result.RunID)
	require.NoError(t, err)
	assert.Equal(t, result.Similarity, storedSimilarity)

	storedFusion, err := repo.GetFusionRanking(ctx, result.RunID)
	require.NoError(t, err)
	assert.Equal(t, result.Fusion, storedFusion)

	checkpoint, err := repo.LoadCheckpoint(ctx, result.RunID)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, core.StageRanked, checkpoint.Stage)
}

func TestRankDeterministicRunID(t *testing.T) {
	repo := newTestRepo(t)
	p := newTestPipeline(t, repo, mock.NewProvider())

	ctx := context.Background()
	first, err := p.Rank(ctx, testSpec(), testPool("Alice", "Bob"))
	require.NoError(t, err)
	second, err := p.Rank(ctx, testSpec(), testPool("Alice", "Bob"))
	require.NoError(t, err)

	assert.Equal(t, first.RunID, second.RunID)

	other, err := p.Rank(ctx, testSpec(), testPool("Alice", "Dave"))
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, other.RunID)
}

func TestRankValidatesInputs(t *testing.T) {
	p := newTestPipeline(t, newTestRepo(t), mock.NewProvider())
	ctx := context.Background()

	t.Run("nil spec", func(t *testing.T) {
		_, err := p.Rank(ctx, nil, testPool("Alice"))
		assert.ErrorIs(t, err, core.ErrInvalidJobSpec)
	})

	t.Run("empty pool", func(t *testing.T) {
		_, err := p.Rank(ctx, testSpec(), nil)
		assert.ErrorIs(t, err, ErrNoCandidates)
	})

	t.Run("unnamed candidate", func(t *testing.T) {
		pool := testPool("Alice")
		pool[0].ContactInfo.Name = ""
		_, err := p.Rank(ctx, testSpec(), pool)
		assert.ErrorIs(t, err, core.ErrEmptyCandidateName)
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := p.Rank(ctx, testSpec(), testPool("Alice", "Alice"))
		assert.ErrorIs(t, err, core.ErrDuplicateCandidate)
	})
}

func TestRankEmbedderFailureFailsRun(t *testing.T) {
	repo := newTestRepo(t)
	provider := mock.NewProvider().(*mock.Provider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	p := newTestPipeline(t, repo, provider)
	ctx := context.Background()

	_, err := p.Rank(ctx, testSpec(), testPool("Alice", "Bob"))
	require.Error(t, err)
}

func TestRankToleratesJudgeFailure(t *testing.T) {
	provider := mock.NewProvider().(*mock.Provider)
	provider.GetMockJudge().EvaluateFunc = func(ctx context.Context, spec *core.JobSpec, record *core.CandidateRecord) (*core.Judgment, error) {
		return nil, errors.New("judge offline")
	}

	p := newTestPipeline(t, newTestRepo(t), provider)

	result, err := p.Rank(context.Background(), testSpec(), testPool("Alice", "Bob"))
	require.NoError(t, err)
	require.Len(t, result.Fusion, 2)
	for _, entry := range result.Fusion {
		assert.Nil(t, entry.Judgment)
		assert.Equal(t, 0.0, entry.JudgeScore)
	}
}

func TestRankTexts(t *testing.T) {
	repo := newTestRepo(t)
	p := newTestPipeline(t, repo, mock.NewProvider(), WithTopN(2))

	// The mock extractor uses the first line as the title/name
	result, err := p.RankTexts(context.Background(),
		"Backend Engineer\nWe need someone who knows Go.",
		[]string{
			"Alice\n10 years of Go.",
			"Bob\nPython mostly.",
			"Carol\nSome Go, some Rust.",
		})
	require.NoError(t, err)

	assert.Len(t, result.Similarity, 3)
	assert.Len(t, result.Fusion, 2)

	names := make([]string, len(result.Similarity))
	for i, entry := range result.Similarity {
		names[i] = entry.CandidateName
	}
	assert.ElementsMatch(t, []string{"Alice", "Bob", "Carol"}, names)
}

func TestRankTextsExtractionFailureFailsRun(t *testing.T) {
	provider := mock.NewProvider().(*mock.Provider)
	provider.GetMockExtractor().ExtractCandidateFunc = func(ctx context.Context, text string) (*core.CandidateRecord, error) {
		return nil, errors.New("extraction failed")
	}

	p := newTestPipeline(t, newTestRepo(t), provider)

	_, err := p.RankTexts(context.Background(), "Backend Engineer", []string{"Alice\nresume"})
	require.Error(t, err)
}

func TestResume(t *testing.T) {
	ctx := context.Background()

	t.Run("no checkpoint", func(t *testing.T) {
		p := newTestPipeline(t, newTestRepo(t), mock.NewProvider())
		_, err := p.Resume(ctx, core.ID(123))
		assert.ErrorIs(t, err, ErrNoCheckpoint)
	})

	t.Run("ranked run returns stored result", func(t *testing.T) {
		repo := newTestRepo(t)
		provider := mock.NewProvider().(*mock.Provider)
		p := newTestPipeline(t, repo, provider)

		original, err := p.Rank(ctx, testSpec(), testPool("Alice", "Bob"))
		require.NoError(t, err)

		// A completed run must not re-score even if components now fail
		provider.GetMockJudge().EvaluateFunc = func(ctx context.Context, spec *core.JobSpec, record *core.CandidateRecord) (*core.Judgment, error) {
			return nil, errors.New("judge offline")
		}

		resumed, err := p.Resume(ctx, original.RunID)
		require.NoError(t, err)
		assert.Equal(t, original.Fusion, resumed.Fusion)
	})

	t.Run("filtered run reruns fusion only", func(t *testing.T) {
		repo := newTestRepo(t)
		provider := mock.NewProvider().(*mock.Provider)
		embedCalls := 0
		provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			embedCalls++
			return nil, errors.New("should not be called")
		}

		p := newTestPipeline(t, repo, provider)

		runID := core.ID(77)
		spec := testSpec()
		candidates := testPool("Alice", "Bob")
		similarity := []core.SimilarityRankingEntry{
			{CandidateName: "Bob", Score: 0.9},
			{CandidateName: "Alice", Score: 0.8},
		}
		require.NoError(t, repo.SaveJobSpec(ctx, runID, spec))
		require.NoError(t, repo.SaveCandidates(ctx, runID, candidates))
		require.NoError(t, repo.SaveSimilarityRanking(ctx, runID, similarity))
		require.NoError(t, repo.SaveCheckpoint(ctx, &core.RunCheckpoint{RunID: runID, Stage: core.StageFiltered}))

		result, err := p.Resume(ctx, runID)
		require.NoError(t, err)

		assert.Equal(t, 0, embedCalls)
		assert.Equal(t, similarity, result.Similarity)
		assert.Len(t, result.Fusion, 2)

		checkpoint, err := repo.LoadCheckpoint(ctx, runID)
		require.NoError(t, err)
		require.NotNil(t, checkpoint)
		assert.Equal(t, core.StageRanked, checkpoint.Stage)
	})
}

func TestLoadResumeTexts(t *testing.T) {
	t.Run("reads txt files in order", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("Bob"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("Alice"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("skip me"), 0644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

		texts, err := LoadResumeTexts(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bob"}, texts)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := LoadResumeTexts(t.TempDir())
		assert.ErrorIs(t, err, ErrNoResumeFiles)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadResumeTexts(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}
