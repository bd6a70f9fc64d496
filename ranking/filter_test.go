package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/talentrank/ai/mock"
	"github.com/poiesic/talentrank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() *core.JobSpec {
	return &core.JobSpec{
		JobContext: core.JobContext{JobTitle: "Backend Engineer", SeniorityLevel: "Senior"},
		HardRequirements: core.HardRequirements{
			MustHaveSkills: []string{"Go", "PostgreSQL"},
		},
	}
}

func testRecord(name string, skills ...string) *core.CandidateRecord {
	return &core.CandidateRecord{
		ContactInfo: core.ContactInfo{Name: name},
		SkillsSection: core.SkillSection{
			ProgrammingLanguages: skills,
		},
	}
}

func TestNewSimilarityFilter(t *testing.T) {
	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewSimilarityFilter(nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("accepts options", func(t *testing.T) {
		f, err := NewSimilarityFilter(mock.NewEmbedder(), WithFilterLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, f)
	})
}

func TestFilterRanksWholePool(t *testing.T) {
	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{
			{0, 1},       // alice: orthogonal
			{1, 0},       // bob: identical
			{0.7, 0.7},   // carol: in between
		}, nil
	}

	f, err := NewSimilarityFilter(embedder)
	require.NoError(t, err)

	candidates := []*core.CandidateRecord{
		testRecord("Alice", "Python"),
		testRecord("Bob", "Go"),
		testRecord("Carol", "Go", "Python"),
	}

	ranked, err := f.Filter(context.Background(), testSpec(), candidates)
	require.NoError(t, err)

	// Every candidate appears exactly once
	require.Len(t, ranked, 3)

	assert.Equal(t, "Bob", ranked[0].CandidateName)
	assert.Equal(t, "Carol", ranked[1].CandidateName)
	assert.Equal(t, "Alice", ranked[2].CandidateName)

	assert.InDelta(t, 1.0, ranked[0].Score, 1e-6)
	assert.InDelta(t, 0.7071, ranked[1].Score, 1e-3)
	assert.InDelta(t, 0.0, ranked[2].Score, 1e-9)
}

func TestFilterDeterministic(t *testing.T) {
	f, err := NewSimilarityFilter(mock.NewEmbedder())
	require.NoError(t, err)

	candidates := []*core.CandidateRecord{
		testRecord("Alice", "Python"),
		testRecord("Bob", "Go"),
		testRecord("Carol", "Rust"),
	}

	first, err := f.Filter(context.Background(), testSpec(), candidates)
	require.NoError(t, err)
	second, err := f.Filter(context.Background(), testSpec(), candidates)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFilterTiesKeepPoolOrder(t *testing.T) {
	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		// All candidates tie
		return [][]float32{{1, 0}, {1, 0}, {1, 0}}, nil
	}

	f, err := NewSimilarityFilter(embedder)
	require.NoError(t, err)

	candidates := []*core.CandidateRecord{
		testRecord("Alice"), testRecord("Bob"), testRecord("Carol"),
	}

	ranked, err := f.Filter(context.Background(), testSpec(), candidates)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Alice", ranked[0].CandidateName)
	assert.Equal(t, "Bob", ranked[1].CandidateName)
	assert.Equal(t, "Carol", ranked[2].CandidateName)
}

func TestFilterNilSpec(t *testing.T) {
	f, err := NewSimilarityFilter(mock.NewEmbedder())
	require.NoError(t, err)

	candidates := []*core.CandidateRecord{testRecord("Alice"), testRecord("Bob")}

	ranked, err := f.Filter(context.Background(), nil, candidates)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestFilterEmptyPool(t *testing.T) {
	f, err := NewSimilarityFilter(mock.NewEmbedder())
	require.NoError(t, err)

	ranked, err := f.Filter(context.Background(), testSpec(), nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestFilterEmbedderFailureIsFatal(t *testing.T) {
	t.Run("job embedding fails", func(t *testing.T) {
		embedder := mock.NewEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}

		f, err := NewSimilarityFilter(embedder)
		require.NoError(t, err)

		_, err = f.Filter(context.Background(), testSpec(), []*core.CandidateRecord{testRecord("Alice")})
		assert.Error(t, err)
	})

	t.Run("pool embedding fails", func(t *testing.T) {
		embedder := mock.NewEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}

		f, err := NewSimilarityFilter(embedder)
		require.NoError(t, err)

		_, err = f.Filter(context.Background(), testSpec(), []*core.CandidateRecord{testRecord("Alice")})
		assert.Error(t, err)
	})

	t.Run("short vector batch fails", func(t *testing.T) {
		embedder := mock.NewEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil
		}

		f, err := NewSimilarityFilter(embedder)
		require.NoError(t, err)

		_, err = f.Filter(context.Background(), testSpec(), []*core.CandidateRecord{
			testRecord("Alice"), testRecord("Bob"),
		})
		assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
	})
}

type recordingMonitor struct {
	noopMonitor
	poolSize  int
	jobDim    int
	embedded  int
	rankedLen int
}

func (r *recordingMonitor) StartFilter(_ string, poolSize int) { r.poolSize = poolSize }
func (r *recordingMonitor) AfterJobEmbedding(dim int)          { r.jobDim = dim }
func (r *recordingMonitor) AfterCandidateEmbeddings(count int) { r.embedded = count }
func (r *recordingMonitor) FinishFilter(ranked []core.SimilarityRankingEntry) {
	r.rankedLen = len(ranked)
}

func TestFilterWithMonitor(t *testing.T) {
	f, err := NewSimilarityFilter(mock.NewEmbedder())
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	candidates := []*core.CandidateRecord{testRecord("Alice"), testRecord("Bob")}

	_, err = f.FilterWithMonitor(context.Background(), testSpec(), candidates, monitor)
	require.NoError(t, err)

	assert.Equal(t, 2, monitor.poolSize)
	assert.Equal(t, 384, monitor.jobDim)
	assert.Equal(t, 2, monitor.embedded)
	assert.Equal(t, 2, monitor.rankedLen)
}
