package mock

import (
	"context"
	"strings"
	"sync"
)

// Scorer is a test double for ai.PairwiseScorer.
// It allows custom behavior injection via function fields.
// Safe for concurrent use.
type Scorer struct {
	// ScoreFunc is called by Score if set.
	// If nil, uses default deterministic behavior.
	ScoreFunc func(ctx context.Context, query, document string) (float64, error)

	mu        sync.Mutex
	callCount int
}

// NewScorer creates a mock pairwise scorer with default deterministic
// behavior. Returns the concrete type so tests can inject behavior and
// assert calls.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes a deterministic raw relevance score from word overlap.
// The default maps the overlap ratio onto [-4, 4] so that, like a real
// cross-encoder logit, it is signed rather than a probability.
func (m *Scorer) Score(ctx context.Context, query, document string) (float64, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.ScoreFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query, document)
	}

	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) == 0 {
		return -4, nil
	}

	docWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(document)) {
		docWords[w] = true
	}

	var hits int
	for _, w := range queryWords {
		if docWords[w] {
			hits++
		}
	}

	overlap := float64(hits) / float64(len(queryWords))
	return 8*overlap - 4, nil
}

// CallCount returns the number of times Score was called.
func (m *Scorer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *Scorer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ScoreFunc = nil
}
