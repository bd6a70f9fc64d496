package mock

import (
	"github.com/poiesic/talentrank/ai"
)

// Provider aggregates mock services for testing.
type Provider struct {
	embedder  *Embedder
	scorer    *Scorer
	judge     *Judge
	extractor *Extractor
}

// NewProvider creates a provider backed by mock services with default
// deterministic behavior. Returns the ai.AIProvider interface so tests
// can drop it in wherever a production provider is expected.
func NewProvider() ai.AIProvider {
	return &Provider{
		embedder:  NewEmbedder(),
		scorer:    NewScorer(),
		judge:     NewJudge(),
		extractor: NewExtractor(),
	}
}

// Embedder returns the mock embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// PairwiseScorer returns the mock cross-encoder scoring service.
func (p *Provider) PairwiseScorer() ai.PairwiseScorer {
	return p.scorer
}

// Judge returns the mock judgment service.
func (p *Provider) Judge() ai.Judge {
	return p.judge
}

// RecordExtractor returns the mock extraction service.
func (p *Provider) RecordExtractor() ai.RecordExtractor {
	return p.extractor
}

// Close is a no-op for mocks.
func (p *Provider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete mock for behavior injection.
func (p *Provider) GetMockEmbedder() *Embedder {
	return p.embedder
}

// GetMockScorer returns the concrete mock for behavior injection.
func (p *Provider) GetMockScorer() *Scorer {
	return p.scorer
}

// GetMockJudge returns the concrete mock for behavior injection.
func (p *Provider) GetMockJudge() *Judge {
	return p.judge
}

// GetMockExtractor returns the concrete mock for behavior injection.
func (p *Provider) GetMockExtractor() *Extractor {
	return p.extractor
}
