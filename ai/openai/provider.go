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


package openai

import (
	"log/slog"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/ai/rerank"
)

// Provider implements ai.AIProvider using OpenAI-compatible services for
// embeddings, judgment and extraction, plus a TEI-style rerank service for
// cross-encoder scoring.
type Provider struct {
	config    *ai.Config
	embedder  *Embedder
	judge     *Judge
	extractor *RecordExtractor
	scorer    ai.PairwiseScorer
	logger    *slog.Logger
}

// NewProvider creates a new AI provider. The config is validated and
// normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	judge, err := newJudge(config)
	if err != nil {
		return nil, err
	}

	extractor, err := newRecordExtractor(config)
	if err != nil {
		return nil, err
	}

	scorer, err := rerank.NewScorer(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		judge:     judge,
		extractor: extractor,
		scorer:    scorer,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// PairwiseScorer returns the cross-encoder scoring service.
func (p *Provider) PairwiseScorer() ai.PairwiseScorer {
	return p.scorer
}

// Judge returns the qualitative judgment service.
func (p *Provider) Judge() ai.Judge {
	return p.judge
}

// RecordExtractor returns the structured extraction service.
func (p *Provider) RecordExtractor() ai.RecordExtractor {
	return p.extractor
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
