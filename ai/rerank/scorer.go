// Package rerank scores (query, document) text pairs with a cross-encoder
// served over HTTP. It targets the Text Embeddings Inference /rerank API,
// which is also what local rerankers such as vLLM and Infinity expose.
//
// The service returns raw relevance logits when asked for raw scores, so
// the value handed back to callers is unbounded and model-specific; the
// fusion stage squashes it onto a fixed scale before combining.
package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/talentrank/ai"
)

const defaultRequestTimeout = 60 * time.Second

// Scorer implements ai.PairwiseScorer against a TEI-style /rerank endpoint.
type Scorer struct {
	endpoint string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

type rerankRequest struct {
	Query     string   `json:"query"`
	Texts     []string `json:"texts"`
	RawScores bool     `json:"raw_scores"`
}

type rerankResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// newScorer is an internal constructor that returns the concrete type.
func newScorer(config *ai.Config) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Scorer{
		endpoint: config.RerankHost + "/rerank",
		model:    config.RerankModel,
		client:   &http.Client{Timeout: defaultRequestTimeout},
		logger:   slog.Default().With("component", "rerank-scorer"),
	}, nil
}

// NewScorer creates a cross-encoder scorer using the provided configuration.
//
// Returns ai.PairwiseScorer interface to enforce abstraction.
func NewScorer(config *ai.Config) (ai.PairwiseScorer, error) {
	return newScorer(config)
}

// Score runs the cross-encoder over one (query, document) pair and returns
// the raw relevance logit.
func (s *Scorer) Score(ctx context.Context, query, document string) (float64, error) {
	body, err := json.Marshal(rerankRequest{
		Query:     query,
		Texts:     []string{document},
		RawScores: true,
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("rerank request failed", "err", err)
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Error("rerank service returned error",
			"status", resp.StatusCode,
			"body", string(payload))
		return 0, fmt.Errorf("rerank service returned status %d", resp.StatusCode)
	}

	var results []rerankResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		s.logger.Error("error decoding rerank response", "err", err)
		return 0, err
	}

	if len(results) == 0 {
		return 0, fmt.Errorf("rerank service returned no results")
	}

	return results[0].Score, nil
}

// Model returns the configured cross-encoder model identifier.
func (s *Scorer) Model() string {
	return s.model
}
