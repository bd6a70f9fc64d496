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
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// RecordExtractor implements ai.RecordExtractor using OpenAI-compatible
// chat APIs. One call per document: raw text in, structured record out.
type RecordExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// newRecordExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newRecordExtractor(config *ai.Config) (*RecordExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.LLMHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &RecordExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewRecordExtractor creates a new record extractor using the provided
// configuration.
//
// Returns ai.RecordExtractor interface to enforce abstraction.
func NewRecordExtractor(config *ai.Config) (ai.RecordExtractor, error) {
	return newRecordExtractor(config)
}

// ExtractJobSpec parses a raw job description into a structured spec.
func (e *RecordExtractor) ExtractJobSpec(ctx context.Context, text string) (*core.JobSpec, error) {
	var spec core.JobSpec
	if err := e.generate(ctx, jobExtractionPrompt, text, &spec); err != nil {
		return nil, fmt.Errorf("extracting job spec: %w", err)
	}
	return &spec, nil
}

// ExtractCandidate parses raw resume text into a structured record.
func (e *RecordExtractor) ExtractCandidate(ctx context.Context, text string) (*core.CandidateRecord, error) {
	var record core.CandidateRecord
	if err := e.generate(ctx, resumeExtractionPrompt, text, &record); err != nil {
		return nil, fmt.Errorf("extracting candidate record: %w", err)
	}
	return &record, nil
}

// generate runs one JSON-mode chat completion and decodes the response
// into out, retrying parse failures up to 3 times.
func (e *RecordExtractor) generate(ctx context.Context, systemPrompt, text string, out any) error {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate extraction", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			return fmt.Errorf("extractor returned no choices")
		}

		if err := decodeJSONResponse(response.Choices[0].Content, out); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response", "attempt", attempt+1, "err", err)
			continue
		}

		return nil
	}

	e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
	return lastErr
}
