package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Judge implements ai.Judge using OpenAI-compatible chat APIs.
// It prompts the model with both records rendered as JSON and parses the
// structured judgment out of the response.
type Judge struct {
	client llms.Model
	logger *slog.Logger
}

// judgment is an internal type used for JSON unmarshaling.
// It matches the structure requested from the LLM.
type judgment struct {
	DetailedAnalysis string   `json:"detailed_analysis"`
	Pros             []string `json:"pros"`
	Cons             []string `json:"cons"`
	FinalScore       float64  `json:"final_score"`
	MatchCriteria    []struct {
		Criterion string `json:"criterion"`
		IsMatch   bool   `json:"is_match"`
		Comment   string `json:"comment"`
	} `json:"match_criteria"`
}

// newJudge is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newJudge(config *ai.Config) (*Judge, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.LLMHost),
		openai.WithToken("none"),
		openai.WithModel(config.JudgeModel),
	)
	if err != nil {
		return nil, err
	}

	return &Judge{
		client: client,
		logger: slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewJudge creates a new judge using the provided configuration.
//
// Returns ai.Judge interface to enforce abstraction.
func NewJudge(config *ai.Config) (ai.Judge, error) {
	return newJudge(config)
}

// Evaluate compares a candidate record against a job spec and returns a
// structured judgment with a [0,10] score.
func (j *Judge) Evaluate(ctx context.Context, spec *core.JobSpec, record *core.CandidateRecord) (*core.Judgment, error) {
	specJSON, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling job spec: %w", err)
	}
	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling candidate record: %w", err)
	}

	prompt := fmt.Sprintf(judgePromptTemplate, specJSON, recordJSON)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(judgeSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result judgment
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := j.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			j.logger.Error("failed to generate judgment", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			j.logger.Debug("no choices returned from model")
			return nil, fmt.Errorf("judge returned no choices")
		}

		if err := decodeJSONResponse(response.Choices[0].Content, &result); err != nil {
			lastErr = err
			j.logger.Warn("error parsing judge response",
				"attempt", attempt+1,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		j.logger.Error("failed to parse judge response after retries", "err", lastErr)
		return nil, lastErr
	}

	return toJudgment(result), nil
}

// toJudgment converts the wire-format judgment into the domain type,
// clamping the score to the [0,10] scale the Judge contract promises.
func toJudgment(w judgment) *core.Judgment {
	criteria := make([]core.MatchCriterion, len(w.MatchCriteria))
	for i, c := range w.MatchCriteria {
		criteria[i] = core.MatchCriterion{
			Criterion: c.Criterion,
			IsMatch:   c.IsMatch,
			Comment:   c.Comment,
		}
	}

	score := w.FinalScore
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	return &core.Judgment{
		DetailedAnalysis: w.DetailedAnalysis,
		Pros:             w.Pros,
		Cons:             w.Cons,
		FinalScore:       score,
		MatchCriteria:    criteria,
	}
}
