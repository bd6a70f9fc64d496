package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	t.Run("json fence", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	})

	t.Run("bare fence", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	})

	t.Run("no fence", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, stripCodeFences(` {"a":1} `))
	})
}

func TestRepairJSON(t *testing.T) {
	t.Run("missing opening quote after comma", func(t *testing.T) {
		assert.Equal(t, `{"a":1, "b":2}`, repairJSON(`{"a":1, b":2}`))
	})

	t.Run("missing opening quote after brace", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, repairJSON(`{a":1}`))
	})

	t.Run("valid json untouched", func(t *testing.T) {
		valid := `{"final_score": 7.5, "pros": ["go", "sql"]}`
		assert.Equal(t, valid, repairJSON(valid))
	})
}

func TestDecodeJSONResponse(t *testing.T) {
	t.Run("fenced judgment", func(t *testing.T) {
		raw := "```json\n{\"final_score\": 8.0, \"pros\": [\"strong go\"]}\n```"
		var out judgment
		require.NoError(t, decodeJSONResponse(raw, &out))
		assert.Equal(t, 8.0, out.FinalScore)
		assert.Equal(t, []string{"strong go"}, out.Pros)
	})

	t.Run("repairable keys", func(t *testing.T) {
		raw := `{detailed_analysis": "fine", "final_score": 6}`
		var out judgment
		require.NoError(t, decodeJSONResponse(raw, &out))
		assert.Equal(t, "fine", out.DetailedAnalysis)
		assert.Equal(t, 6.0, out.FinalScore)
	})

	t.Run("garbage still fails", func(t *testing.T) {
		var out judgment
		assert.Error(t, decodeJSONResponse("not json at all", &out))
	})
}

func TestToJudgment(t *testing.T) {
	t.Run("clamps score", func(t *testing.T) {
		assert.Equal(t, 10.0, toJudgment(judgment{FinalScore: 12}).FinalScore)
		assert.Equal(t, 0.0, toJudgment(judgment{FinalScore: -3}).FinalScore)
	})

	t.Run("copies criteria", func(t *testing.T) {
		w := judgment{FinalScore: 7}
		w.MatchCriteria = append(w.MatchCriteria, struct {
			Criterion string `json:"criterion"`
			IsMatch   bool   `json:"is_match"`
			Comment   string `json:"comment"`
		}{Criterion: "Minimum Experience", IsMatch: true, Comment: "6 years"})

		j := toJudgment(w)
		require.Len(t, j.MatchCriteria, 1)
		assert.Equal(t, "Minimum Experience", j.MatchCriteria[0].Criterion)
		assert.True(t, j.MatchCriteria[0].IsMatch)
	})
}
