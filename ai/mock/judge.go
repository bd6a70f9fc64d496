package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/poiesic/talentrank/core"
)

// Judge is a test double for ai.Judge.
// It allows custom behavior injection via function fields.
// Safe for concurrent use.
type Judge struct {
	// EvaluateFunc is called by Evaluate if set.
	// If nil, uses default deterministic behavior.
	EvaluateFunc func(ctx context.Context, spec *core.JobSpec, record *core.CandidateRecord) (*core.Judgment, error)

	mu        sync.Mutex
	callCount int
}

// NewJudge creates a mock judge with default deterministic behavior.
// Returns the concrete type so tests can inject behavior and assert calls.
func NewJudge() *Judge {
	return &Judge{}
}

// Evaluate produces a deterministic judgment by checking each must-have
// skill against the candidate's listed skills and tools. The final score
// is the matched fraction scaled to [0, 10]; a spec with no must-have
// skills scores 5.
func (m *Judge) Evaluate(ctx context.Context, spec *core.JobSpec, record *core.CandidateRecord) (*core.Judgment, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.EvaluateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, spec, record)
	}

	have := make(map[string]bool)
	for _, group := range [][]string{
		record.SkillsSection.ProgrammingLanguages,
		record.SkillsSection.FrameworksAndLibraries,
		record.SkillsSection.PlatformsAndTools,
	} {
		for _, s := range group {
			have[strings.ToLower(s)] = true
		}
	}
	for _, we := range record.WorkExperience {
		for _, s := range we.UsedSkillsAndTools {
			have[strings.ToLower(s)] = true
		}
	}

	j := &core.Judgment{FinalScore: 5}

	must := spec.HardRequirements.MustHaveSkills
	if len(must) == 0 {
		j.DetailedAnalysis = "No hard skill requirements to evaluate against."
		return j, nil
	}

	var matched int
	for _, skill := range must {
		ok := have[strings.ToLower(skill)]
		if ok {
			matched++
			j.Pros = append(j.Pros, fmt.Sprintf("Has %s", skill))
		} else {
			j.Cons = append(j.Cons, fmt.Sprintf("Missing %s", skill))
		}
		j.MatchCriteria = append(j.MatchCriteria, core.MatchCriterion{
			Criterion: skill,
			IsMatch:   ok,
		})
	}

	j.FinalScore = 10 * float64(matched) / float64(len(must))
	j.DetailedAnalysis = fmt.Sprintf("Matched %d of %d required skills.", matched, len(must))
	return j, nil
}

// CallCount returns the number of times Evaluate was called.
func (m *Judge) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *Judge) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.EvaluateFunc = nil
}
