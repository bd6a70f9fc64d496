package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/talentrank/core"
)

// Extractor is a test double for ai.RecordExtractor.
// It allows custom behavior injection via function fields.
// Safe for concurrent use.
type Extractor struct {
	// ExtractJobSpecFunc is called by ExtractJobSpec if set.
	// If nil, uses default deterministic behavior.
	ExtractJobSpecFunc func(ctx context.Context, text string) (*core.JobSpec, error)

	// ExtractCandidateFunc is called by ExtractCandidate if set.
	// If nil, uses default deterministic behavior.
	ExtractCandidateFunc func(ctx context.Context, text string) (*core.CandidateRecord, error)

	mu        sync.Mutex
	callCount int
}

// NewExtractor creates a mock extractor with default deterministic
// behavior. Returns the concrete type so tests can inject behavior and
// assert calls.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractJobSpec builds a minimal spec whose title is the first line of
// the input text.
func (m *Extractor) ExtractJobSpec(ctx context.Context, text string) (*core.JobSpec, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.ExtractJobSpecFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}

	return &core.JobSpec{
		JobContext: core.JobContext{JobTitle: firstLine(text)},
	}, nil
}

// ExtractCandidate builds a minimal record whose name is the first line
// of the input text.
func (m *Extractor) ExtractCandidate(ctx context.Context, text string) (*core.CandidateRecord, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.ExtractCandidateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}

	return &core.CandidateRecord{
		ContactInfo: core.ContactInfo{Name: firstLine(text)},
	}, nil
}

// CallCount returns the number of times any method was called.
func (m *Extractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *Extractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ExtractJobSpecFunc = nil
	m.ExtractCandidateFunc = nil
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(line)
}
