package pipeline

import "errors"

var (
	// ErrRepositoryRequired is returned when a nil run repository is provided.
	ErrRepositoryRequired = errors.New("run repository is required")

	// ErrAIProviderRequired is returned when a nil AI provider is provided.
	ErrAIProviderRequired = errors.New("AI provider is required")

	// ErrNoCandidates is returned when a run is started with an empty pool.
	ErrNoCandidates = errors.New("candidate pool is empty")

	// ErrNoCheckpoint is returned when resuming a run that has no checkpoint.
	ErrNoCheckpoint = errors.New("run has no checkpoint")

	// ErrNoResumeFiles is returned when a resume directory contains no
	// readable resume files.
	ErrNoResumeFiles = errors.New("no resume files found")
)
