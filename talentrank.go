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


// Package talentrank ranks resume pools against job openings with a
// two-stage retrieval and rerank funnel.
package talentrank

import (
	"log/slog"

	"github.com/poiesic/talentrank/ai"
	"github.com/poiesic/talentrank/ai/openai"
	"github.com/poiesic/talentrank/pipeline"
	"github.com/poiesic/talentrank/storage"
	"github.com/poiesic/talentrank/storage/badger"
)

// Workspace bundles the storage backend and AI provider behind a single
// handle. It is the usual entry point for embedding the ranker in a
// larger program.
type Workspace struct {
	backend  *badger.Backend
	runRepo  storage.RunRepository
	provider ai.AIProvider
	logger   *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// OpenWorkspace opens (or creates) a workspace at the given path.
func OpenWorkspace(filePath string, opts ...WorkspaceOption) (*Workspace, error) {
	// Apply options
	options := &workspaceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	runRepo := badger.NewRunRepository(backend)

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		runRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Workspace{
		backend:  backend,
		runRepo:  runRepo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the workspace's resources.
func (w *Workspace) Close() error {
	// Close AI provider first
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing AI provider", "err", err)
	}

	if err := w.runRepo.Close(); err != nil {
		w.logger.Error("error closing run repository", "err", err)
		return err
	}

	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// RunRepository returns the run artifact store.
func (w *Workspace) RunRepository() storage.RunRepository {
	return w.runRepo
}

// NewPipeline creates a ranking pipeline bound to this workspace.
func (w *Workspace) NewPipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	return pipeline.NewPipeline(w.runRepo, w.provider, opts...)
}
