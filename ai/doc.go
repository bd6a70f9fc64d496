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


// Package ai provides abstractions for the AI capabilities used in Talentrank.
//
// The ranking funnel consumes three scoring capabilities, each substitutable
// by any conforming implementation:
//
//   - Embedder: bi-encoder embeddings for the cheap full-pool pass
//   - PairwiseScorer: cross-encoder scoring of (job, resume) text pairs
//   - Judge: qualitative judgment with a numeric [0,10] score
//
// A fourth capability, RecordExtractor, turns raw text into structured
// records. It is an external collaborator of the funnel, not part of it.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/rerank: cross-encoder scoring over a TEI-style /rerank endpoint
//   - ai/mock: deterministic test doubles with no external dependencies
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewProvider, rerank.NewScorer, ...) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewEmbedder, mock.NewJudge, ...) return
// CONCRETE types so tests can inject behavior via function fields and make
// assertions via CallCount/Reset.
//
//	embedder := mock.NewEmbedder()      // returns *mock.Embedder
//	embedder.EmbedTextsFunc = func(...) // needs concrete type
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434/v1"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, text)
//	judgment, err := provider.Judge().Evaluate(ctx, spec, record)
package ai
