// Copyright 2025 Finsight Labs
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


// Package ai provides abstractions for the AI services used by newsintel.
//
// This package defines interfaces for text embeddings, query routing, and
// article enrichment (entities, sentiment, stock impacts, supply chain
// effects). It follows the dependency inversion principle, allowing the
// query core and ingestion pipeline to depend on abstractions rather than
// concrete implementations.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewEmbedder, mock.NewQueryRouter, etc.)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public fields and methods.
//
// # Usage Example
//
//	config := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithAnalystModel("qwen2.5:3b"),
//	)
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "RBI raises repo rate")
//	routed, err := provider.QueryRouter().RouteQuery(ctx, "bullish news on HDFC Bank")
package ai
