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


package newsintel

import (
	"log/slog"

	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/ai/openai"
	"github.com/finsight/newsintel/ingestion"
	"github.com/finsight/newsintel/query"
	"github.com/finsight/newsintel/storage"
	"github.com/finsight/newsintel/storage/badger"
)

// Engine wires the storage backend, the AI provider and the two workflows
// (ingestion and query processing) into one handle.
type Engine struct {
	backend  *badger.Backend
	articles storage.ArticleRepository
	vectors  storage.VectorIndex
	provider ai.Provider
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing one
// from the config. The engine takes ownership and closes it on Close.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all data in memory. filePath is ignored.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the article store at filePath and builds the AI provider.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	articles, err := badger.NewArticleRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vectors, err := badger.NewVectorIndex(backend)
	if err != nil {
		articles.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			vectors.Close()
			articles.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:  backend,
		articles: articles,
		vectors:  vectors,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider, the stores and the backend.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.vectors.Close(); err != nil {
		e.logger.Error("error closing vector index", "err", err)
		return err
	}
	if err := e.articles.Close(); err != nil {
		e.logger.Error("error closing article repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Articles returns the article repository.
func (e *Engine) Articles() storage.ArticleRepository {
	return e.articles
}

// Vectors returns the vector index.
func (e *Engine) Vectors() storage.VectorIndex {
	return e.vectors
}

// Provider returns the AI provider.
func (e *Engine) Provider() ai.Provider {
	return e.provider
}

// NewProcessor builds a query processor over the engine's stores.
func (e *Engine) NewProcessor(opts ...query.Option) (*query.Processor, error) {
	return query.NewProcessor(e.articles, e.vectors, e.provider, opts...)
}

// NewPipeline builds an ingestion pipeline over the engine's stores.
func (e *Engine) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(e.articles, e.vectors, e.provider, opts...)
}
