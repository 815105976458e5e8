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


package openai

import (
	"log/slog"

	"github.com/finsight/newsintel/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// All analysis services share one chat client; the embedder has its own.
type Provider struct {
	config      *ai.Config
	embedder    *Embedder
	router      *QueryRouter
	extractor   *EntityExtractor
	sentiment   *SentimentAnalyzer
	impacts     *ImpactMapper
	supplychain *SupplyChainAnalyzer
	logger      *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	client, err := newAnalystClient(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:      config,
		embedder:    embedder,
		router:      newQueryRouter(config, client),
		extractor:   newEntityExtractor(config, client),
		sentiment:   newSentimentAnalyzer(config, client),
		impacts:     newImpactMapper(config, client),
		supplychain: newSupplyChainAnalyzer(config, client),
		logger:      slog.Default().With("component", "openai-provider"),
	}, nil
}

// newAnalystClient creates the shared chat client for analysis services.
func newAnalystClient(config *ai.Config) (llms.Model, error) {
	token := config.APIKey
	if token == "" {
		// Local OpenAI-compatible services accept any token
		token = "none"
	}
	return openai.New(
		openai.WithBaseURL(config.AnalystHost),
		openai.WithToken(token),
		openai.WithModel(config.AnalystModel),
	)
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryRouter returns the query classification service.
func (p *Provider) QueryRouter() ai.QueryRouter {
	return p.router
}

// EntityExtractor returns the entity extraction service.
func (p *Provider) EntityExtractor() ai.EntityExtractor {
	return p.extractor
}

// SentimentAnalyzer returns the sentiment classification service.
func (p *Provider) SentimentAnalyzer() ai.SentimentAnalyzer {
	return p.sentiment
}

// ImpactMapper returns the stock impact mapping service.
func (p *Provider) ImpactMapper() ai.ImpactMapper {
	return p.impacts
}

// SupplyChainAnalyzer returns the cross-sector impact service.
func (p *Provider) SupplyChainAnalyzer() ai.SupplyChainAnalyzer {
	return p.supplychain
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
