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


package mock

import "github.com/finsight/newsintel/ai"

// Provider is a test double for ai.Provider.
// It aggregates mock service instances.
type Provider struct {
	embedder    *Embedder
	router      *QueryRouter
	extractor   *EntityExtractor
	sentiment   *SentimentAnalyzer
	impacts     *ImpactMapper
	supplychain *SupplyChainAnalyzer
}

// NewProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use the Mock* accessors for concrete types when tests need assertions.
func NewProvider() ai.Provider {
	return &Provider{
		embedder:    NewEmbedder(),
		router:      NewQueryRouter(),
		extractor:   NewEntityExtractor(),
		sentiment:   NewSentimentAnalyzer(),
		impacts:     NewImpactMapper(),
		supplychain: NewSupplyChainAnalyzer(),
	}
}

// Embedder returns the mock embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryRouter returns the mock query router.
func (p *Provider) QueryRouter() ai.QueryRouter {
	return p.router
}

// EntityExtractor returns the mock entity extractor.
func (p *Provider) EntityExtractor() ai.EntityExtractor {
	return p.extractor
}

// SentimentAnalyzer returns the mock sentiment analyzer.
func (p *Provider) SentimentAnalyzer() ai.SentimentAnalyzer {
	return p.sentiment
}

// ImpactMapper returns the mock impact mapper.
func (p *Provider) ImpactMapper() ai.ImpactMapper {
	return p.impacts
}

// SupplyChainAnalyzer returns the mock supply chain analyzer.
func (p *Provider) SupplyChainAnalyzer() ai.SupplyChainAnalyzer {
	return p.supplychain
}

// Close is a no-op for mock provider.
func (p *Provider) Close() error {
	return nil
}

// MockEmbedder returns the underlying mock embedder for test assertions.
func (p *Provider) MockEmbedder() *Embedder {
	return p.embedder
}

// MockQueryRouter returns the underlying mock router for test assertions.
func (p *Provider) MockQueryRouter() *QueryRouter {
	return p.router
}

// MockEntityExtractor returns the underlying mock extractor for test assertions.
func (p *Provider) MockEntityExtractor() *EntityExtractor {
	return p.extractor
}

// MockSentimentAnalyzer returns the underlying mock analyzer for test assertions.
func (p *Provider) MockSentimentAnalyzer() *SentimentAnalyzer {
	return p.sentiment
}

// MockImpactMapper returns the underlying mock mapper for test assertions.
func (p *Provider) MockImpactMapper() *ImpactMapper {
	return p.impacts
}

// MockSupplyChainAnalyzer returns the underlying mock analyzer for test assertions.
func (p *Provider) MockSupplyChainAnalyzer() *SupplyChainAnalyzer {
	return p.supplychain
}
