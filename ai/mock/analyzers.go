package mock

import (
	"context"

	"github.com/finsight/newsintel/ai"
)

// EntityExtractor is a test double for ai.EntityExtractor.
type EntityExtractor struct {
	// ExtractEntitiesFunc is called by ExtractEntities if set.
	// If nil, returns an empty extraction.
	ExtractEntitiesFunc func(ctx context.Context, text string) (*ai.ExtractedEntities, error)

	callCount int
}

// NewEntityExtractor creates a mock entity extractor.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{}
}

// ExtractEntities returns the injected extraction or an empty one.
func (m *EntityExtractor) ExtractEntities(ctx context.Context, text string) (*ai.ExtractedEntities, error) {
	m.callCount++

	if m.ExtractEntitiesFunc != nil {
		return m.ExtractEntitiesFunc(ctx, text)
	}
	return &ai.ExtractedEntities{}, nil
}

// CallCount returns the number of times ExtractEntities was called.
func (m *EntityExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *EntityExtractor) Reset() {
	m.callCount = 0
	m.ExtractEntitiesFunc = nil
}

// SentimentAnalyzer is a test double for ai.SentimentAnalyzer.
type SentimentAnalyzer struct {
	// AnalyzeSentimentFunc is called by AnalyzeSentiment if set.
	// If nil, returns a neutral classification.
	AnalyzeSentimentFunc func(ctx context.Context, text string) (*ai.SentimentAnalysis, error)

	callCount int
}

// NewSentimentAnalyzer creates a mock sentiment analyzer.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{}
}

// AnalyzeSentiment returns the injected analysis or a neutral default.
func (m *SentimentAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (*ai.SentimentAnalysis, error) {
	m.callCount++

	if m.AnalyzeSentimentFunc != nil {
		return m.AnalyzeSentimentFunc(ctx, text)
	}
	return &ai.SentimentAnalysis{
		Classification:  "Neutral",
		ConfidenceScore: 50,
		SignalStrength:  10,
		Breakdown:       map[string]float64{"bullish": 0.2, "bearish": 0.2, "neutral": 0.6},
	}, nil
}

// CallCount returns the number of times AnalyzeSentiment was called.
func (m *SentimentAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *SentimentAnalyzer) Reset() {
	m.callCount = 0
	m.AnalyzeSentimentFunc = nil
}

// ImpactMapper is a test double for ai.ImpactMapper.
type ImpactMapper struct {
	// MapImpactsFunc is called by MapImpacts if set.
	// If nil, returns no impacted stocks.
	MapImpactsFunc func(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.ImpactAnalysis, error)

	callCount int
}

// NewImpactMapper creates a mock impact mapper.
func NewImpactMapper() *ImpactMapper {
	return &ImpactMapper{}
}

// MapImpacts returns the injected analysis or an empty one.
func (m *ImpactMapper) MapImpacts(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.ImpactAnalysis, error) {
	m.callCount++

	if m.MapImpactsFunc != nil {
		return m.MapImpactsFunc(ctx, text, entities)
	}
	return &ai.ImpactAnalysis{}, nil
}

// CallCount returns the number of times MapImpacts was called.
func (m *ImpactMapper) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *ImpactMapper) Reset() {
	m.callCount = 0
	m.MapImpactsFunc = nil
}

// SupplyChainAnalyzer is a test double for ai.SupplyChainAnalyzer.
type SupplyChainAnalyzer struct {
	// AnalyzeSupplyChainFunc is called by AnalyzeSupplyChain if set.
	// If nil, returns no cross impacts.
	AnalyzeSupplyChainFunc func(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.SupplyChainAnalysis, error)

	callCount int
}

// NewSupplyChainAnalyzer creates a mock supply chain analyzer.
func NewSupplyChainAnalyzer() *SupplyChainAnalyzer {
	return &SupplyChainAnalyzer{}
}

// AnalyzeSupplyChain returns the injected analysis or an empty one.
func (m *SupplyChainAnalyzer) AnalyzeSupplyChain(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.SupplyChainAnalysis, error) {
	m.callCount++

	if m.AnalyzeSupplyChainFunc != nil {
		return m.AnalyzeSupplyChainFunc(ctx, text, entities)
	}
	return &ai.SupplyChainAnalysis{}, nil
}

// CallCount returns the number of times AnalyzeSupplyChain was called.
func (m *SupplyChainAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *SupplyChainAnalyzer) Reset() {
	m.callCount = 0
	m.AnalyzeSupplyChainFunc = nil
}
