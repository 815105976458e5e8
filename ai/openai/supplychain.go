package openai

import (
	"context"
	"log/slog"

	"github.com/finsight/newsintel/ai"
	"github.com/tmc/langchaingo/llms"
)

// SupplyChainAnalyzer implements ai.SupplyChainAnalyzer using OpenAI-compatible chat APIs.
type SupplyChainAnalyzer struct {
	client         llms.Model
	maxRetries     int
	minImpactScore float64
	logger         *slog.Logger
}

// newSupplyChainAnalyzer is an internal constructor that returns the concrete type.
func newSupplyChainAnalyzer(config *ai.Config, client llms.Model) *SupplyChainAnalyzer {
	return &SupplyChainAnalyzer{
		client:         client,
		maxRetries:     config.MaxRetries,
		minImpactScore: config.MinImpactScore,
		logger:         slog.Default().With("component", "openai-supplychain"),
	}
}

// NewSupplyChainAnalyzer creates a new supply chain analyzer using the provided configuration.
//
// Returns ai.SupplyChainAnalyzer interface to enforce abstraction.
func NewSupplyChainAnalyzer(config *ai.Config) (ai.SupplyChainAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newAnalystClient(config)
	if err != nil {
		return nil, err
	}
	return newSupplyChainAnalyzer(config, client), nil
}

// AnalyzeSupplyChain identifies cross-sector ripple effects of article text.
// Effects below the configured impact score floor are dropped even when the
// model returns them.
func (s *SupplyChainAnalyzer) AnalyzeSupplyChain(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.SupplyChainAnalysis, error) {
	var analysis ai.SupplyChainAnalysis
	err := completeJSON(ctx, s.client, s.logger, s.maxRetries,
		buildSupplyChainPrompt(entities, s.minImpactScore), truncateForPrompt(text), &analysis)
	if err != nil {
		return nil, err
	}

	kept := make([]ai.AnalyzedCrossImpact, 0, len(analysis.CrossImpacts))
	for _, impact := range analysis.CrossImpacts {
		if impact.ImpactScore < s.minImpactScore {
			continue
		}
		kept = append(kept, impact)
	}
	analysis.CrossImpacts = kept

	s.logger.Debug("analyzed supply chain", "cross_impacts", len(kept))
	return &analysis, nil
}
