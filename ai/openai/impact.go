package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/finsight/newsintel/ai"
	"github.com/tmc/langchaingo/llms"
)

// ImpactMapper implements ai.ImpactMapper using OpenAI-compatible chat APIs.
type ImpactMapper struct {
	client     llms.Model
	maxRetries int
	maxStocks  int
	logger     *slog.Logger
}

// newImpactMapper is an internal constructor that returns the concrete type.
func newImpactMapper(config *ai.Config, client llms.Model) *ImpactMapper {
	return &ImpactMapper{
		client:     client,
		maxRetries: config.MaxRetries,
		maxStocks:  config.MaxImpactedStocks,
		logger:     slog.Default().With("component", "openai-impacts"),
	}
}

// NewImpactMapper creates a new impact mapper using the provided configuration.
//
// Returns ai.ImpactMapper interface to enforce abstraction.
func NewImpactMapper(config *ai.Config) (ai.ImpactMapper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newAnalystClient(config)
	if err != nil {
		return nil, err
	}
	return newImpactMapper(config, client), nil
}

// MapImpacts identifies the stocks impacted by article text using an LLM.
// The result is capped at the configured maximum; symbols are uppercased and
// blank entries dropped.
func (m *ImpactMapper) MapImpacts(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.ImpactAnalysis, error) {
	var analysis ai.ImpactAnalysis
	err := completeJSON(ctx, m.client, m.logger, m.maxRetries,
		buildImpactPrompt(entities, m.maxStocks), truncateForPrompt(text), &analysis)
	if err != nil {
		return nil, err
	}

	kept := make([]ai.AnalyzedImpact, 0, len(analysis.ImpactedStocks))
	for _, impact := range analysis.ImpactedStocks {
		symbol := strings.ToUpper(strings.TrimSpace(impact.Symbol))
		if symbol == "" {
			continue
		}
		impact.Symbol = symbol
		kept = append(kept, impact)
		if len(kept) == m.maxStocks {
			break
		}
	}
	analysis.ImpactedStocks = kept

	m.logger.Debug("mapped stock impacts", "stocks", len(kept))
	return &analysis, nil
}
