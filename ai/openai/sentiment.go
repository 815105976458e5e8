package openai

import (
	"context"
	"log/slog"

	"github.com/finsight/newsintel/ai"
	"github.com/tmc/langchaingo/llms"
)

// SentimentAnalyzer implements ai.SentimentAnalyzer using OpenAI-compatible chat APIs.
type SentimentAnalyzer struct {
	client     llms.Model
	maxRetries int
	logger     *slog.Logger
}

// newSentimentAnalyzer is an internal constructor that returns the concrete type.
func newSentimentAnalyzer(config *ai.Config, client llms.Model) *SentimentAnalyzer {
	return &SentimentAnalyzer{
		client:     client,
		maxRetries: config.MaxRetries,
		logger:     slog.Default().With("component", "openai-sentiment"),
	}
}

// NewSentimentAnalyzer creates a new sentiment analyzer using the provided configuration.
//
// Returns ai.SentimentAnalyzer interface to enforce abstraction.
func NewSentimentAnalyzer(config *ai.Config) (ai.SentimentAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newAnalystClient(config)
	if err != nil {
		return nil, err
	}
	return newSentimentAnalyzer(config, client), nil
}

// AnalyzeSentiment classifies the market sentiment of article text.
// Entity context sharpens the classification but is not required here;
// callers without entities pass nil.
func (s *SentimentAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (*ai.SentimentAnalysis, error) {
	return s.analyzeWithEntities(ctx, text, nil)
}

// AnalyzeSentimentWithEntities classifies sentiment with entity context.
func (s *SentimentAnalyzer) AnalyzeSentimentWithEntities(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.SentimentAnalysis, error) {
	return s.analyzeWithEntities(ctx, text, entities)
}

func (s *SentimentAnalyzer) analyzeWithEntities(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.SentimentAnalysis, error) {
	var analysis ai.SentimentAnalysis
	err := completeJSON(ctx, s.client, s.logger, s.maxRetries,
		buildSentimentPrompt(entities), truncateForPrompt(text), &analysis)
	if err != nil {
		return nil, err
	}

	// Scores outside 0-100 are model noise, clamp rather than fail
	analysis.ConfidenceScore = clampScore(analysis.ConfidenceScore)
	analysis.SignalStrength = clampScore(analysis.SignalStrength)

	s.logger.Debug("analyzed sentiment",
		"classification", analysis.Classification,
		"signal", analysis.SignalStrength)
	return &analysis, nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
