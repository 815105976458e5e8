package query

import (
	"testing"
	"time"

	"github.com/finsight/newsintel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	timestamp := time.Date(2025, 5, 12, 8, 0, 0, 0, time.UTC)
	result := &Result{
		Articles: []core.ScoredArticle{
			{
				Article: &core.Article{
					Id:        "a1",
					Title:     "RBI holds rates",
					Content:   "Policy unchanged.",
					Source:    "wire",
					Timestamp: timestamp,
					Sentiment: &core.Sentiment{
						Classification: core.SentimentBearish,
						SignalStrength: 70,
					},
				},
				RelevanceScore: 0.9,
				StrategyScore:  1.0,
				FinalScore:     0.95,
			},
			{
				Article: &core.Article{
					Id:        "a2",
					Title:     "Sector note",
					Content:   "No sentiment yet.",
					Source:    "wire",
					Timestamp: timestamp,
				},
				RelevanceScore: 0.6,
				StrategyScore:  0.5,
				FinalScore:     0.55,
			},
		},
		Routing: &core.QueryRouting{
			Strategy:     core.IntentRegulatory,
			Regulators:   []string{"RBI"},
			RefinedQuery: "RBI policy decisions",
			Confidence:   0.9,
			Reasoning:    "regulator named",
			StrategyMetadata: &core.StrategyMetadata{
				StrategyUsed:  core.StrategyFilterFirst,
				FilteredCount: 2,
				FilterApplied: true,
				Threshold:     1000,
			},
		},
	}

	response := Assemble("what did RBI decide", result)

	assert.Equal(t, "what did RBI decide", response.Query)
	assert.Equal(t, 2, response.ResultsCount)
	require.Len(t, response.Articles, 2)

	first := response.Articles[0]
	assert.Equal(t, "a1", first.ID)
	assert.Equal(t, 0.95, first.FinalScore)
	require.NotNil(t, first.Sentiment)
	assert.Equal(t, core.SentimentBearish, first.Sentiment.Classification)
	assert.Equal(t, 70.0, first.Sentiment.SignalStrength)

	assert.Nil(t, response.Articles[1].Sentiment, "articles without sentiment carry no summary")

	stats := response.Stats
	assert.Equal(t, core.IntentRegulatory, stats.Strategy)
	assert.Equal(t, 1, stats.RegulatorsMatched)
	assert.Equal(t, 0, stats.EntitiesMatched)
	assert.Equal(t, "RBI policy decisions", stats.RefinedQuery)
	require.NotNil(t, stats.StrategyMetadata)
	assert.Equal(t, core.StrategyFilterFirst, stats.StrategyMetadata.StrategyUsed)
}

func TestAssembleEmptyResult(t *testing.T) {
	result := &Result{
		Articles: []core.ScoredArticle{},
		Routing:  &core.QueryRouting{Strategy: core.IntentSemanticSearch, RefinedQuery: "financial news"},
	}

	response := Assemble("anything interesting", result)

	assert.Equal(t, 0, response.ResultsCount)
	assert.NotNil(t, response.Articles)
	assert.Empty(t, response.Articles)
}
