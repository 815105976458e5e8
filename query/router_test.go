package query

import (
	"context"
	"errors"
	"testing"

	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/ai/mock"
	"github.com/finsight/newsintel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifierWith(routed *ai.RoutedQuery, err error) *Classifier {
	router := mock.NewQueryRouter()
	router.RouteQueryFunc = func(ctx context.Context, query string) (*ai.RoutedQuery, error) {
		return routed, err
	}
	return NewClassifier(router, nil)
}

func TestClassifyRejectsEmptyQuery(t *testing.T) {
	c := NewClassifier(mock.NewQueryRouter(), nil)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := c.Classify(context.Background(), query)
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.ErrorIs(t, err, core.ErrEmptyQuery)
	}
}

func TestClassifyRouterFailureIsServiceError(t *testing.T) {
	c := classifierWith(nil, errors.New("connection refused"))

	_, err := c.Classify(context.Background(), "HDFC Bank news")
	assert.ErrorIs(t, err, core.ErrService)
	assert.NotErrorIs(t, err, core.ErrValidation)
}

func TestClassifyNormalization(t *testing.T) {
	c := classifierWith(&ai.RoutedQuery{
		Strategy:     "DIRECT_ENTITY",
		Entities:     []string{" HDFC Bank ", "hdfc bank", "ICICI Bank", ""},
		StockSymbols: []string{"hdfcbank ", "HDFCBANK", "icicibank"},
		Sectors:      []string{"Banking", "BANKING"},
		Regulators:   []string{"RBI", "rbi "},
		RefinedQuery: "  HDFC Bank latest news ",
		Confidence:   0.92,
	}, nil)

	routing, err := c.Classify(context.Background(), "news on hdfc bank and icici")
	require.NoError(t, err)

	assert.Equal(t, core.IntentDirectEntity, routing.Strategy)
	assert.Equal(t, []string{"HDFC Bank", "ICICI Bank"}, routing.Entities, "first-seen casing wins")
	assert.Equal(t, []string{"HDFCBANK", "ICICIBANK"}, routing.StockSymbols)
	assert.Equal(t, []string{"Banking"}, routing.Sectors)
	assert.Equal(t, []string{"RBI"}, routing.Regulators)
	assert.Equal(t, "HDFC Bank latest news", routing.RefinedQuery)
	assert.Equal(t, 0.92, routing.Confidence)
}

func TestClassifyClampsConfidence(t *testing.T) {
	cases := []struct {
		name string
		raw  float64
		want float64
	}{
		{"above one", 1.4, 1.0},
		{"below zero", -0.2, 0.0},
		{"in range", 0.7, 0.7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := classifierWith(&ai.RoutedQuery{
				Strategy:     "SEMANTIC_SEARCH",
				RefinedQuery: "market roundup",
				Confidence:   tc.raw,
			}, nil)

			routing, err := c.Classify(context.Background(), "market roundup")
			require.NoError(t, err, "out-of-range confidence is normalized, not rejected")
			assert.Equal(t, tc.want, routing.Confidence)
		})
	}
}

func TestClassifyRefinedQueryDefaults(t *testing.T) {
	t.Run("falls back to first entity", func(t *testing.T) {
		c := classifierWith(&ai.RoutedQuery{
			Strategy:   "DIRECT_ENTITY",
			Entities:   []string{"Tata Motors"},
			Confidence: 0.8,
		}, nil)

		routing, err := c.Classify(context.Background(), "tata motors")
		require.NoError(t, err)
		assert.Equal(t, "Tata Motors", routing.RefinedQuery)
	})

	t.Run("generic default without entities", func(t *testing.T) {
		c := classifierWith(&ai.RoutedQuery{
			Strategy:   "SEMANTIC_SEARCH",
			Confidence: 0.5,
		}, nil)

		routing, err := c.Classify(context.Background(), "anything happening?")
		require.NoError(t, err)
		assert.Equal(t, "financial news", routing.RefinedQuery)
	})
}

func TestClassifyUnknownStrategyDegrades(t *testing.T) {
	c := classifierWith(&ai.RoutedQuery{
		Strategy:     "HYBRID_MAGIC",
		RefinedQuery: "some query",
		Confidence:   0.7,
	}, nil)

	routing, err := c.Classify(context.Background(), "some query")
	require.NoError(t, err)
	assert.Equal(t, core.IntentSemanticSearch, routing.Strategy)
}

func TestClassifyMalformedSentiment(t *testing.T) {
	c := classifierWith(&ai.RoutedQuery{
		Strategy:        "SENTIMENT_DRIVEN",
		SentimentFilter: "very positive",
		RefinedQuery:    "positive news",
		Confidence:      0.8,
	}, nil)

	_, err := c.Classify(context.Background(), "positive news please")
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.ErrorIs(t, err, core.ErrInvalidSentimentFilter)
}

func TestClassifySentimentCanonicalized(t *testing.T) {
	c := classifierWith(&ai.RoutedQuery{
		Strategy:        "SENTIMENT_DRIVEN",
		SentimentFilter: "BULLISH",
		RefinedQuery:    "bullish news",
		Confidence:      0.8,
	}, nil)

	routing, err := c.Classify(context.Background(), "bullish news")
	require.NoError(t, err)
	assert.Equal(t, core.SentimentBullish, routing.SentimentFilter)
}

func TestClassifyInvalidConfidence(t *testing.T) {
	c := classifierWith(&ai.RoutedQuery{
		Strategy:     "SEMANTIC_SEARCH",
		RefinedQuery: "some query",
		Confidence:   1.5,
	}, nil)

	_, err := c.Classify(context.Background(), "some query")
	assert.ErrorIs(t, err, core.ErrValidation)
}
