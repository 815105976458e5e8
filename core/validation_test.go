package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArticle(t *testing.T) {
	valid := func() *Article {
		return &Article{
			Id:        "a1",
			Title:     "RBI hikes repo rate by 25 bps",
			Content:   "The Reserve Bank of India raised the repo rate...",
			Source:    "Business Standard",
			Timestamp: time.Now().Add(-time.Hour),
		}
	}

	t.Run("valid article", func(t *testing.T) {
		assert.NoError(t, ValidateArticle(valid()))
	})

	t.Run("nil article", func(t *testing.T) {
		err := ValidateArticle(nil)
		assert.ErrorIs(t, err, ErrInvalidArticle)
	})

	t.Run("empty id", func(t *testing.T) {
		a := valid()
		a.Id = ""
		assert.ErrorIs(t, ValidateArticle(a), ErrEmptyArticleID)
	})

	t.Run("empty title", func(t *testing.T) {
		a := valid()
		a.Title = ""
		assert.ErrorIs(t, ValidateArticle(a), ErrEmptyTitle)
	})

	t.Run("empty content", func(t *testing.T) {
		a := valid()
		a.Content = ""
		assert.ErrorIs(t, ValidateArticle(a), ErrEmptyContent)
	})

	t.Run("future timestamp", func(t *testing.T) {
		a := valid()
		a.Timestamp = time.Now().Add(time.Hour)
		assert.ErrorIs(t, ValidateArticle(a), ErrInvalidTimestamp)
	})

	t.Run("blank impacted stock symbol", func(t *testing.T) {
		a := valid()
		a.ImpactedStocks = []StockImpact{{Symbol: "  ", CompanyName: "Unknown"}}
		assert.ErrorIs(t, ValidateArticle(a), ErrInvalidArticle)
	})
}

func TestValidateRouting(t *testing.T) {
	valid := func() *QueryRouting {
		return &QueryRouting{
			Strategy:     IntentDirectEntity,
			Entities:     []string{"HDFC Bank"},
			RefinedQuery: "HDFC Bank quarterly results",
			Confidence:   0.85,
		}
	}

	t.Run("valid routing", func(t *testing.T) {
		assert.NoError(t, ValidateRouting(valid()))
	})

	t.Run("nil routing", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRouting(nil), ErrInvalidRouting)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		r := valid()
		r.Strategy = "FULL_TEXT"
		assert.ErrorIs(t, ValidateRouting(r), ErrInvalidRouting)
	})

	t.Run("short refined query", func(t *testing.T) {
		r := valid()
		r.RefinedQuery = " ab "
		assert.ErrorIs(t, ValidateRouting(r), ErrEmptyRefinedQuery)
	})

	t.Run("confidence out of range", func(t *testing.T) {
		r := valid()
		r.Confidence = 1.2
		assert.ErrorIs(t, ValidateRouting(r), ErrInvalidConfidence)
	})

	t.Run("bad sentiment filter", func(t *testing.T) {
		r := valid()
		r.SentimentFilter = "Optimistic"
		assert.ErrorIs(t, ValidateRouting(r), ErrInvalidSentimentFilter)
	})
}

func TestParseSentimentClass(t *testing.T) {
	t.Run("canonical values", func(t *testing.T) {
		for _, want := range []SentimentClass{SentimentBullish, SentimentBearish, SentimentNeutral} {
			got, err := ParseSentimentClass(string(want))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("case-insensitive with whitespace", func(t *testing.T) {
		got, err := ParseSentimentClass("  bearish ")
		require.NoError(t, err)
		assert.Equal(t, SentimentBearish, got)
	})

	t.Run("malformed value", func(t *testing.T) {
		_, err := ParseSentimentClass("Positive")
		assert.ErrorIs(t, err, ErrInvalidSentimentFilter)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
