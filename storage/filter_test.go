package storage

import (
	"testing"

	"github.com/finsight/newsintel/core"
	"github.com/stretchr/testify/assert"
)

func bankingArticle() *core.Article {
	return &core.Article{
		Id:      "a1",
		Title:   "HDFC Bank posts record profit",
		Content: "...",
		Entities: core.EntitySet{
			Companies:  []core.Company{{Name: "HDFC Bank", Ticker: "HDFCBANK"}},
			Sectors:    []string{"Banking"},
			Regulators: []core.Regulator{{Name: "RBI"}},
		},
		ImpactedStocks: []core.StockImpact{{Symbol: "HDFCBANK", CompanyName: "HDFC Bank"}},
		Sentiment:      &core.Sentiment{Classification: core.SentimentBullish},
	}
}

func TestFilterEmpty(t *testing.T) {
	var f Filter
	assert.True(t, f.Empty())
	assert.True(t, f.Matches(bankingArticle()), "empty filter matches everything")

	f = f.And(Eq(FieldSector, "Banking"))
	assert.False(t, f.Empty())
}

func TestFilterMatches(t *testing.T) {
	article := bankingArticle()

	t.Run("symbol equality", func(t *testing.T) {
		f := Filter{}.And(Eq(FieldStockSymbol, "HDFCBANK"))
		assert.True(t, f.Matches(article))
	})

	t.Run("case-insensitive", func(t *testing.T) {
		f := Filter{}.And(Eq(FieldCompany, "hdfc bank"))
		assert.True(t, f.Matches(article))
	})

	t.Run("membership", func(t *testing.T) {
		f := Filter{}.And(In(FieldSector, []string{"Pharma", "Banking"}))
		assert.True(t, f.Matches(article))
	})

	t.Run("conjunction", func(t *testing.T) {
		f := Filter{}.
			And(Eq(FieldRegulator, "RBI")).
			And(Eq(FieldSentiment, "Bullish"))
		assert.True(t, f.Matches(article))

		f = f.And(Eq(FieldSentiment, "Bearish"))
		assert.False(t, f.Matches(article))
	})

	t.Run("sentiment clause without sentiment data", func(t *testing.T) {
		bare := &core.Article{Id: "a2", Title: "t", Content: "c"}
		f := Filter{}.And(Eq(FieldSentiment, "Bullish"))
		assert.False(t, f.Matches(bare))
	})

	t.Run("nil article", func(t *testing.T) {
		assert.False(t, Filter{}.Matches(nil))
	})
}

func TestFilterAndReplacesSameField(t *testing.T) {
	f := Filter{}.
		And(Eq(FieldSentiment, "Bullish")).
		And(Eq(FieldSector, "Banking")).
		And(Eq(FieldSentiment, "Bearish"))

	assert.Len(t, f.Clauses, 2)
	sentiment, ok := f.Sentiment()
	assert.True(t, ok)
	assert.Equal(t, "Bearish", sentiment)
}
