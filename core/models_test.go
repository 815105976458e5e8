package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("HDFC Bank reports record quarterly profit")
		id2 := IDFromContent("HDFC Bank reports record quarterly profit")
		assert.Equal(t, id1, id2)
		assert.Len(t, id1, 32) // 16 bytes hex encoded
	})

	t.Run("different content produces different ids", func(t *testing.T) {
		id1 := IDFromContent("RBI hikes repo rate")
		id2 := IDFromContent("SEBI tightens disclosure norms")
		assert.NotEqual(t, id1, id2)
	})
}

func TestEntitySetAccessors(t *testing.T) {
	entities := EntitySet{
		Companies: []Company{
			{Name: "HDFC Bank", Ticker: "HDFCBANK", Sector: "Banking", Confidence: 0.95},
			{Name: "Tata Consultancy Services", Ticker: "TCS", Sector: "IT", Confidence: 0.9},
		},
		Sectors: []string{"Banking", "IT"},
		Regulators: []Regulator{
			{Name: "RBI", Jurisdiction: "India", Confidence: 0.99},
		},
	}

	assert.Equal(t, []string{"HDFC Bank", "Tata Consultancy Services"}, entities.CompanyNames())
	assert.Equal(t, []string{"RBI"}, entities.RegulatorNames())

	t.Run("case-insensitive membership", func(t *testing.T) {
		assert.True(t, entities.ContainsCompany("hdfc bank"))
		assert.True(t, entities.ContainsSector("BANKING"))
		assert.True(t, entities.ContainsRegulator("rbi"))
		assert.False(t, entities.ContainsCompany("Infosys"))
		assert.False(t, entities.ContainsSector("Pharma"))
	})
}

func TestArticleHelpers(t *testing.T) {
	article := &Article{Id: "a1"}
	assert.False(t, article.HasSentiment())
	assert.False(t, article.HasCrossImpacts())

	article.Sentiment = &Sentiment{Classification: SentimentBullish}
	article.CrossImpacts = []CrossImpact{{SourceSector: "Auto", TargetSector: "Steel"}}
	assert.True(t, article.HasSentiment())
	assert.True(t, article.HasCrossImpacts())
}

func TestQueryIntentValid(t *testing.T) {
	for _, intent := range []QueryIntent{
		IntentDirectEntity, IntentSectorWide, IntentRegulatory,
		IntentSentimentDriven, IntentCrossImpact, IntentSemanticSearch,
		IntentTemporal,
	} {
		assert.True(t, intent.Valid(), string(intent))
	}
	assert.False(t, QueryIntent("KEYWORD_SEARCH").Valid())
	assert.False(t, QueryIntent("").Valid())
}
