package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// IDFromContent generates a deterministic article ID from text content using
// BLAKE2b hashing. Identical content always produces the same ID, which makes
// re-ingestion of the same article an upsert instead of a duplicate row.
func IDFromContent(text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// SentimentClass is the market sentiment polarity assigned to an article.
type SentimentClass string

const (
	SentimentBullish SentimentClass = "Bullish"
	SentimentBearish SentimentClass = "Bearish"
	SentimentNeutral SentimentClass = "Neutral"
)

// ImpactType classifies how news impacts a stock.
type ImpactType string

const (
	ImpactDirect     ImpactType = "direct"
	ImpactSector     ImpactType = "sector"
	ImpactRegulatory ImpactType = "regulatory"
)

// RelationshipType categorizes supply-chain relationships between sectors.
type RelationshipType string

const (
	UpstreamDemandShock    RelationshipType = "upstream_demand_shock"
	DownstreamSupplyImpact RelationshipType = "downstream_supply_impact"
)

// Article is an enriched financial news article. It is created by the
// ingestion pipeline and read-only to the query layer; per-query scores live
// on ScoredArticle, never here.
type Article struct {
	Id         string
	Title      string
	Content    string
	Source     string
	Timestamp  time.Time // When the article was published
	InsertedAt time.Time // When the record was inserted into the store
	UpdatedAt  time.Time // When the record was last updated

	Entities       EntitySet     // Extracted entities (populated by the pipeline)
	ImpactedStocks []StockImpact // Stocks impacted by the news
	Sentiment      *Sentiment    // Market sentiment, nil until analyzed
	CrossImpacts   []CrossImpact // Supply-chain impacts on other sectors
	Vector         []float32     // Embedding vector for semantic search
}

// HasSentiment reports whether sentiment analysis has run for this article.
func (a *Article) HasSentiment() bool {
	return a.Sentiment != nil
}

// HasCrossImpacts reports whether supply-chain analysis found any impacts.
func (a *Article) HasCrossImpacts() bool {
	return len(a.CrossImpacts) > 0
}

// EntitySet is the single normalized shape for extracted entities. Every
// consumer reads this form; there is no legacy dict representation.
type EntitySet struct {
	Companies  []Company
	Sectors    []string
	Regulators []Regulator
	People     []string
	Events     []Event
}

// CompanyNames returns the company names in extraction order.
func (e EntitySet) CompanyNames() []string {
	names := make([]string, len(e.Companies))
	for i, c := range e.Companies {
		names[i] = c.Name
	}
	return names
}

// RegulatorNames returns the regulator names in extraction order.
func (e EntitySet) RegulatorNames() []string {
	names := make([]string, len(e.Regulators))
	for i, r := range e.Regulators {
		names[i] = r.Name
	}
	return names
}

// ContainsCompany reports whether name matches an extracted company,
// case-insensitively.
func (e EntitySet) ContainsCompany(name string) bool {
	return containsFold(e.CompanyNames(), name)
}

// ContainsSector reports whether name matches an extracted sector,
// case-insensitively.
func (e EntitySet) ContainsSector(name string) bool {
	return containsFold(e.Sectors, name)
}

// ContainsRegulator reports whether name matches an extracted regulator,
// case-insensitively.
func (e EntitySet) ContainsRegulator(name string) bool {
	return containsFold(e.RegulatorNames(), name)
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// Company is a company mentioned in an article.
type Company struct {
	Name       string
	Ticker     string // Stock ticker symbol, may be empty
	Sector     string // Industry sector, may be empty
	Confidence float64
}

// Regulator is a regulatory body mentioned in an article.
type Regulator struct {
	Name         string
	Jurisdiction string
	Confidence   float64
}

// Event is a market event identified in an article.
type Event struct {
	Type        string // snake_case category, e.g. "policy_change"
	Description string
	Confidence  float64
}

// StockImpact is the assessed impact of news on a specific stock.
type StockImpact struct {
	Symbol      string // Uppercase ticker symbol
	CompanyName string
	Confidence  float64
	ImpactType  ImpactType
	Reasoning   string
}

// Sentiment holds the sentiment analysis result for an article.
// ConfidenceScore and SignalStrength are on a 0-100 scale.
type Sentiment struct {
	Classification  SentimentClass
	ConfidenceScore float64
	SignalStrength  float64
	KeyFactors      []string
	Breakdown       map[string]float64 // bullish/bearish/neutral percentages
	AnalysisMethod  string
}

// CrossImpact is a cross-sectoral impact propagated through supply-chain
// relationships.
type CrossImpact struct {
	SourceSector     string
	TargetSector     string
	Relationship     RelationshipType
	ImpactScore      float64 // 0-100 magnitude
	DependencyWeight float64 // 0-1 strength of the sector dependency
	Reasoning        string
	ImpactedStocks   []string
	TimeHorizon      string
}

// ScoredArticle wraps an article with per-request ranking scores. Scores are
// never persisted and never written back to the shared Article.
type ScoredArticle struct {
	Article        *Article
	RelevanceScore float64 // Normalized vector similarity in [0,1]
	StrategyScore  float64 // Strategy-specific metadata match in [0,1]
	FinalScore     float64 // Blended and boosted score, capped at 1.0
}
