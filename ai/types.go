package ai

// RoutedQuery is the raw classification returned by a QueryRouter. Fields map
// one-to-one onto the JSON the model is asked to produce; values may be
// missing, duplicated, or oddly cased until normalized by the query package.
type RoutedQuery struct {
	Strategy        string   `json:"strategy"`
	Entities        []string `json:"entities"`
	StockSymbols    []string `json:"stock_symbols"`
	Sectors         []string `json:"sectors"`
	Regulators      []string `json:"regulators"`
	SentimentFilter string   `json:"sentiment_filter"`
	TemporalScope   string   `json:"temporal_scope"`
	RefinedQuery    string   `json:"refined_query"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
}

// ExtractedCompany is a company mention identified in article text.
type ExtractedCompany struct {
	Name       string  `json:"name"`
	Ticker     string  `json:"ticker"`
	Sector     string  `json:"sector"`
	Confidence float64 `json:"confidence"`
}

// ExtractedRegulator is a regulatory body mention identified in article text.
type ExtractedRegulator struct {
	Name         string  `json:"name"`
	Jurisdiction string  `json:"jurisdiction"`
	Confidence   float64 `json:"confidence"`
}

// ExtractedEvent is a market-moving event identified in article text.
type ExtractedEvent struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// ExtractedEntities holds the financial entities found in an article.
type ExtractedEntities struct {
	Companies  []ExtractedCompany   `json:"companies"`
	Sectors    []string             `json:"sectors"`
	Regulators []ExtractedRegulator `json:"regulators"`
	People     []string             `json:"people"`
	Events     []ExtractedEvent     `json:"events"`
}

// SentimentAnalysis is the sentiment classification of an article.
// Scores are on a 0-100 scale.
type SentimentAnalysis struct {
	Classification  string             `json:"classification"`
	ConfidenceScore float64            `json:"confidence_score"`
	SignalStrength  float64            `json:"signal_strength"`
	KeyFactors      []string           `json:"key_factors"`
	Breakdown       map[string]float64 `json:"sentiment_breakdown"`
}

// AnalyzedImpact is a single stock judged to be affected by an article.
type AnalyzedImpact struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"company_name"`
	Confidence  float64 `json:"confidence"`
	ImpactType  string  `json:"impact_type"`
	Reasoning   string  `json:"reasoning"`
}

// ImpactAnalysis lists the stocks affected by an article.
type ImpactAnalysis struct {
	ImpactedStocks []AnalyzedImpact `json:"impacted_stocks"`
}

// AnalyzedCrossImpact is a second-order effect propagating between sectors.
type AnalyzedCrossImpact struct {
	SourceSector     string   `json:"source_sector"`
	TargetSector     string   `json:"target_sector"`
	Relationship     string   `json:"relationship"`
	ImpactScore      float64  `json:"impact_score"`
	DependencyWeight float64  `json:"dependency_weight"`
	Reasoning        string   `json:"reasoning"`
	ImpactedStocks   []string `json:"impacted_stocks"`
	TimeHorizon      string   `json:"time_horizon"`
}

// SupplyChainAnalysis lists cross-sector ripple effects of an article.
type SupplyChainAnalysis struct {
	CrossImpacts []AnalyzedCrossImpact `json:"cross_impacts"`
}
