package core

// QueryIntent is the search strategy chosen by the query router.
type QueryIntent string

const (
	IntentDirectEntity    QueryIntent = "DIRECT_ENTITY"
	IntentSectorWide      QueryIntent = "SECTOR_WIDE"
	IntentRegulatory      QueryIntent = "REGULATORY"
	IntentSentimentDriven QueryIntent = "SENTIMENT_DRIVEN"
	IntentCrossImpact     QueryIntent = "CROSS_IMPACT"
	IntentSemanticSearch  QueryIntent = "SEMANTIC_SEARCH"
	IntentTemporal        QueryIntent = "TEMPORAL"
)

// Valid reports whether the intent is one of the known strategies.
func (q QueryIntent) Valid() bool {
	switch q {
	case IntentDirectEntity, IntentSectorWide, IntentRegulatory,
		IntentSentimentDriven, IntentCrossImpact, IntentSemanticSearch,
		IntentTemporal:
		return true
	}
	return false
}

// ExecutionStrategy identifies which execution branch a query ran through.
// It is chosen per invocation and carried only in StrategyMetadata.
type ExecutionStrategy string

const (
	StrategyVectorFallback ExecutionStrategy = "vector_search_fallback"
	StrategyFilterFirst    ExecutionStrategy = "mongo_filter_first"
	StrategyVectorFirst    ExecutionStrategy = "vector_search_first"
)

// QueryRouting is the structured intent produced by the query router.
//
// Invariants enforced by the router before a QueryRouting is returned:
// entity list fields are trimmed, non-empty and case-insensitively
// deduplicated preserving first-seen casing; StockSymbols are uppercased;
// RefinedQuery is non-empty.
type QueryRouting struct {
	Strategy        QueryIntent
	Entities        []string // Company names identified in the query
	StockSymbols    []string // Uppercase ticker symbols
	Sectors         []string
	Regulators      []string
	SentimentFilter SentimentClass // Empty means no sentiment restriction
	TemporalScope   string         // e.g. "recent", "last_week"; empty means none
	RefinedQuery    string         // Optimized semantic search query
	Confidence      float64        // Routing confidence in [0,1]
	Reasoning       string

	// StrategyMetadata is attached after execution for observability.
	StrategyMetadata *StrategyMetadata
}

// StrategyMetadata records which execution branch ran and why. The JSON keys
// match the diagnostic payload exposed by the query API.
type StrategyMetadata struct {
	StrategyUsed      ExecutionStrategy `json:"strategy_used"`
	FilteredCount     int               `json:"filtered_count"`
	VectorCandidates  int               `json:"vector_candidates"`
	FilterApplied     bool              `json:"mongodb_filter_applied"`
	FallbackTriggered bool              `json:"fallback_triggered,omitempty"`
	Threshold         int               `json:"threshold"`
}
