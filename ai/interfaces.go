package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryRouter classifies a financial news query into a retrieval strategy.
// Implementations must be thread-safe for concurrent use.
type QueryRouter interface {
	// RouteQuery analyzes a natural-language query and returns its intent
	// classification, extracted search terms, and a refined query text.
	// The raw response may be incomplete; callers normalize it before use.
	RouteQuery(ctx context.Context, query string) (*RoutedQuery, error)
}

// EntityExtractor identifies financial entities mentioned in article text.
// Implementations must be thread-safe for concurrent use.
type EntityExtractor interface {
	// ExtractEntities analyzes text and extracts companies, sectors,
	// regulators, people, and events mentioned in it.
	ExtractEntities(ctx context.Context, text string) (*ExtractedEntities, error)
}

// SentimentAnalyzer classifies the market sentiment of article text.
// Implementations must be thread-safe for concurrent use.
type SentimentAnalyzer interface {
	// AnalyzeSentiment returns the sentiment classification with confidence
	// and signal strength scores in the 0-100 range.
	AnalyzeSentiment(ctx context.Context, text string) (*SentimentAnalysis, error)
}

// ImpactMapper maps article text to the stocks it affects.
// Implementations must be thread-safe for concurrent use.
type ImpactMapper interface {
	// MapImpacts identifies the stocks impacted by the news, directly or
	// through sector and regulatory effects.
	MapImpacts(ctx context.Context, text string, entities *ExtractedEntities) (*ImpactAnalysis, error)
}

// SupplyChainAnalyzer traces cross-sector ripple effects of news.
// Implementations must be thread-safe for concurrent use.
type SupplyChainAnalyzer interface {
	// AnalyzeSupplyChain identifies second-order impacts propagating through
	// supply chain relationships between sectors.
	AnalyzeSupplyChain(ctx context.Context, text string, entities *ExtractedEntities) (*SupplyChainAnalysis, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages the services, ensuring they share
// configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// QueryRouter returns the query classification service.
	QueryRouter() QueryRouter

	// EntityExtractor returns the entity extraction service.
	EntityExtractor() EntityExtractor

	// SentimentAnalyzer returns the sentiment classification service.
	SentimentAnalyzer() SentimentAnalyzer

	// ImpactMapper returns the stock impact mapping service.
	ImpactMapper() ImpactMapper

	// SupplyChainAnalyzer returns the cross-sector impact service.
	SupplyChainAnalyzer() SupplyChainAnalyzer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
