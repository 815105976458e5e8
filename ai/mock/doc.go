// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of every ai interface for use in
// unit tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewProvider()
//	vector, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection via function fields
//	router := mock.NewQueryRouter()
//	router.RouteQueryFunc = func(ctx context.Context, query string) (*ai.RoutedQuery, error) {
//	    return &ai.RoutedQuery{Strategy: "DIRECT_ENTITY", RefinedQuery: query}, nil
//	}
//
//	// Check call counts
//	count := router.CallCount()
//
// # Default Behavior
//
//   - Embedder: deterministic vectors based on text hash
//   - QueryRouter: SEMANTIC_SEARCH classification echoing the query
//   - EntityExtractor, ImpactMapper, SupplyChainAnalyzer: empty results
//   - SentimentAnalyzer: Neutral classification with weak signal
package mock
