package mock

import (
	"context"

	"github.com/finsight/newsintel/ai"
)

// QueryRouter is a test double for ai.QueryRouter.
// It allows custom behavior injection via function fields.
type QueryRouter struct {
	// RouteQueryFunc is called by RouteQuery if set.
	// If nil, returns a semantic-search classification echoing the query.
	RouteQueryFunc func(ctx context.Context, query string) (*ai.RoutedQuery, error)

	callCount int
}

// NewQueryRouter creates a mock query router with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewQueryRouter() *QueryRouter {
	return &QueryRouter{}
}

// RouteQuery returns the injected classification or a semantic-search default.
func (m *QueryRouter) RouteQuery(ctx context.Context, query string) (*ai.RoutedQuery, error) {
	m.callCount++

	if m.RouteQueryFunc != nil {
		return m.RouteQueryFunc(ctx, query)
	}

	return &ai.RoutedQuery{
		Strategy:     "SEMANTIC_SEARCH",
		RefinedQuery: query,
		Confidence:   0.5,
		Reasoning:    "mock default",
	}, nil
}

// CallCount returns the number of times RouteQuery was called.
func (m *QueryRouter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *QueryRouter) Reset() {
	m.callCount = 0
	m.RouteQueryFunc = nil
}
