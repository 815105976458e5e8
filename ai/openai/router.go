// Copyright 2025 Finsight Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"

	"github.com/finsight/newsintel/ai"
	"github.com/tmc/langchaingo/llms"
)

// QueryRouter implements ai.QueryRouter using OpenAI-compatible chat APIs.
type QueryRouter struct {
	client     llms.Model
	maxRetries int
	logger     *slog.Logger
}

// newQueryRouter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryRouter(config *ai.Config, client llms.Model) *QueryRouter {
	return &QueryRouter{
		client:     client,
		maxRetries: config.MaxRetries,
		logger:     slog.Default().With("component", "openai-router"),
	}
}

// NewQueryRouter creates a new query router using the provided configuration.
//
// Returns ai.QueryRouter interface to enforce abstraction.
func NewQueryRouter(config *ai.Config) (ai.QueryRouter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newAnalystClient(config)
	if err != nil {
		return nil, err
	}
	return newQueryRouter(config, client), nil
}

// RouteQuery classifies a query into a retrieval strategy using an LLM.
// The result is raw model output; normalization happens in the query package.
func (r *QueryRouter) RouteQuery(ctx context.Context, query string) (*ai.RoutedQuery, error) {
	var routed ai.RoutedQuery
	err := completeJSON(ctx, r.client, r.logger, r.maxRetries,
		buildRoutingPrompt(), truncateForPrompt(query), &routed)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("routed query",
		"strategy", routed.Strategy,
		"confidence", routed.Confidence)
	return &routed, nil
}
