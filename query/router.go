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


package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/core"
)

// Classifier turns a raw query string into a validated QueryRouting.
// It wraps the LLM router and normalizes its output: lists are trimmed and
// case-insensitively deduplicated preserving first-seen casing, symbols are
// uppercased, and the refined query always has a usable value.
type Classifier struct {
	router ai.QueryRouter
	logger *slog.Logger
}

// NewClassifier creates a classifier over the given LLM router.
func NewClassifier(router ai.QueryRouter, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		router: router,
		logger: logger,
	}
}

// Classify routes a query through the LLM and normalizes the result.
//
// An empty query is a caller fault (core.ErrValidation). A router failure is
// an upstream fault (core.ErrService); there is no silent fallback to a
// default strategy, callers must see the failure.
func (c *Classifier) Classify(ctx context.Context, query string) (*core.QueryRouting, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrValidation, core.ErrEmptyQuery)
	}

	routed, err := c.router.RouteQuery(ctx, query)
	if err != nil {
		c.logger.Error("query routing failed", "query", query, "err", err)
		if errors.Is(err, core.ErrService) {
			return nil, fmt.Errorf("query routing failed: %w", err)
		}
		return nil, fmt.Errorf("%w: query routing failed: %w", core.ErrService, err)
	}

	routing, err := c.normalize(routed)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("classified query",
		"strategy", routing.Strategy,
		"confidence", routing.Confidence,
		"refined", routing.RefinedQuery)
	return routing, nil
}

// normalize converts raw model output into a validated QueryRouting.
func (c *Classifier) normalize(routed *ai.RoutedQuery) (*core.QueryRouting, error) {
	strategy := core.QueryIntent(strings.ToUpper(strings.TrimSpace(routed.Strategy)))
	if !strategy.Valid() {
		// Unknown strategies degrade to pure semantic search
		c.logger.Warn("unknown routing strategy, using semantic search", "strategy", routed.Strategy)
		strategy = core.IntentSemanticSearch
	}

	var sentiment core.SentimentClass
	if strings.TrimSpace(routed.SentimentFilter) != "" {
		parsed, err := core.ParseSentimentClass(routed.SentimentFilter)
		if err != nil {
			return nil, err
		}
		sentiment = parsed
	}

	entities := dedupeFold(routed.Entities)
	symbols := dedupeSymbols(routed.StockSymbols)

	refined := strings.TrimSpace(routed.RefinedQuery)
	if refined == "" {
		if len(entities) > 0 {
			refined = entities[0]
		} else {
			refined = "financial news"
		}
	}

	// Out-of-range confidence is a model quirk, clamped rather than rejected
	confidence := routed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	routing := &core.QueryRouting{
		Strategy:        strategy,
		Entities:        entities,
		StockSymbols:    symbols,
		Sectors:         dedupeFold(routed.Sectors),
		Regulators:      dedupeFold(routed.Regulators),
		SentimentFilter: sentiment,
		TemporalScope:   strings.TrimSpace(routed.TemporalScope),
		RefinedQuery:    refined,
		Confidence:      confidence,
		Reasoning:       strings.TrimSpace(routed.Reasoning),
	}

	if err := core.ValidateRouting(routing); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrValidation, err)
	}
	return routing, nil
}

// dedupeFold trims values and drops case-insensitive duplicates,
// preserving the first-seen casing and order.
func dedupeFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// dedupeSymbols uppercases ticker symbols and drops duplicates,
// preserving order.
func dedupeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
