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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateArticle validates an Article according to domain rules.
//
// Validation rules:
//   - Id, Title and Content must not be empty
//   - Timestamp must not be in the future
//   - Impacted stock symbols must be non-empty
//
// NOT validated (populated by the ingestion pipeline):
//   - Vector (can be empty until the article is embedded)
//   - Entities, Sentiment, CrossImpacts (can be empty until enriched)
func ValidateArticle(article *Article) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}

	if article.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyArticleID)
	}
	if article.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyTitle)
	}
	if article.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyContent)
	}
	if !IsValidTimestamp(article.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrInvalidTimestamp)
	}

	for _, impact := range article.ImpactedStocks {
		if strings.TrimSpace(impact.Symbol) == "" {
			return fmt.Errorf("%w: impacted stock symbol cannot be empty", ErrInvalidArticle)
		}
	}

	return nil
}

// ValidateRouting validates a QueryRouting according to domain rules.
//
// Validation rules:
//   - Strategy must be a known QueryIntent
//   - RefinedQuery must be at least 3 characters after trimming
//   - Confidence must be in [0,1]
//   - SentimentFilter, if set, must be a valid SentimentClass
func ValidateRouting(routing *QueryRouting) error {
	if routing == nil {
		return fmt.Errorf("%w: routing is nil", ErrInvalidRouting)
	}

	if !routing.Strategy.Valid() {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidRouting, routing.Strategy)
	}
	if len(strings.TrimSpace(routing.RefinedQuery)) < 3 {
		return fmt.Errorf("%w: %w", ErrInvalidRouting, ErrEmptyRefinedQuery)
	}
	if routing.Confidence < 0 || routing.Confidence > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidRouting, ErrInvalidConfidence)
	}
	if routing.SentimentFilter != "" {
		if _, err := ParseSentimentClass(string(routing.SentimentFilter)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRouting, err)
		}
	}

	return nil
}

// ParseSentimentClass parses a sentiment string into a SentimentClass.
// Matching is case-insensitive; the canonical capitalized form is returned.
func ParseSentimentClass(s string) (SentimentClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bullish":
		return SentimentBullish, nil
	case "bearish":
		return SentimentBearish, nil
	case "neutral":
		return SentimentNeutral, nil
	}
	return "", fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidSentimentFilter, s)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
