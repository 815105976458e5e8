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
	"slices"
	"strings"

	"github.com/finsight/newsintel/core"
)

// Rerank scores articles by blending semantic similarity with a
// strategy-specific metadata match, then sorts best-first.
//
// The blend is an even split: final = 0.5*semantic + 0.5*strategy. Articles
// carrying sentiment get a signal boost of (1 + signal_strength/200), at most
// 1.5x, and the final score is capped at 1.0. The sort is stable so ties keep
// their retrieval order.
func Rerank(scored []core.ScoredArticle, routing *core.QueryRouting) []core.ScoredArticle {
	for i := range scored {
		article := scored[i].Article

		strategyScore := strategyScore(article, routing)
		finalScore := scored[i].RelevanceScore*0.5 + strategyScore*0.5

		if article != nil && article.HasSentiment() {
			finalScore *= 1.0 + article.Sentiment.SignalStrength/200.0
		}
		if finalScore > 1.0 {
			finalScore = 1.0
		}

		scored[i].StrategyScore = strategyScore
		scored[i].FinalScore = finalScore
	}

	slices.SortStableFunc(scored, func(a, b core.ScoredArticle) int {
		if a.FinalScore > b.FinalScore {
			return -1
		}
		if a.FinalScore < b.FinalScore {
			return 1
		}
		return 0
	})
	return scored
}

// strategyScore measures how well an article's metadata matches the routing
// terms. All comparisons are case-insensitive.
func strategyScore(article *core.Article, routing *core.QueryRouting) float64 {
	if article == nil || routing == nil {
		return 0.0
	}

	switch routing.Strategy {
	case core.IntentDirectEntity:
		if matchesCompany(article, routing.Entities) || matchesSymbol(article, routing.StockSymbols) {
			return 1.0
		}
		return 0.0

	case core.IntentSectorWide:
		if matchesSector(article, routing.Sectors) {
			return 0.8
		}
		return 0.0

	case core.IntentRegulatory:
		if matchesRegulator(article, routing.Regulators) {
			return 1.0
		}
		return 0.0

	case core.IntentSentimentDriven:
		if !article.HasSentiment() || routing.SentimentFilter == "" {
			return 0.0
		}
		if !strings.EqualFold(string(article.Sentiment.Classification), string(routing.SentimentFilter)) {
			return 0.0
		}
		if len(routing.Sectors) > 0 && matchesSector(article, routing.Sectors) {
			return 0.9
		}
		return 0.7

	case core.IntentCrossImpact:
		if article.HasCrossImpacts() {
			return 0.8
		}
		return 0.5
	}

	// SEMANTIC_SEARCH, TEMPORAL: weak flat prior
	return 0.3
}

func matchesCompany(article *core.Article, entities []string) bool {
	for _, entity := range entities {
		if article.Entities.ContainsCompany(entity) {
			return true
		}
	}
	return false
}

func matchesSymbol(article *core.Article, symbols []string) bool {
	for _, symbol := range symbols {
		for _, impact := range article.ImpactedStocks {
			if strings.EqualFold(impact.Symbol, symbol) {
				return true
			}
		}
	}
	return false
}

func matchesSector(article *core.Article, sectors []string) bool {
	for _, sector := range sectors {
		if article.Entities.ContainsSector(sector) {
			return true
		}
	}
	return false
}

func matchesRegulator(article *core.Article, regulators []string) bool {
	for _, regulator := range regulators {
		if article.Entities.ContainsRegulator(regulator) {
			return true
		}
	}
	return false
}
