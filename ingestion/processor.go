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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
)

// entityAwareSentiment is the optional richer interface a sentiment analyzer
// may implement to receive entity context alongside the article text.
type entityAwareSentiment interface {
	AnalyzeSentimentWithEntities(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.SentimentAnalysis, error)
}

// enrichmentProcessor runs one article through the enrichment stage chain.
// Any stage failure aborts the article; there is no partial enrichment.
type enrichmentProcessor struct {
	articles    storage.ArticleRepository
	embedder    ai.Embedder
	extractor   ai.EntityExtractor
	sentiment   ai.SentimentAnalyzer
	impacts     ai.ImpactMapper
	supplychain ai.SupplyChainAnalyzer
	dedup       *deduper
	logger      *slog.Logger
}

func newEnrichmentProcessor(
	articles storage.ArticleRepository,
	vectors storage.VectorIndex,
	provider ai.Provider,
	logger *slog.Logger,
) *enrichmentProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &enrichmentProcessor{
		articles:    articles,
		embedder:    provider.Embedder(),
		extractor:   provider.EntityExtractor(),
		sentiment:   provider.SentimentAnalyzer(),
		impacts:     provider.ImpactMapper(),
		supplychain: provider.SupplyChainAnalyzer(),
		dedup:       newDeduper(articles, vectors, logger),
		logger:      logger.With("processor", "enrichment"),
	}
}

func (ep *enrichmentProcessor) process(ctx context.Context, article *core.Article) (*IngestResult, error) {
	if article != nil && article.Id == "" {
		article.Id = core.IDFromContent(article.Title + article.Content)
	}
	if err := core.ValidateArticle(article); err != nil {
		return nil, err
	}

	text := enrichmentText(article)

	vector, err := ep.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	article.Vector = vector

	duplicates, err := ep.dedup.findDuplicates(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("duplicate detection: %w", err)
	}
	if len(duplicates) > 0 {
		ep.logger.Info("duplicate article skipped",
			"id", article.Id,
			"duplicates", len(duplicates))
		return &IngestResult{
			ArticleID:    article.Id,
			IsDuplicate:  true,
			DuplicateIDs: duplicates,
		}, nil
	}

	extracted, err := ep.extractor.ExtractEntities(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("entity extraction: %w", err)
	}
	article.Entities = toEntitySet(extracted)

	impacts, err := ep.impacts.MapImpacts(ctx, text, extracted)
	if err != nil {
		return nil, fmt.Errorf("impact mapping: %w", err)
	}
	article.ImpactedStocks = toStockImpacts(impacts)

	analysis, err := ep.analyzeSentiment(ctx, text, extracted)
	if err != nil {
		return nil, fmt.Errorf("sentiment analysis: %w", err)
	}
	article.Sentiment = toSentiment(analysis, ep.logger)

	chain, err := ep.supplychain.AnalyzeSupplyChain(ctx, text, extracted)
	if err != nil {
		return nil, fmt.Errorf("supply chain analysis: %w", err)
	}
	article.CrossImpacts = toCrossImpacts(chain)

	if err := ep.articles.UpsertArticles(ctx, article); err != nil {
		return nil, err
	}

	result := &IngestResult{
		ArticleID:         article.Id,
		EntitiesExtracted: entityCount(article.Entities),
		StocksImpacted:    len(article.ImpactedStocks),
	}
	if article.Sentiment != nil {
		result.SentimentClassification = article.Sentiment.Classification
		result.SignalStrength = article.Sentiment.SignalStrength
	}
	return result, nil
}

// analyzeSentiment passes entity context through when the analyzer supports
// it, so sentiment is judged against the companies actually named.
func (ep *enrichmentProcessor) analyzeSentiment(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.SentimentAnalysis, error) {
	if aware, ok := ep.sentiment.(entityAwareSentiment); ok {
		return aware.AnalyzeSentimentWithEntities(ctx, text, entities)
	}
	return ep.sentiment.AnalyzeSentiment(ctx, text)
}

// enrichmentText is the single text view every stage operates on.
func enrichmentText(article *core.Article) string {
	return article.Title + "\n\n" + article.Content
}

func entityCount(entities core.EntitySet) int {
	return len(entities.Companies) + len(entities.Sectors) +
		len(entities.Regulators) + len(entities.People) + len(entities.Events)
}
