package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/ai/mock"
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
	"github.com/finsight/newsintel/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.ArticleRepository, *mock.Provider) {
	t.Helper()

	articles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { vectors.Close(); articles.Close(); backend.Close() })

	provider := mock.NewProvider().(*mock.Provider)
	pipeline, err := NewPipeline(articles, vectors, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, articles, provider
}

func inputArticle(title, content string) *core.Article {
	return &core.Article{
		Title:     title,
		Content:   content,
		Source:    "test-feed",
		Timestamp: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestNewPipeline(t *testing.T) {
	articles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { vectors.Close(); articles.Close(); backend.Close() })

	provider := mock.NewProvider()

	t.Run("valid pipeline", func(t *testing.T) {
		pipeline, err := NewPipeline(articles, vectors, provider)
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()

		assert.NotNil(t, pipeline.pool)
		assert.NotNil(t, pipeline.proc)
	})

	t.Run("nil article repository", func(t *testing.T) {
		_, err := NewPipeline(nil, vectors, provider)
		assert.Equal(t, ErrArticleRepositoryRequired, err)
	})

	t.Run("nil vector index", func(t *testing.T) {
		_, err := NewPipeline(articles, nil, provider)
		assert.Equal(t, ErrVectorIndexRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(articles, vectors, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("pool size zero defaults to 1", func(t *testing.T) {
		pipeline, err := NewPipeline(articles, vectors, provider, WithPoolSize(0))
		require.NoError(t, err)
		defer pipeline.Release()
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		pipeline, err := NewPipeline(articles, vectors, provider, WithLogger(nil))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.NotNil(t, pipeline.logger)
	})

	t.Run("custom logger", func(t *testing.T) {
		logger := slog.Default()
		pipeline, err := NewPipeline(articles, vectors, provider, WithLogger(logger))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.Equal(t, logger, pipeline.logger)
	})
}

func TestIngestArticleEnriches(t *testing.T) {
	pipeline, articles, provider := setupPipeline(t)
	ctx := context.Background()

	provider.MockEntityExtractor().ExtractEntitiesFunc = func(ctx context.Context, text string) (*ai.ExtractedEntities, error) {
		return &ai.ExtractedEntities{
			Companies: []ai.ExtractedCompany{
				{Name: "HDFC Bank", Ticker: "hdfcbank", Sector: "Banking", Confidence: 0.95},
				{Name: "hdfc bank", Confidence: 0.4}, // duplicate, dropped
			},
			Sectors:    []string{"Banking", " banking "},
			Regulators: []ai.ExtractedRegulator{{Name: "RBI", Jurisdiction: "India", Confidence: 0.9}},
		}, nil
	}
	provider.MockImpactMapper().MapImpactsFunc = func(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.ImpactAnalysis, error) {
		return &ai.ImpactAnalysis{ImpactedStocks: []ai.AnalyzedImpact{
			{Symbol: "icicibank", Confidence: 0.5, ImpactType: "sector"},
			{Symbol: "HDFCBANK", Confidence: 0.9, ImpactType: "direct"},
		}}, nil
	}
	provider.MockSentimentAnalyzer().AnalyzeSentimentFunc = func(ctx context.Context, text string) (*ai.SentimentAnalysis, error) {
		return &ai.SentimentAnalysis{Classification: "bullish", ConfidenceScore: 80, SignalStrength: 65}, nil
	}
	provider.MockSupplyChainAnalyzer().AnalyzeSupplyChainFunc = func(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.SupplyChainAnalysis, error) {
		return &ai.SupplyChainAnalysis{CrossImpacts: []ai.AnalyzedCrossImpact{
			{SourceSector: "Banking", TargetSector: "Realty", Relationship: "downstream_supply_impact", ImpactScore: 60},
		}}, nil
	}

	result, err := pipeline.IngestArticle(ctx, inputArticle("RBI cuts repo rate", "The central bank lowered the repo rate by 25 bps."))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.IsDuplicate)
	assert.Equal(t, 3, result.EntitiesExtracted, "1 company + 1 sector + 1 regulator after dedup")
	assert.Equal(t, 2, result.StocksImpacted)
	assert.Equal(t, core.SentimentBullish, result.SentimentClassification)
	assert.Equal(t, 65.0, result.SignalStrength)

	stored, err := articles.GetArticle(ctx, result.ArticleID)
	require.NoError(t, err)

	require.Len(t, stored.Entities.Companies, 1, "case-insensitive duplicate removed")
	assert.Equal(t, "HDFC Bank", stored.Entities.Companies[0].Name)
	assert.Equal(t, "HDFCBANK", stored.Entities.Companies[0].Ticker)
	assert.Equal(t, []string{"Banking"}, stored.Entities.Sectors)

	require.Len(t, stored.ImpactedStocks, 2)
	assert.Equal(t, "HDFCBANK", stored.ImpactedStocks[0].Symbol, "highest confidence first")
	assert.Equal(t, core.ImpactDirect, stored.ImpactedStocks[0].ImpactType)

	require.NotNil(t, stored.Sentiment)
	assert.Equal(t, core.SentimentBullish, stored.Sentiment.Classification)

	require.Len(t, stored.CrossImpacts, 1)
	assert.Equal(t, core.DownstreamSupplyImpact, stored.CrossImpacts[0].Relationship)

	assert.NotEmpty(t, stored.Vector, "embedding persisted with the record")
}

func TestIngestArticleAssignsDeterministicID(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	article := inputArticle("Title", "Content body")
	result, err := pipeline.IngestArticle(context.Background(), article)
	require.NoError(t, err)

	assert.Equal(t, core.IDFromContent("Title"+"Content body"), result.ArticleID)
	assert.Equal(t, result.ArticleID, article.Id)
}

func TestIngestArticleRejectsInvalid(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	_, err := pipeline.IngestArticle(context.Background(), &core.Article{Title: "No content"})
	assert.ErrorIs(t, err, core.ErrInvalidArticle)
}

func TestIngestArticleDetectsDuplicate(t *testing.T) {
	pipeline, articles, provider := setupPipeline(t)
	ctx := context.Background()

	// Fixed embedding makes every article a nearest neighbor of every other
	provider.MockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{0.5, 0.5, 0.5}, nil
	}

	first, err := pipeline.IngestArticle(ctx, inputArticle(
		"RBI raises repo rate by 25 bps",
		"The Reserve Bank of India raised the repo rate by 25 basis points on Friday."))
	require.NoError(t, err)
	require.False(t, first.IsDuplicate)

	// Same story reworded: token set nearly identical
	second, err := pipeline.IngestArticle(ctx, inputArticle(
		"Repo rate raised by 25 bps by RBI",
		"On Friday the Reserve Bank of India raised the repo rate by 25 basis points."))
	require.NoError(t, err)

	assert.True(t, second.IsDuplicate)
	assert.Equal(t, []string{first.ArticleID}, second.DuplicateIDs)

	// Duplicates are never stored
	_, err = articles.GetArticle(ctx, second.ArticleID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIngestArticleDistinctStoriesBothStored(t *testing.T) {
	pipeline, articles, provider := setupPipeline(t)
	ctx := context.Background()

	provider.MockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{0.5, 0.5, 0.5}, nil
	}

	first, err := pipeline.IngestArticle(ctx, inputArticle(
		"RBI raises repo rate",
		"The Reserve Bank of India raised the repo rate by 25 basis points."))
	require.NoError(t, err)
	require.False(t, first.IsDuplicate)

	// Semantically close by embedding but textually unrelated, so the token
	// overlap check rejects it as a duplicate
	second, err := pipeline.IngestArticle(ctx, inputArticle(
		"Sun Pharma wins US approval",
		"The drugmaker received FDA clearance for its new generic oncology treatment."))
	require.NoError(t, err)
	assert.False(t, second.IsDuplicate)

	count, err := articles.Count(ctx, storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngestArticleStageFailureAborts(t *testing.T) {
	pipeline, articles, provider := setupPipeline(t)
	ctx := context.Background()

	provider.MockImpactMapper().MapImpactsFunc = func(ctx context.Context, text string, entities *ai.ExtractedEntities) (*ai.ImpactAnalysis, error) {
		return nil, errors.New("model unavailable")
	}

	article := inputArticle("Some title", "Some content")
	_, err := pipeline.IngestArticle(ctx, article)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "impact mapping")

	// Nothing persisted for the failed article
	count, err := articles.Count(ctx, storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIngestBatch(t *testing.T) {
	pipeline, articles, provider := setupPipeline(t, WithPoolSize(2))
	ctx := context.Background()

	provider.MockEntityExtractor().ExtractEntitiesFunc = func(ctx context.Context, text string) (*ai.ExtractedEntities, error) {
		if text == "Broken\n\nThis one fails" {
			return nil, errors.New("extraction error")
		}
		return &ai.ExtractedEntities{}, nil
	}

	batch := []*core.Article{
		inputArticle("First story", "Completely unrelated banking content here."),
		inputArticle("Broken", "This one fails"),
		inputArticle("Second story", "Equally unrelated pharma regulatory content there."),
	}

	results := pipeline.IngestBatch(ctx, batch)
	require.Len(t, results, 3)

	assert.NotNil(t, results[0])
	assert.Nil(t, results[1], "failed article yields a nil result")
	assert.NotNil(t, results[2])

	count, err := articles.Count(ctx, storage.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngestBatchEmpty(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)
	results := pipeline.IngestBatch(context.Background(), nil)
	assert.Empty(t, results)
}

func TestPipelineRelease(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	pipeline.Release()
	pipeline.Release() // releasing twice must not panic
}
