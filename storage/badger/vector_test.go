package badger

import (
	"context"
	"testing"

	"github.com/finsight/newsintel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedArticle(id string, vector []float32) *core.Article {
	article := testArticle(id, "embedded "+id)
	article.Vector = vector
	return article
}

func TestVectorSearch(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()

	require.NoError(t, articles.UpsertArticles(ctx,
		embeddedArticle("a1", []float32{1, 0, 0}),
		embeddedArticle("a2", []float32{0.9, 0.1, 0}),
		embeddedArticle("a3", []float32{0, 1, 0}),
		testArticle("a4", "no embedding yet"),
	))

	results, err := vectors.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 3, "articles without embeddings are skipped")

	assert.Equal(t, "a1", results[0].ArticleID)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
	assert.Equal(t, "a2", results[1].ArticleID)
	assert.Equal(t, "a3", results[2].ArticleID)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Similarity, 0.0)
		assert.LessOrEqual(t, r.Similarity, 1.0)
		assert.InDelta(t, 1.0-r.Similarity, r.Distance, 1e-9)
	}
}

func TestVectorSearchTopK(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()
	require.NoError(t, articles.UpsertArticles(ctx,
		embeddedArticle("a1", []float32{1, 0}),
		embeddedArticle("a2", []float32{0.8, 0.2}),
		embeddedArticle("a3", []float32{0.5, 0.5}),
	))

	results, err := vectors.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "a1", results[0].ArticleID)
}

func TestVectorSearchRestricted(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()
	require.NoError(t, articles.UpsertArticles(ctx,
		embeddedArticle("a1", []float32{1, 0, 0}),
		embeddedArticle("a2", []float32{0.9, 0.1, 0}),
		embeddedArticle("a3", []float32{0.99, 0.01, 0}),
	))

	results, err := vectors.SearchRestricted(ctx, []float32{1, 0, 0}, []string{"a2", "a3", "ghost"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a3", results[0].ArticleID)
	assert.Equal(t, "a2", results[1].ArticleID)
}

func TestVectorCount(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()
	require.NoError(t, articles.UpsertArticles(ctx,
		embeddedArticle("a1", []float32{1, 0}),
		testArticle("a2", "not embedded"),
	))

	count, err := vectors.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	// Opposed vectors clamp to zero
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}))
	// Zero vector yields zero similarity
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}
