package badger

import (
	"context"
	"testing"
	"time"

	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArticle(id, title string) *core.Article {
	return &core.Article{
		Id:        id,
		Title:     title,
		Content:   "content for " + title,
		Source:    "test-feed",
		Timestamp: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestArticleRoundTrip(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()

	article := testArticle("a1", "RBI holds repo rate")
	article.Entities = core.EntitySet{
		Sectors:    []string{"Banking"},
		Regulators: []core.Regulator{{Name: "RBI"}},
	}

	require.NoError(t, articles.UpsertArticles(ctx, article))
	assert.False(t, article.InsertedAt.IsZero())
	assert.False(t, article.UpdatedAt.IsZero())

	got, err := articles.GetArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "RBI holds repo rate", got.Title)
	assert.Equal(t, []string{"Banking"}, got.Entities.Sectors)

	_, err = articles.GetArticle(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetArticlesSkipsMissing(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()
	require.NoError(t, articles.UpsertArticles(ctx,
		testArticle("a1", "first"),
		testArticle("a2", "second"),
	))

	got, err := articles.GetArticles(ctx, "a1", "ghost", "a2")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUpsertReplacesIndexEntries(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()

	article := testArticle("a1", "Sector shift")
	article.Entities.Sectors = []string{"Pharma"}
	require.NoError(t, articles.UpsertArticles(ctx, article))

	// Re-enrichment moves the article to a different sector
	updated := testArticle("a1", "Sector shift")
	updated.Entities.Sectors = []string{"Banking"}
	require.NoError(t, articles.UpsertArticles(ctx, updated))

	pharma, err := articles.Count(ctx, storage.Filter{}.And(storage.Eq(storage.FieldSector, "Pharma")))
	require.NoError(t, err)
	assert.Equal(t, 0, pharma, "stale index entry must be removed")

	banking, err := articles.Count(ctx, storage.Filter{}.And(storage.Eq(storage.FieldSector, "Banking")))
	require.NoError(t, err)
	assert.Equal(t, 1, banking)

	// First write's insertion time survives the upsert
	got, err := articles.GetArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, article.InsertedAt, got.InsertedAt)
}

func TestCountAndFindIDs(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()

	a1 := testArticle("a1", "HDFC results")
	a1.Entities.Sectors = []string{"Banking"}
	a1.ImpactedStocks = []core.StockImpact{{Symbol: "HDFCBANK"}}
	a1.Sentiment = &core.Sentiment{Classification: core.SentimentBullish}

	a2 := testArticle("a2", "ICICI guidance cut")
	a2.Entities.Sectors = []string{"Banking"}
	a2.ImpactedStocks = []core.StockImpact{{Symbol: "ICICIBANK"}}
	a2.Sentiment = &core.Sentiment{Classification: core.SentimentBearish}

	a3 := testArticle("a3", "Sun Pharma approval")
	a3.Entities.Sectors = []string{"Pharma"}

	require.NoError(t, articles.UpsertArticles(ctx, a1, a2, a3))

	t.Run("empty filter counts corpus", func(t *testing.T) {
		count, err := articles.Count(ctx, storage.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("single clause", func(t *testing.T) {
		count, err := articles.Count(ctx, storage.Filter{}.And(storage.Eq(storage.FieldSector, "Banking")))
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("case-insensitive index scan", func(t *testing.T) {
		count, err := articles.Count(ctx, storage.Filter{}.And(storage.Eq(storage.FieldSector, "banking")))
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("conjunction intersects", func(t *testing.T) {
		f := storage.Filter{}.
			And(storage.Eq(storage.FieldSector, "Banking")).
			And(storage.Eq(storage.FieldSentiment, "Bearish"))
		ids, err := articles.FindIDs(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, []string{"a2"}, ids)
	})

	t.Run("membership unions values", func(t *testing.T) {
		f := storage.Filter{}.And(storage.In(storage.FieldStockSymbol, []string{"HDFCBANK", "ICICIBANK"}))
		ids, err := articles.FindIDs(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a2"}, ids)
	})

	t.Run("no matches", func(t *testing.T) {
		count, err := articles.Count(ctx, storage.Filter{}.And(storage.Eq(storage.FieldSector, "Energy")))
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestIndexValuesContainingSeparator(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()

	a1 := testArticle("a1", "conglomerate update")
	a1.Entities.Companies = []core.Company{{Name: "A: B Corp"}}
	a2 := testArticle("a2", "short name")
	a2.Entities.Companies = []core.Company{{Name: "A"}}
	require.NoError(t, articles.UpsertArticles(ctx, a1, a2))

	ids, err := articles.FindIDs(ctx, storage.Filter{}.And(storage.Eq(storage.FieldCompany, "A")))
	require.NoError(t, err)
	assert.Equal(t, []string{"a2"}, ids, "scan for \"A\" must not pick up values extending past the separator")

	ids, err = articles.FindIDs(ctx, storage.Filter{}.And(storage.Eq(storage.FieldCompany, "A: B Corp")))
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids)

	count, err := articles.Count(ctx, storage.Filter{}.And(storage.Eq(storage.FieldCompany, "a: b corp")))
	require.NoError(t, err)
	assert.Equal(t, 1, count, "escaped values still match case-insensitively")
}

func TestFindIDsMatching(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()

	a1 := testArticle("a1", "bullish banking")
	a1.Entities.Sectors = []string{"Banking"}
	a2 := testArticle("a2", "pharma note")
	a2.Entities.Sectors = []string{"Pharma"}
	require.NoError(t, articles.UpsertArticles(ctx, a1, a2))

	f := storage.Filter{}.And(storage.Eq(storage.FieldSector, "Banking"))
	matched, err := articles.FindIDsMatching(ctx, f, []string{"a1", "a2", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a1": {}}, matched)

	matched, err = articles.FindIDsMatching(ctx, storage.Filter{}, []string{"a1", "a2", "ghost"})
	require.NoError(t, err)
	assert.Len(t, matched, 2, "empty filter keeps every existing ID")
}

func TestDeleteArticles(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	ctx := context.Background()

	a1 := testArticle("a1", "to delete")
	a1.Entities.Sectors = []string{"Banking"}
	require.NoError(t, articles.UpsertArticles(ctx, a1))

	require.NoError(t, articles.DeleteArticles(ctx, "a1"))

	_, err = articles.GetArticle(ctx, "a1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	count, err := articles.Count(ctx, storage.Filter{}.And(storage.Eq(storage.FieldSector, "Banking")))
	require.NoError(t, err)
	assert.Equal(t, 0, count, "index entries must be removed with the record")

	err = articles.DeleteArticles(ctx, "a1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpsertRejectsInvalidArticle(t *testing.T) {
	articles, vectors, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() { vectors.Close(); articles.Close(); backend.Close() }()

	err = articles.UpsertArticles(context.Background(), &core.Article{Id: "a1"})
	assert.ErrorIs(t, err, core.ErrInvalidArticle)
}
