package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSet(t *testing.T) {
	set := tokenSet("RBI raises rates, again! (25bps)")

	assert.Contains(t, set, "rbi")
	assert.Contains(t, set, "raises")
	assert.Contains(t, set, "25bps")
	assert.NotContains(t, set, "RBI")
	assert.Len(t, set, 5)
}

func TestTokenOverlap(t *testing.T) {
	a := tokenSet("the quick brown fox")
	b := tokenSet("the quick brown fox")
	c := tokenSet("a lazy dog sleeps")

	assert.Equal(t, 1.0, tokenOverlap(a, b))
	assert.Equal(t, 0.0, tokenOverlap(a, c))
	assert.Equal(t, 1.0, tokenOverlap(tokenSet(""), tokenSet("")))

	// {the, quick} vs {the, quick, brown, fox}: 2/4
	partial := tokenOverlap(tokenSet("the quick"), a)
	assert.InDelta(t, 0.5, partial, 1e-9)
}

func TestFindDuplicatesRequiresBothThresholds(t *testing.T) {
	articles, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { vectors.Close(); articles.Close(); backend.Close() })

	d := newDeduper(articles, vectors, nil)
	ctx := context.Background()

	stored := &core.Article{
		Id:        "stored1",
		Title:     "RBI raises repo rate",
		Content:   "The central bank raised the repo rate by 25 basis points.",
		Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Vector:    []float32{1, 0, 0},
	}
	require.NoError(t, articles.UpsertArticles(ctx, stored))

	t.Run("similar text and vector is a duplicate", func(t *testing.T) {
		incoming := &core.Article{
			Id:      "new1",
			Title:   "Repo rate raised by RBI",
			Content: "The central bank raised the repo rate by 25 basis points.",
			Vector:  []float32{1, 0, 0},
		}
		dups, err := d.findDuplicates(ctx, incoming)
		require.NoError(t, err)
		assert.Equal(t, []string{"stored1"}, dups)
	})

	t.Run("low vector similarity is never a duplicate", func(t *testing.T) {
		incoming := &core.Article{
			Id:      "new2",
			Title:   "RBI raises repo rate",
			Content: "The central bank raised the repo rate by 25 basis points.",
			Vector:  []float32{0, 1, 0}, // orthogonal to the stored article
		}
		dups, err := d.findDuplicates(ctx, incoming)
		require.NoError(t, err)
		assert.Empty(t, dups)
	})

	t.Run("close vector but different text is not a duplicate", func(t *testing.T) {
		incoming := &core.Article{
			Id:      "new3",
			Title:   "Sun Pharma wins approval",
			Content: "A drugmaker received clearance for its generic oncology launch abroad.",
			Vector:  []float32{1, 0, 0},
		}
		dups, err := d.findDuplicates(ctx, incoming)
		require.NoError(t, err)
		assert.Empty(t, dups)
	})

	t.Run("re-ingesting the same id is not its own duplicate", func(t *testing.T) {
		dups, err := d.findDuplicates(ctx, stored)
		require.NoError(t, err)
		assert.Empty(t, dups)
	})
}
