package storage

import (
	"context"

	"github.com/finsight/newsintel/core"
)

// ArticleRepository provides operations for managing enriched articles.
// Implementations must be thread-safe and support concurrent reads.
type ArticleRepository interface {
	// UpsertArticles inserts or replaces articles by ID.
	// Sets InsertedAt on first write and refreshes UpdatedAt on every write.
	UpsertArticles(ctx context.Context, articles ...*core.Article) error

	// GetArticle retrieves a single article by ID.
	// Returns ErrNotFound if the article doesn't exist.
	GetArticle(ctx context.Context, id string) (*core.Article, error)

	// GetArticles retrieves multiple articles by their IDs.
	// Returns only the articles that exist; order is not guaranteed, callers
	// must re-associate results by ID.
	GetArticles(ctx context.Context, ids ...string) ([]*core.Article, error)

	// DeleteArticles removes articles and their index entries by ID.
	// Returns ErrNotFound if any article doesn't exist.
	DeleteArticles(ctx context.Context, ids ...string) error

	// Count returns the number of articles matching the filter. The empty
	// filter counts the whole corpus.
	Count(ctx context.Context, filter Filter) (int, error)

	// FindIDs returns the IDs of articles matching the filter, sorted.
	// Only IDs are materialized, never full records.
	FindIDs(ctx context.Context, filter Filter) ([]string, error)

	// FindIDsMatching returns the subset of ids whose articles match the
	// filter, as a set.
	FindIDsMatching(ctx context.Context, filter Filter, ids []string) (map[string]struct{}, error)

	// Close closes the repository and releases resources.
	Close() error
}

// VectorCandidate is a nearest-neighbor match from the vector index.
// Similarity is 1 - cosine distance, in [0,1].
type VectorCandidate struct {
	ArticleID  string
	Similarity float64
	Distance   float64
}

// VectorIndex provides nearest-neighbor search over article embeddings.
// Implementations must be thread-safe and support concurrent reads.
type VectorIndex interface {
	// Search performs an unrestricted nearest-neighbor search.
	// Results are ordered by similarity, highest first.
	Search(ctx context.Context, vector []float32, topK int) ([]VectorCandidate, error)

	// SearchRestricted searches only within the given article ID subset.
	SearchRestricted(ctx context.Context, vector []float32, ids []string, topK int) ([]VectorCandidate, error)

	// Count returns the number of indexed embeddings.
	Count(ctx context.Context) (int, error)

	// Close closes the index and releases resources.
	Close() error
}
