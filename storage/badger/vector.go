package badger

import (
	"context"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
)

// VectorIndex implements storage.VectorIndex with a brute-force cosine scan
// over stored article embeddings. Adequate for corpora in the tens of
// thousands; swap for an ANN index beyond that.
type VectorIndex struct {
	backend *Backend
}

var _ storage.VectorIndex = (*VectorIndex)(nil)

// NewVectorIndex creates a new VectorIndex over the backend.
func NewVectorIndex(backend *Backend) (*VectorIndex, error) {
	return &VectorIndex{
		backend: backend,
	}, nil
}

// Close releases resources. VectorIndex has no resources to release.
func (v *VectorIndex) Close() error {
	return nil
}

// Search performs an unrestricted nearest-neighbor search.
func (v *VectorIndex) Search(ctx context.Context, vector []float32, topK int) ([]storage.VectorCandidate, error) {
	var candidates []storage.VectorCandidate

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(articleRecordPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var article *core.Article
			err := iter.Item().Value(func(val []byte) error {
				var err error
				article, err = storage.UnmarshalArticle(val)
				return err
			})
			if err != nil {
				return err
			}
			if article == nil || len(article.Vector) == 0 {
				continue
			}
			candidates = append(candidates, scoreCandidate(article, vector))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return rankCandidates(candidates, topK), nil
}

// SearchRestricted searches only within the given article ID subset.
// IDs without a stored record or embedding are skipped.
func (v *VectorIndex) SearchRestricted(ctx context.Context, vector []float32, ids []string, topK int) ([]storage.VectorCandidate, error) {
	var candidates []storage.VectorCandidate

	err := v.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			article, err := readArticle(tx, makeArticleKey(id))
			if err != nil {
				return err
			}
			if article == nil || len(article.Vector) == 0 {
				continue
			}
			candidates = append(candidates, scoreCandidate(article, vector))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return rankCandidates(candidates, topK), nil
}

// Count returns the number of stored articles carrying an embedding.
func (v *VectorIndex) Count(ctx context.Context) (int, error) {
	count := 0
	err := v.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(articleRecordPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var hasVector bool
			err := iter.Item().Value(func(val []byte) error {
				article, err := storage.UnmarshalArticle(val)
				if err != nil {
					return err
				}
				hasVector = article != nil && len(article.Vector) > 0
				return nil
			})
			if err != nil {
				return err
			}
			if hasVector {
				count++
			}
		}
		return nil
	}, false)
	return count, err
}

func scoreCandidate(article *core.Article, query []float32) storage.VectorCandidate {
	similarity := cosineSimilarity(query, article.Vector)
	return storage.VectorCandidate{
		ArticleID:  article.Id,
		Similarity: similarity,
		Distance:   1 - similarity,
	}
}

// rankCandidates sorts by similarity descending and truncates to topK.
func rankCandidates(candidates []storage.VectorCandidate, topK int) []storage.VectorCandidate {
	slices.SortFunc(candidates, func(a, b storage.VectorCandidate) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})
	if topK >= 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

// cosineSimilarity computes cosine similarity clamped to [0,1].
// Embeddings from the providers are not guaranteed normalized, so both
// norms are computed explicitly.
func cosineSimilarity(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if similarity < 0 {
		return 0
	}
	if similarity > 1 {
		return 1
	}
	return similarity
}
