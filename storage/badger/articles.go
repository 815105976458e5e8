package badger

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
)

// ArticleRepository implements storage.ArticleRepository for BadgerDB.
type ArticleRepository struct {
	backend *Backend
}

var _ storage.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(backend *Backend) (*ArticleRepository, error) {
	return &ArticleRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ArticleRepository has no resources to release.
func (r *ArticleRepository) Close() error {
	return nil
}

// UpsertArticles inserts or replaces articles by ID.
func (r *ArticleRepository) UpsertArticles(ctx context.Context, articles ...*core.Article) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, article := range articles {
			if err := core.ValidateArticle(article); err != nil {
				return err
			}

			key := makeArticleKey(article.Id)

			// Read old record to detect index changes
			old, err := readArticle(tx, key)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if old != nil {
				article.InsertedAt = old.InsertedAt

				// Drop stale index entries before writing the new ones
				for _, indexKey := range indexKeys(old) {
					if err := tx.Delete(indexKey); err != nil {
						return err
					}
				}
			} else {
				article.InsertedAt = now
			}
			article.UpdatedAt = now

			// Store primary record
			if err := tx.Set(key, storage.MarshalArticle(article)); err != nil {
				return err
			}

			// Store index entries
			for _, indexKey := range indexKeys(article) {
				if err := tx.Set(indexKey, nil); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// GetArticle retrieves a single article by ID.
func (r *ArticleRepository) GetArticle(ctx context.Context, id string) (*core.Article, error) {
	var result *core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readArticle(tx, makeArticleKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetArticles retrieves multiple articles by their IDs.
// Missing IDs are skipped; order is not guaranteed.
func (r *ArticleRepository) GetArticles(ctx context.Context, ids ...string) ([]*core.Article, error) {
	var result []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			article, err := readArticle(tx, makeArticleKey(id))
			if err != nil {
				return err
			}
			if article != nil {
				result = append(result, article)
			}
		}
		return nil
	}, false)
	return result, err
}

// DeleteArticles removes articles and their index entries by ID.
func (r *ArticleRepository) DeleteArticles(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeArticleKey(id)

			// Read article to get metadata for index cleanup
			article, err := readArticle(tx, key)
			if err != nil {
				return err
			}
			if article == nil {
				return storage.ErrNotFound
			}

			for _, indexKey := range indexKeys(article) {
				if err := tx.Delete(indexKey); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of articles matching the filter.
// The empty filter counts the whole corpus.
func (r *ArticleRepository) Count(ctx context.Context, filter storage.Filter) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if filter.Empty() {
			var err error
			count, err = countRecords(tx)
			return err
		}

		matched, err := collectMatchingIDs(tx, filter)
		if err != nil {
			return err
		}
		count = len(matched)
		return nil
	}, false)
	return count, err
}

// FindIDs returns the IDs of articles matching the filter, sorted.
// Only index keys are scanned; full records are never materialized.
func (r *ArticleRepository) FindIDs(ctx context.Context, filter storage.Filter) ([]string, error) {
	var ids []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if filter.Empty() {
			var err error
			ids, err = allRecordIDs(tx)
			return err
		}

		matched, err := collectMatchingIDs(tx, filter)
		if err != nil {
			return err
		}
		ids = make([]string, 0, len(matched))
		for id := range matched {
			ids = append(ids, id)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

// FindIDsMatching returns the subset of ids whose articles match the filter.
func (r *ArticleRepository) FindIDsMatching(ctx context.Context, filter storage.Filter, ids []string) (map[string]struct{}, error) {
	result := make(map[string]struct{}, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if filter.Empty() {
			// No clauses to check, keep every ID that exists
			for _, id := range ids {
				_, err := tx.Get(makeArticleKey(id))
				if err == badger.ErrKeyNotFound {
					continue
				}
				if err != nil {
					return err
				}
				result[id] = struct{}{}
			}
			return nil
		}

		matched, err := collectMatchingIDs(tx, filter)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, ok := matched[id]; ok {
				result[id] = struct{}{}
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Helper functions

// indexKeys builds every secondary index key for an article.
func indexKeys(article *core.Article) [][]byte {
	var keys [][]byte
	add := func(prefix string, values []string) {
		for _, value := range values {
			if value == "" {
				continue
			}
			keys = append(keys, makeIndexKey(prefix, value, article.Id))
		}
	}

	symbols := make([]string, 0, len(article.ImpactedStocks))
	for _, impact := range article.ImpactedStocks {
		symbols = append(symbols, impact.Symbol)
	}
	add(symbolIndexPrefix, symbols)
	add(companyIndexPrefix, article.Entities.CompanyNames())
	add(sectorIndexPrefix, article.Entities.Sectors)
	add(regulatorIndexPrefix, article.Entities.RegulatorNames())
	if article.Sentiment != nil {
		add(sentimentIndexPrefix, []string{string(article.Sentiment.Classification)})
	}
	return keys
}

// collectMatchingIDs intersects per-clause ID sets from the secondary indexes.
func collectMatchingIDs(tx *badger.Txn, filter storage.Filter) (map[string]struct{}, error) {
	var matched map[string]struct{}
	for _, clause := range filter.Clauses {
		ids, err := scanClause(tx, clause)
		if err != nil {
			return nil, err
		}
		if matched == nil {
			matched = ids
			continue
		}
		for id := range matched {
			if _, ok := ids[id]; !ok {
				delete(matched, id)
			}
		}
		if len(matched) == 0 {
			break
		}
	}
	if matched == nil {
		matched = map[string]struct{}{}
	}
	return matched, nil
}

// scanClause unions index scans over the clause's values.
func scanClause(tx *badger.Txn, clause storage.Clause) (map[string]struct{}, error) {
	prefix, ok := indexPrefixFor(clause.Field)
	if !ok {
		return map[string]struct{}{}, nil
	}

	ids := make(map[string]struct{})
	for _, value := range clause.Values {
		keyPrefix := makePartialIndexKey(prefix, value)

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = keyPrefix
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, keyPrefix) {
				break
			}
			if id := articleIDFromIndexKey(key); id != "" {
				ids[id] = struct{}{}
			}
		}
		iter.Close()
	}
	return ids, nil
}

// countRecords counts all primary article records.
func countRecords(tx *badger.Txn) (int, error) {
	prefix := []byte(articleRecordPrefix + ":")
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	count := 0
	for iter.Rewind(); iter.Valid(); iter.Next() {
		count++
	}
	return count, nil
}

// allRecordIDs returns every stored article ID.
func allRecordIDs(tx *badger.Txn) ([]string, error) {
	prefix := []byte(articleRecordPrefix + ":")
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []string
	for iter.Rewind(); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		ids = append(ids, string(key[len(prefix):]))
	}
	return ids, nil
}

// readArticle reads an article from the transaction.
// Returns nil without error when the key doesn't exist.
func readArticle(tx *badger.Txn, key []byte) (*core.Article, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var article *core.Article
	err = item.Value(func(val []byte) error {
		var err error
		article, err = storage.UnmarshalArticle(val)
		return err
	})
	return article, err
}
