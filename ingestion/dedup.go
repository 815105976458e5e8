package ingestion

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
)

const (
	// dedupCandidatePool is how many nearest neighbors are considered as
	// potential duplicates.
	dedupCandidatePool = 10

	// dedupMinSimilarity is the embedding similarity below which a candidate
	// cannot be a duplicate.
	dedupMinSimilarity = 0.50

	// dedupMinOverlap is the token overlap above which a semantically close
	// candidate is confirmed as a duplicate.
	dedupMinOverlap = 0.70
)

// deduper detects near-duplicate articles in two passes: a cheap vector
// search over the stored corpus, then token-overlap verification on the
// survivors. Both thresholds must pass for an article to count as a
// duplicate.
type deduper struct {
	articles storage.ArticleRepository
	vectors  storage.VectorIndex
	logger   *slog.Logger
}

func newDeduper(articles storage.ArticleRepository, vectors storage.VectorIndex, logger *slog.Logger) *deduper {
	if logger == nil {
		logger = slog.Default()
	}
	return &deduper{
		articles: articles,
		vectors:  vectors,
		logger:   logger.With("processor", "dedup"),
	}
}

// findDuplicates returns the IDs of stored articles the given article
// duplicates, sorted. The article must already carry its embedding.
func (d *deduper) findDuplicates(ctx context.Context, article *core.Article) ([]string, error) {
	candidates, err := d.vectors.Search(ctx, article.Vector, dedupCandidatePool)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.ArticleID == article.Id || c.Similarity < dedupMinSimilarity {
			continue
		}
		ids = append(ids, c.ArticleID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	stored, err := d.articles.GetArticles(ctx, ids...)
	if err != nil {
		return nil, err
	}

	tokens := tokenSet(article.Title + " " + article.Content)

	var duplicates []string
	for _, candidate := range stored {
		overlap := tokenOverlap(tokens, tokenSet(candidate.Title+" "+candidate.Content))
		if overlap >= dedupMinOverlap {
			d.logger.Debug("duplicate confirmed",
				"id", article.Id,
				"duplicate_of", candidate.Id,
				"overlap", overlap)
			duplicates = append(duplicates, candidate.Id)
		}
	}

	slices.Sort(duplicates)
	return duplicates, nil
}

// tokenSet lowercases text and splits it into a set of alphanumeric tokens.
func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]struct{}, len(fields))
	for _, tok := range fields {
		set[tok] = struct{}{}
	}
	return set
}

// tokenOverlap is the Jaccard similarity of two token sets.
func tokenOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
