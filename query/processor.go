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
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
)

const (
	// defaultMaxFilterIDs is the strategy selection threshold: filters
	// matching more articles than this are too broad to enumerate, so the
	// search runs vector-first instead of filter-first.
	defaultMaxFilterIDs = 1000

	defaultTopK = 10
	maxTopK     = 50
)

// Processor executes queries with adaptive strategy selection.
//
// Small filtered sets (at most maxFilterIDs) run filter-first: enumerate
// matching IDs, then vector search within them. Large sets run vector-first:
// unrestricted vector search, then validate candidates against the filter.
// An empty filtered set falls back to unrestricted vector search.
type Processor struct {
	articles     storage.ArticleRepository
	vectors      storage.VectorIndex
	embedder     ai.Embedder
	classifier   *Classifier
	maxFilterIDs int
	logger       *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithMaxFilterIDs overrides the strategy selection threshold.
func WithMaxFilterIDs(n int) Option {
	return func(p *Processor) error {
		if n < 1 {
			return fmt.Errorf("max filter ids must be at least 1, got %d", n)
		}
		p.maxFilterIDs = n
		return nil
	}
}

// NewProcessor creates a query processor.
func NewProcessor(
	articles storage.ArticleRepository,
	vectors storage.VectorIndex,
	provider ai.Provider,
	opts ...Option,
) (*Processor, error) {
	if articles == nil {
		return nil, ErrArticleRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Processor{
		articles:     articles,
		vectors:      vectors,
		embedder:     provider.Embedder(),
		classifier:   NewClassifier(provider.QueryRouter(), nil),
		maxFilterIDs: defaultMaxFilterIDs,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.classifier.logger = p.logger

	return p, nil
}

// Result is the outcome of one query execution. Routing carries the strategy
// metadata describing which branch ran.
type Result struct {
	Articles []core.ScoredArticle
	Routing  *core.QueryRouting
}

// Execute processes a query and returns up to topK reranked articles.
// A non-empty sentimentOverride forces that sentiment onto the compiled
// filter regardless of what the router decided.
func (p *Processor) Execute(ctx context.Context, query string, topK int, sentimentOverride string) (*Result, error) {
	return p.ExecuteWithMonitor(ctx, query, topK, sentimentOverride, nil)
}

// ExecuteWithMonitor processes a query with observation hooks.
// The monitor receives callbacks at each stage of execution.
func (p *Processor) ExecuteWithMonitor(ctx context.Context, query string, topK int, sentimentOverride string, monitor Monitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	topK = clampTopK(topK)

	var override core.SentimentClass
	if sentimentOverride != "" {
		parsed, err := core.ParseSentimentClass(sentimentOverride)
		if err != nil {
			return nil, err
		}
		override = parsed
	}

	// 1. Route the query
	routing, err := p.classifier.Classify(ctx, query)
	if err != nil {
		return nil, err
	}
	if override != "" {
		routing.SentimentFilter = override
	}
	monitor.AfterRouting(routing)

	// 2. Compile the metadata filter; overrides always win
	filter := CompileFilter(routing)
	if override != "" {
		filter = ApplySentimentOverride(filter, override)
	}
	monitor.AfterFilterCompile(filter)

	// 3. Count potential matches
	filteredCount, err := p.articles.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	monitor.AfterCount(filteredCount)

	// When the combined filter excludes everything but the caller insisted
	// on a sentiment, relax to sentiment-only rather than failing outright
	if filteredCount == 0 && override != "" {
		filter = ApplySentimentOverride(storage.Filter{}, override)
		filteredCount, err = p.articles.Count(ctx, filter)
		if err != nil {
			return nil, err
		}
		monitor.FilterRelaxed(filter, filteredCount)
	}

	// 4. Embed the refined query
	embedding, err := p.embedText(ctx, routing.RefinedQuery)
	if err != nil {
		return nil, err
	}

	// 5. Retrieve candidates through the branch the count selects
	var (
		strategy   core.ExecutionStrategy
		candidates []storage.VectorCandidate
		fallback   bool
	)
	switch {
	case filteredCount == 0:
		strategy = core.StrategyVectorFallback
		fallback = true
		candidates, err = p.searchFallback(ctx, embedding, topK, override)

	case filteredCount <= p.maxFilterIDs:
		strategy = core.StrategyFilterFirst
		candidates, err = p.searchFilterFirst(ctx, embedding, filter, topK)

	default:
		strategy = core.StrategyVectorFirst
		candidates, err = p.searchVectorFirst(ctx, embedding, filter, topK)
	}
	if err != nil {
		return nil, err
	}
	monitor.AfterVectorSearch(strategy, candidates)

	p.logger.Debug("selected execution strategy",
		"strategy", strategy,
		"filtered_count", filteredCount,
		"candidates", len(candidates))

	// 6. Hydrate full articles and attach similarity scores
	scored, err := p.hydrate(ctx, candidates, monitor)
	if err != nil {
		return nil, err
	}

	// 7. Rerank and truncate
	scored = Rerank(scored, routing)
	if len(scored) > topK {
		scored = scored[:topK]
	}
	monitor.Finish(scored)

	// FilterApplied reports whether the compiled filter had clauses,
	// independent of which branch ran; FallbackTriggered carries the
	// zero-count signal.
	routing.StrategyMetadata = &core.StrategyMetadata{
		StrategyUsed:      strategy,
		FilteredCount:     filteredCount,
		VectorCandidates:  len(candidates),
		FilterApplied:     !filter.Empty(),
		FallbackTriggered: fallback,
		Threshold:         p.maxFilterIDs,
	}

	return &Result{
		Articles: scored,
		Routing:  routing,
	}, nil
}

// searchFallback runs an unrestricted vector search. A sentiment override
// still applies as a post-filter on the candidates.
func (p *Processor) searchFallback(ctx context.Context, embedding []float32, topK int, override core.SentimentClass) ([]storage.VectorCandidate, error) {
	candidates, err := p.vectors.Search(ctx, embedding, topK*2)
	if err != nil {
		return nil, err
	}

	if override == "" {
		return candidates, nil
	}

	ids := candidateIDs(candidates)
	valid, err := p.articles.FindIDsMatching(ctx, ApplySentimentOverride(storage.Filter{}, override), ids)
	if err != nil {
		return nil, err
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if _, ok := valid[c.ArticleID]; ok {
			kept = append(kept, c)
		}
	}
	if len(kept) > topK*2 {
		kept = kept[:topK*2]
	}
	return kept, nil
}

// searchFilterFirst enumerates the filtered IDs, then vector searches
// within them. Extra candidates are kept for the reranker to choose from.
func (p *Processor) searchFilterFirst(ctx context.Context, embedding []float32, filter storage.Filter, topK int) ([]storage.VectorCandidate, error) {
	ids, err := p.articles.FindIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	return p.vectors.SearchRestricted(ctx, embedding, ids, topK*2)
}

// searchVectorFirst runs a wide unrestricted search and validates the
// candidates against the filter, preserving similarity order.
func (p *Processor) searchVectorFirst(ctx context.Context, embedding []float32, filter storage.Filter, topK int) ([]storage.VectorCandidate, error) {
	candidates, err := p.vectors.Search(ctx, embedding, topK*5)
	if err != nil {
		return nil, err
	}

	valid, err := p.articles.FindIDsMatching(ctx, filter, candidateIDs(candidates))
	if err != nil {
		return nil, err
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if _, ok := valid[c.ArticleID]; ok {
			kept = append(kept, c)
		}
	}
	if len(kept) > topK*2 {
		kept = kept[:topK*2]
	}
	return kept, nil
}

// hydrate fetches full articles for the candidates and re-associates
// similarity scores by ID. The repository doesn't guarantee order and skips
// missing records; unknown IDs score 0.0.
func (p *Processor) hydrate(ctx context.Context, candidates []storage.VectorCandidate, monitor Monitor) ([]core.ScoredArticle, error) {
	if len(candidates) == 0 {
		return []core.ScoredArticle{}, nil
	}

	articles, err := p.articles.GetArticles(ctx, candidateIDs(candidates)...)
	if err != nil {
		return nil, err
	}
	monitor.AfterHydration(articles)

	scores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		scores[c.ArticleID] = c.Similarity
	}

	scored := make([]core.ScoredArticle, 0, len(articles))
	for _, article := range articles {
		scored = append(scored, core.ScoredArticle{
			Article:        article,
			RelevanceScore: scores[article.Id],
		})
	}
	return scored, nil
}

func (p *Processor) embedText(ctx context.Context, text string) ([]float32, error) {
	embedding, err := p.embedder.EmbedText(ctx, text)
	if err != nil {
		p.logger.Error("query embedding failed", "err", err)
		if errors.Is(err, core.ErrService) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: query embedding failed: %w", core.ErrService, err)
	}
	return embedding, nil
}

func candidateIDs(candidates []storage.VectorCandidate) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ArticleID
	}
	return ids
}

func clampTopK(topK int) int {
	if topK <= 0 {
		return defaultTopK
	}
	if topK > maxTopK {
		return maxTopK
	}
	return topK
}
