package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/finsight/newsintel/ai"
	"github.com/finsight/newsintel/core"
	"github.com/finsight/newsintel/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates article enrichment and persistence.
// It manages a worker pool for concurrent batch ingestion.
type Pipeline struct {
	pool   *ants.Pool
	proc   *enrichmentProcessor
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for batch ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	articles storage.ArticleRepository,
	vectors storage.VectorIndex,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if articles == nil {
		return nil, ErrArticleRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// The processor is built after options so it sees the final logger
	p.proc = newEnrichmentProcessor(articles, vectors, provider, p.logger)

	return p, nil
}

// IngestResult summarizes what the pipeline did with one article.
type IngestResult struct {
	ArticleID               string
	IsDuplicate             bool
	DuplicateIDs            []string // IDs of the stored articles this one duplicates
	EntitiesExtracted       int
	StocksImpacted          int
	SentimentClassification core.SentimentClass
	SignalStrength          float64
}

// IngestArticle runs a single article through the full enrichment chain and
// persists it. Duplicates are detected before enrichment and never stored.
func (p *Pipeline) IngestArticle(ctx context.Context, article *core.Article) (*IngestResult, error) {
	return p.proc.process(ctx, article)
}

// IngestBatch fans articles out over the worker pool. The returned slice is
// aligned with the input; a nil entry means that article failed and the error
// was logged.
func (p *Pipeline) IngestBatch(ctx context.Context, articles []*core.Article) []*IngestResult {
	results := make([]*IngestResult, len(articles))

	var wg sync.WaitGroup
	for i, article := range articles {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			result, err := p.proc.process(ctx, article)
			if err != nil {
				p.logger.Error("article ingestion failed", "index", i, "err", err)
				return
			}
			results[i] = result
		})
		if err != nil {
			wg.Done()
			p.logger.Error("error submitting ingestion task", "index", i, "err", err)
		}
	}
	wg.Wait()

	return results
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
