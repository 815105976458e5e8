// Package ingestion provides the enrichment pipeline for incoming articles.
//
// The Pipeline type runs each article through a fixed stage chain: embedding,
// duplicate detection, entity extraction, stock impact mapping, sentiment
// analysis, supply-chain analysis, and finally persistence. A duplicate stops
// the chain early and the article is never stored.
//
// Single articles are processed synchronously; batches fan out over a worker
// pool. A failed article in a batch is logged and skipped, it never fails the
// batch.
package ingestion
