// Package query implements adaptive query processing over enriched articles.
//
// A query flows through four stages: an LLM classifier picks a retrieval
// strategy and extracts search terms (Classifier), a pure compiler turns the
// routing into a metadata filter (CompileFilter), the processor selects an
// execution branch from the filtered count and retrieves candidates
// (Processor), and a reranker blends semantic similarity with metadata match
// quality (Rerank).
//
// The execution branch is chosen by how many articles the filter matches:
// zero falls back to unrestricted vector search, small sets search within
// the enumerated IDs, and sets broader than the threshold search first and
// validate after. The branch taken is reported in StrategyMetadata for
// observability.
package query
