package ingestion

import "errors"

var (
	// ErrArticleRepositoryRequired is returned when an article repository is not provided.
	ErrArticleRepositoryRequired = errors.New("article repository required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
