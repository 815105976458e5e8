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


package core

import "errors"

// Error taxonomy roots. ErrValidation marks caller-fault input that must not
// be retried; ErrService marks an upstream capability (LLM) that failed after
// its internal retry budget and may be retried by the caller.
var (
	ErrValidation = errors.New("validation failed")
	ErrService    = errors.New("service failed")
)

// Domain validation errors
var (
	// ErrEmptyQuery indicates an empty query string after trimming.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidSentimentFilter indicates a sentiment value outside
	// Bullish/Bearish/Neutral.
	ErrInvalidSentimentFilter = errors.New("invalid sentiment filter")

	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrEmptyArticleID indicates the Id field is empty.
	ErrEmptyArticleID = errors.New("article id cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("article title cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("article content cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrInvalidRouting indicates a QueryRouting failed validation.
	ErrInvalidRouting = errors.New("invalid query routing")

	// ErrEmptyRefinedQuery indicates the refined query is too short.
	ErrEmptyRefinedQuery = errors.New("refined query must be at least 3 characters")

	// ErrInvalidConfidence indicates a confidence value outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
)
