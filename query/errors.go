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

import "errors"

var (
	// ErrArticleRepositoryRequired is returned when an article repository is not provided.
	ErrArticleRepositoryRequired = errors.New("article repository required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
