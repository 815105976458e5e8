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


// Package storage provides the storage abstraction layer for newsintel.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, along with the metadata Filter type
// both layers share. Different backends (BadgerDB, in-memory, etc.) can be
// used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return these interfaces, never
// their concrete types:
//
//	articles, err := badger.NewArticleRepository(backend) // storage.ArticleRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute implementations without modification.
//
// # Architecture
//
//   - ArticleRepository: CRUD plus filtered counting and ID enumeration
//     over enriched articles
//   - VectorIndex: nearest-neighbor search over article embeddings
//   - Filter: conjunction of field clauses compiled by the query layer and
//     evaluated by the repository
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
