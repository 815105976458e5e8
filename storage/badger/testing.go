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


package badger

import "github.com/finsight/newsintel/storage"

// NewMemoryStores creates an in-memory article repository and vector index
// for testing. Returns articles, vectors, backend, and error.
// Caller must close both stores and the backend when done.
func NewMemoryStores() (storage.ArticleRepository, storage.VectorIndex, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	articles, err := NewArticleRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	vectors, err := NewVectorIndex(backend)
	if err != nil {
		articles.Close()
		backend.Close()
		return nil, nil, nil, err
	}

	return articles, vectors, backend, nil
}
