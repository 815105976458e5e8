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


package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/finsight/newsintel/ai"
	"github.com/tmc/langchaingo/llms"
)

// EntityExtractor implements ai.EntityExtractor using OpenAI-compatible chat APIs.
type EntityExtractor struct {
	client     llms.Model
	maxRetries int
	logger     *slog.Logger
}

// newEntityExtractor is an internal constructor that returns the concrete type.
func newEntityExtractor(config *ai.Config, client llms.Model) *EntityExtractor {
	return &EntityExtractor{
		client:     client,
		maxRetries: config.MaxRetries,
		logger:     slog.Default().With("component", "openai-extractor"),
	}
}

// NewEntityExtractor creates a new entity extractor using the provided configuration.
//
// Returns ai.EntityExtractor interface to enforce abstraction.
func NewEntityExtractor(config *ai.Config) (ai.EntityExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := newAnalystClient(config)
	if err != nil {
		return nil, err
	}
	return newEntityExtractor(config, client), nil
}

// ExtractEntities identifies financial entities in article text using an LLM.
// Ticker symbols are normalized to uppercase.
func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) (*ai.ExtractedEntities, error) {
	var entities ai.ExtractedEntities
	err := completeJSON(ctx, e.client, e.logger, e.maxRetries,
		buildEntityPrompt(), truncateForPrompt(text), &entities)
	if err != nil {
		return nil, err
	}

	for i, c := range entities.Companies {
		entities.Companies[i].Ticker = strings.ToUpper(strings.TrimSpace(c.Ticker))
	}

	e.logger.Debug("extracted entities",
		"companies", len(entities.Companies),
		"sectors", len(entities.Sectors),
		"regulators", len(entities.Regulators))
	return &entities, nil
}
