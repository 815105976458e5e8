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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// AnalystHost is the base URL for the chat completion API used by the
	// router, extractor, and analyzer services.
	AnalystHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// AnalystModel is the model identifier for classification and analysis.
	// Example: "llama-3.3-70b-versatile", "gpt-4o-mini"
	AnalystModel string

	// APIKey authenticates requests against hosted providers.
	// Local OpenAI-compatible servers usually accept any value.
	APIKey string

	// MaxRetries is the number of attempts per model call before giving up.
	// Default: 3
	MaxRetries int

	// MaxImpactedStocks caps the number of stocks an impact analysis may
	// return per article. Default: 15
	MaxImpactedStocks int

	// MinImpactScore is the minimum impact score (0-100) a cross-sector
	// effect must carry to be kept. Default: 25
	MinImpactScore float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithAnalystHost sets the chat completion service host URL.
func WithAnalystHost(host string) ConfigOption {
	return func(c *Config) {
		c.AnalystHost = host
	}
}

// WithHost sets both embedding and analyst hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.AnalystHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAnalystModel sets the analysis model identifier.
func WithAnalystModel(model string) ConfigOption {
	return func(c *Config) {
		c.AnalystModel = model
	}
}

// WithAPIKey sets the API key for hosted providers.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithMaxRetries sets the number of attempts per model call.
func WithMaxRetries(n int) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithMaxImpactedStocks caps the stocks returned per impact analysis.
func WithMaxImpactedStocks(n int) ConfigOption {
	return func(c *Config) {
		c.MaxImpactedStocks = n
	}
}

// WithMinImpactScore sets the cross-sector impact score floor.
func WithMinImpactScore(score float64) ConfigOption {
	return func(c *Config) {
		c.MinImpactScore = score
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and analyst services use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:     defaultHost,
		AnalystHost:       defaultHost,
		EmbeddingModel:    "embeddinggemma",
		AnalystModel:      "qwen2.5:3b",
		APIKey:            "unused",
		MaxRetries:        3,
		MaxImpactedStocks: 15,
		MinImpactScore:    25,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("text-embedding-3-small"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.AnalystHost != "" && !strings.HasSuffix(c.AnalystHost, "/v1") {
		c.AnalystHost = strings.TrimSuffix(c.AnalystHost, "/")
		c.AnalystHost = c.AnalystHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.AnalystHost == "" {
		return errors.New("ai config: AnalystHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.AnalystModel == "" {
		return errors.New("ai config: AnalystModel is required")
	}
	if c.MaxRetries < 1 {
		return errors.New("ai config: MaxRetries must be at least 1")
	}
	if c.MaxImpactedStocks < 1 {
		return errors.New("ai config: MaxImpactedStocks must be at least 1")
	}
	if c.MinImpactScore < 0 || c.MinImpactScore > 100 {
		return errors.New("ai config: MinImpactScore must be between 0 and 100")
	}
	return nil
}
