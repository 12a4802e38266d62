// Copyright 2025 Redfin Labs
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

// Config holds configuration for model service providers.
type Config struct {
	// Host is the base URL of the OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local Ollama server.
	Host string

	// TagModel is the model identifier used for tag generation.
	// Example: "qwen2.5:3b-instruct", "gpt-4o-mini"
	TagModel string

	// CategoryModel is the model identifier used for classification.
	// Example: "gemma3:4b"
	CategoryModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the model service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithTagModel sets the tag generation model identifier.
func WithTagModel(model string) ConfigOption {
	return func(c *Config) {
		c.TagModel = model
	}
}

// WithCategoryModel sets the classification model identifier.
func WithCategoryModel(model string) ConfigOption {
	return func(c *Config) {
		c.CategoryModel = model
	}
}

// DefaultConfig returns a Config with defaults for a local Ollama server.
func DefaultConfig() *Config {
	return &Config{
		Host:          "http://localhost:11434/v1",
		TagModel:      "qwen2.5:3b-instruct",
		CategoryModel: "gemma3:4b",
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks the configuration and normalizes the host URL.
func (c *Config) Validate() error {
	c.Host = strings.TrimRight(strings.TrimSpace(c.Host), "/")
	if c.Host == "" {
		return errors.New("model host required")
	}
	if !strings.HasPrefix(c.Host, "http://") && !strings.HasPrefix(c.Host, "https://") {
		return errors.New("model host must be an http(s) URL")
	}
	if strings.TrimSpace(c.TagModel) == "" {
		return errors.New("tag model required")
	}
	if strings.TrimSpace(c.CategoryModel) == "" {
		return errors.New("category model required")
	}
	return nil
}
