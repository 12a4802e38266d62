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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redfinlabs/annotate/ai"
)

const pingTimeout = 5 * time.Second

// Provider implements ai.Provider using OpenAI-compatible services. It
// manages the tagger and classifier completer instances.
type Provider struct {
	config     *ai.Config
	tagger     *Completer
	classifier *Completer
	httpClient *http.Client
	logger     *slog.Logger
}

// NewProvider creates a provider with completers for the configured tag
// and category models. The config is validated and normalized before use.
func NewProvider(config *ai.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tagger, err := newCompleter(config.Host, config.TagModel)
	if err != nil {
		return nil, err
	}

	classifier, err := newCompleter(config.Host, config.CategoryModel)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:     config,
		tagger:     tagger,
		classifier: classifier,
		httpClient: &http.Client{Timeout: pingTimeout},
		logger:     slog.Default().With("component", "openai-provider"),
	}, nil
}

// Tagger returns the tag generation completer.
func (p *Provider) Tagger() ai.Completer {
	return p.tagger
}

// Classifier returns the classification completer.
func (p *Provider) Classifier() ai.Completer {
	return p.classifier
}

// Ping probes the host's model listing endpoint once. Any HTTP response
// counts as reachable; only transport failures are errors.
func (p *Provider) Ping(ctx context.Context) error {
	url := p.config.Host + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model host %s unreachable: %w", p.config.Host, err)
	}
	resp.Body.Close()

	p.logger.Debug("model host reachable", "host", p.config.Host, "status", resp.StatusCode)
	return nil
}

// Wait polls Ping until the host answers or the deadline passes. Used at
// startup when the model server may still be loading.
func (p *Provider) Wait(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := p.Ping(ctx)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

// Close releases resources held by the provider. Currently a no-op as the
// underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
