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
	"errors"
	"log/slog"

	"github.com/redfinlabs/annotate/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyResponse is returned when the model answers with no choices.
var ErrEmptyResponse = errors.New("model returned no choices")

// Completer implements ai.Completer using an OpenAI-compatible chat API.
type Completer struct {
	client llms.Model
	model  string
	logger *slog.Logger
}

// newCompleter is the internal constructor returning the concrete type.
// Used by Provider to manage both instances.
func newCompleter(host, model string) (*Completer, error) {
	// "none" satisfies local OpenAI-compatible services that don't require
	// authentication.
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client: client,
		model:  model,
		logger: slog.Default().With("component", "openai-completer", "model", model),
	}, nil
}

// NewCompleter creates a completer for a single model on the given host.
//
// Returns the ai.Completer interface to enforce abstraction.
func NewCompleter(host, model string) (ai.Completer, error) {
	return newCompleter(host, model)
}

// Complete sends one prompt as a single human message and returns the raw
// response text. The call blocks for as long as the model takes; deadline
// policy belongs to the caller's context.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Debug("completion failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrEmptyResponse
	}
	return response.Choices[0].Content, nil
}
