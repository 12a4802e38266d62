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


package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/redfinlabs/annotate/ai"
	"github.com/redfinlabs/annotate/cache"
	"github.com/redfinlabs/annotate/core"
)

// Fallback is the category assigned when the model call fails or answers
// with nothing usable.
const Fallback = "Uncategorized"

// Labels is the fixed six-entry taxonomy offered to the model. The
// classifier does not enforce membership: the model's trimmed answer is
// used verbatim, so a well-behaved model stays inside this set.
var Labels = []string{
	"Research",
	"Technology & Product",
	"Market & Corporate",
	"Policy & Regulation",
	"Society & Culture",
	"Incidents & Safety",
}

// ErrCompleterRequired is returned when no completer is provided.
var ErrCompleterRequired = errors.New("completer required")

// Classifier assigns one category label per record.
type Classifier struct {
	completer ai.Completer
	store     *cache.Cache
	logger    *slog.Logger

	failures  atomic.Int64
	cacheHits atomic.Int64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCache attaches an annotation cache consulted before model calls.
func WithCache(store *cache.Cache) Option {
	return func(c *Classifier) {
		c.store = store
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClassifier creates a classifier over the given completer.
func NewClassifier(completer ai.Completer, opts ...Option) (*Classifier, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	c := &Classifier{
		completer: completer,
		logger:    slog.Default().With("component", "category"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify returns the category for one record: one model call, trimmed
// response used verbatim, Fallback on failure. It never returns an error.
func (c *Classifier) Classify(ctx context.Context, rec core.Record) string {
	id := rec.ContentID()
	if c.store != nil {
		if cached, err := c.store.GetString(cache.KindCategory, id); err == nil {
			c.cacheHits.Add(1)
			return cached
		}
	}

	prompt := buildPrompt(rec.Title(), rec.Description(), rec.Strings(core.FieldKeywords))

	response, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		c.failures.Add(1)
		c.logger.Error("classification failed", "title", rec.Title(), "err", err)
		return Fallback
	}

	label := strings.TrimSpace(response)
	if label == "" {
		c.failures.Add(1)
		c.logger.Error("classification returned empty response", "title", rec.Title())
		return Fallback
	}

	if c.store != nil {
		if err := c.store.PutString(cache.KindCategory, id, label); err != nil {
			c.logger.Warn("caching category failed", "err", err)
		}
	}
	return label
}

// Failures returns the number of records that fell back to Uncategorized.
func (c *Classifier) Failures() int64 {
	return c.failures.Load()
}

// CacheHits returns the number of records answered from the cache.
func (c *Classifier) CacheHits() int64 {
	return c.cacheHits.Load()
}
