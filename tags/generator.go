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


package tags

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/redfinlabs/annotate/ai"
	"github.com/redfinlabs/annotate/cache"
	"github.com/redfinlabs/annotate/core"
	"github.com/redfinlabs/annotate/vocab"
)

const (
	// DefaultBatchSize is the number of records one worker processes
	// sequentially per unit of work.
	DefaultBatchSize = 5

	// DefaultWorkers is the width of the worker pool, which is also the
	// ceiling on concurrent model calls during tagging.
	DefaultWorkers = 2
)

// ErrCompleterRequired is returned when no completer is provided.
var ErrCompleterRequired = errors.New("completer required")

// Generator produces vocabulary-conformant tag lists for records.
type Generator struct {
	completer ai.Completer
	vocab     vocab.Vocabulary
	batchSize int
	workers   int
	store     *cache.Cache
	logger    *slog.Logger

	failures  atomic.Int64
	cacheHits atomic.Int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithBatchSize sets the batch size for work distribution.
func WithBatchSize(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.batchSize = size
		}
	}
}

// WithWorkers sets the worker pool width.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithCache attaches an annotation cache consulted before model calls.
func WithCache(store *cache.Cache) Option {
	return func(g *Generator) {
		g.store = store
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a tag generator over the given completer and
// vocabulary.
func NewGenerator(completer ai.Completer, v vocab.Vocabulary, opts ...Option) (*Generator, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if v == nil {
		v = vocab.Default()
	}

	g := &Generator{
		completer: completer,
		vocab:     v,
		batchSize: DefaultBatchSize,
		workers:   DefaultWorkers,
		logger:    slog.Default().With("component", "tags"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// TagRecord produces the final tag list for one record: one model call,
// comma-split, normalized against the vocabulary, deduplicated first-seen.
// Model failure degrades to an empty list; it never returns an error.
func (g *Generator) TagRecord(ctx context.Context, rec core.Record) []string {
	id := rec.ContentID()
	if g.store != nil {
		if cached, err := g.store.GetStrings(cache.KindTags, id); err == nil {
			g.cacheHits.Add(1)
			return cached
		}
	}

	prompt := buildPrompt(g.vocab, rec.Strings(core.FieldKeywords), rec.Title(), rec.Description())

	response, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.failures.Add(1)
		g.logger.Error("tag generation failed", "title", rec.Title(), "err", err)
		return []string{}
	}

	cleaned := vocab.Clean(vocab.SplitResponse(response))

	if g.store != nil {
		if err := g.store.PutStrings(cache.KindTags, id, cleaned); err != nil {
			g.logger.Warn("caching tags failed", "err", err)
		}
	}
	return cleaned
}

// TagAll annotates every record with a "tags" field and returns the full
// set in batch completion order. The returned slice always contains
// exactly one record per input record; only pool setup can fail.
func (g *Generator) TagAll(ctx context.Context, records []core.Record) ([]core.Record, error) {
	if len(records) == 0 {
		return []core.Record{}, nil
	}

	pool, err := ants.NewPool(g.workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu  sync.Mutex
		out = make([]core.Record, 0, len(records))
		wg  sync.WaitGroup
	)

	for start := 0; start < len(records); start += g.batchSize {
		end := start + g.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			for _, rec := range batch {
				rec[core.FieldTags] = g.TagRecord(ctx, rec)
			}
			mu.Lock()
			out = append(out, batch...)
			mu.Unlock()
		})
		if submitErr != nil {
			// Pool refused the task; keep the count bijection by
			// processing the batch inline.
			for _, rec := range batch {
				rec[core.FieldTags] = g.TagRecord(ctx, rec)
			}
			mu.Lock()
			out = append(out, batch...)
			mu.Unlock()
			wg.Done()
		}
	}

	wg.Wait()
	return out, nil
}

// Failures returns the number of model calls that failed so far.
func (g *Generator) Failures() int64 {
	return g.failures.Load()
}

// CacheHits returns the number of records answered from the cache.
func (g *Generator) CacheHits() int64 {
	return g.cacheHits.Load()
}
