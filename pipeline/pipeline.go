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


package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/redfinlabs/annotate/ai"
	"github.com/redfinlabs/annotate/cache"
	"github.com/redfinlabs/annotate/category"
	"github.com/redfinlabs/annotate/core"
	"github.com/redfinlabs/annotate/keywords"
	"github.com/redfinlabs/annotate/tags"
	"github.com/redfinlabs/annotate/vocab"
)

// DefaultOutputDir is where artifacts land when no directory is configured.
const DefaultOutputDir = "annotations"

// Pipeline sequences the keyword, tag and category stages over file-based
// handoffs.
type Pipeline struct {
	provider    ai.Provider
	vocabulary  vocab.Vocabulary
	outputDir   string
	maxKeywords int
	batchSize   int
	workers     int
	store       *cache.Cache
	skipTags    bool
	skipCats    bool
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOutputDir sets the artifact directory.
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.outputDir = dir
		}
	}
}

// WithVocabulary replaces the default controlled vocabulary.
func WithVocabulary(v vocab.Vocabulary) Option {
	return func(p *Pipeline) {
		if v != nil {
			p.vocabulary = v
		}
	}
}

// WithMaxKeywords sets the keyword count ceiling K.
func WithMaxKeywords(k int) Option {
	return func(p *Pipeline) {
		if k > 0 {
			p.maxKeywords = k
		}
	}
}

// WithBatchSize sets the tag stage batch size.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) {
		if size > 0 {
			p.batchSize = size
		}
	}
}

// WithWorkers sets the tag stage worker pool width.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithCache attaches an annotation cache to the model-backed stages.
func WithCache(store *cache.Cache) Option {
	return func(p *Pipeline) {
		p.store = store
	}
}

// WithoutTags disables the tag stage; the keyword artifact is still
// produced.
func WithoutTags() Option {
	return func(p *Pipeline) {
		p.skipTags = true
	}
}

// WithoutCategories disables the category stage.
func WithoutCategories() Option {
	return func(p *Pipeline) {
		p.skipCats = true
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a pipeline with the standard defaults: output directory
// "annotations", 5 keywords per record, batch size 5, 2 workers.
func New(provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	p := &Pipeline{
		provider:    provider,
		vocabulary:  vocab.Default(),
		outputDir:   DefaultOutputDir,
		maxKeywords: keywords.DefaultTopK,
		batchSize:   tags.DefaultBatchSize,
		workers:     tags.DefaultWorkers,
		logger:      slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Result summarizes one completed run.
type Result struct {
	RunID string

	KeywordPath  string
	TagPath      string
	CategoryPath string

	Records          int
	SkippedLines     int
	TagFailures      int64
	CategoryFailures int64
	CacheHits        int64
}

// Run executes the full pipeline over the input file. Setup failures
// return an error before any artifact is written; per-record model
// failures are recovered inside the stages.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*Result, error) {
	if strings.TrimSpace(inputPath) == "" {
		return nil, ErrInputNotFound
	}
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}
	if err := p.provider.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostUnreachable, err)
	}
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	result := &Result{RunID: ulid.Make().String()}
	logger := p.logger.With("run_id", result.RunID)

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	result.KeywordPath = filepath.Join(p.outputDir, base+"_keywords.jsonl")
	result.TagPath = filepath.Join(p.outputDir, base+"_tags.jsonl")
	result.CategoryPath = filepath.Join(p.outputDir, base+"_categories.jsonl")

	logger.Info("starting keyword extraction", "input", inputPath)
	if err := p.runKeywordStage(inputPath, result); err != nil {
		return nil, err
	}
	logger.Info("keyword extraction complete", "records", result.Records, "skipped_lines", result.SkippedLines)

	if !p.skipTags {
		logger.Info("starting tag generation", "workers", p.workers, "batch_size", p.batchSize)
		if err := p.runTagStage(ctx, result); err != nil {
			return nil, err
		}
		logger.Info("tag generation complete", "failures", result.TagFailures)
	}

	if !p.skipCats {
		logger.Info("starting category classification")
		if err := p.runCategoryStage(ctx, result); err != nil {
			return nil, err
		}
		logger.Info("category classification complete", "failures", result.CategoryFailures)
	}

	logger.Info("run complete",
		"records", result.Records,
		"keywords_artifact", result.KeywordPath,
		"tags_artifact", result.TagPath,
		"categories_artifact", result.CategoryPath,
		"cache_hits", result.CacheHits)
	return result, nil
}

// runKeywordStage streams the input line by line, annotating each valid
// record with its keyword list. Input order is preserved; malformed lines
// are skipped.
func (p *Pipeline) runKeywordStage(inputPath string, result *Result) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("keyword stage: %w", err)
	}
	defer in.Close()

	out, err := os.Create(result.KeywordPath)
	if err != nil {
		return fmt.Errorf("keyword stage: %w", err)
	}
	defer out.Close()

	extractor := keywords.NewExtractor(keywords.WithTopK(p.maxKeywords))
	writer := bufio.NewWriter(out)

	sc := core.NewLineScanner(in)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		rec, err := core.DecodeLine(sc.Bytes())
		if err != nil {
			result.SkippedLines++
			p.logger.Warn("skipping malformed line", "err", err)
			continue
		}

		rec[core.FieldKeywords] = extractor.Keywords(rec.Text())
		line, err := core.EncodeLine(rec)
		if err != nil {
			return fmt.Errorf("keyword stage: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("keyword stage: %w", err)
		}
		result.Records++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("keyword stage: %w", err)
	}
	return writer.Flush()
}

// runTagStage loads the keyword artifact into memory and fans batches out
// over the worker pool. Output order is batch completion order.
func (p *Pipeline) runTagStage(ctx context.Context, result *Result) error {
	records, _, err := core.ReadAll(result.KeywordPath)
	if err != nil {
		return fmt.Errorf("tag stage: %w", err)
	}

	opts := []tags.Option{
		tags.WithBatchSize(p.batchSize),
		tags.WithWorkers(p.workers),
		tags.WithLogger(p.logger.With("component", "tags")),
	}
	if p.store != nil {
		opts = append(opts, tags.WithCache(p.store))
	}
	generator, err := tags.NewGenerator(p.provider.Tagger(), p.vocabulary, opts...)
	if err != nil {
		return fmt.Errorf("tag stage: %w", err)
	}

	tagged, err := generator.TagAll(ctx, records)
	if err != nil {
		return fmt.Errorf("tag stage: %w", err)
	}
	result.TagFailures = generator.Failures()
	result.CacheHits += generator.CacheHits()

	out, err := os.Create(result.TagPath)
	if err != nil {
		return fmt.Errorf("tag stage: %w", err)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	for _, rec := range tagged {
		line, err := core.EncodeLine(rec)
		if err != nil {
			return fmt.Errorf("tag stage: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("tag stage: %w", err)
		}
	}
	return writer.Flush()
}

// runCategoryStage streams the keyword artifact sequentially, one model
// call at a time, preserving input order exactly.
func (p *Pipeline) runCategoryStage(ctx context.Context, result *Result) error {
	opts := []category.Option{
		category.WithLogger(p.logger.With("component", "category")),
	}
	if p.store != nil {
		opts = append(opts, category.WithCache(p.store))
	}
	classifier, err := category.NewClassifier(p.provider.Classifier(), opts...)
	if err != nil {
		return fmt.Errorf("category stage: %w", err)
	}

	in, err := os.Open(result.KeywordPath)
	if err != nil {
		return fmt.Errorf("category stage: %w", err)
	}
	defer in.Close()

	out, err := os.Create(result.CategoryPath)
	if err != nil {
		return fmt.Errorf("category stage: %w", err)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	sc := core.NewLineScanner(in)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		// The keyword artifact is machine-written; a malformed line here
		// would mean the previous stage broke its contract.
		rec, err := core.DecodeLine(sc.Bytes())
		if err != nil {
			return fmt.Errorf("category stage: %w", err)
		}

		rec[core.FieldCategory] = classifier.Classify(ctx, rec)
		line, err := core.EncodeLine(rec)
		if err != nil {
			return fmt.Errorf("category stage: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("category stage: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("category stage: %w", err)
	}
	result.CategoryFailures = classifier.Failures()
	result.CacheHits += classifier.CacheHits()
	return writer.Flush()
}
