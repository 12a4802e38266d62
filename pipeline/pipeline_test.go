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
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/redfinlabs/annotate/ai/mock"
	"github.com/redfinlabs/annotate/category"
	"github.com/redfinlabs/annotate/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	var content string
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestProvider() *mock.MockProvider {
	p := mock.NewMockProvider()
	p.GetMockTagger().Response = "org/OpenAI, topic/AGI"
	p.GetMockClassifier().Response = "Research"
	return p
}

func TestNewRequiresProvider(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}

func TestRunProducesAllArtifacts(t *testing.T) {
	input := writeInput(t,
		`{"title": "First story", "description": "Researchers announced a new model today."}`,
		`{"title": "Second story", "description": "A startup raised a large funding round."}`,
		`{"title": "Third story", "description": "Regulators proposed new rules for data centers."}`,
	)
	outDir := t.TempDir()

	p, err := New(newTestProvider(), WithOutputDir(outDir))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "articles_keywords.jsonl"), result.KeywordPath)
	assert.Equal(t, filepath.Join(outDir, "articles_tags.jsonl"), result.TagPath)
	assert.Equal(t, filepath.Join(outDir, "articles_categories.jsonl"), result.CategoryPath)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, result.Records)

	keyworded, skipped, err := core.ReadAll(result.KeywordPath)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, keyworded, 3)

	// Input order survives the keyword stage.
	assert.Equal(t, "First story", keyworded[0].Title())
	assert.Equal(t, "Second story", keyworded[1].Title())
	assert.Equal(t, "Third story", keyworded[2].Title())
	for _, rec := range keyworded {
		_, ok := rec[core.FieldKeywords]
		assert.True(t, ok, "every record carries a keywords field")
	}

	tagged, _, err := core.ReadAll(result.TagPath)
	require.NoError(t, err)
	require.Len(t, tagged, 3, "one tag record per input record")
	for _, rec := range tagged {
		assert.Equal(t, []string{"org/OpenAI", "topic/AGI"}, rec.Strings(core.FieldTags))
	}

	categorized, _, err := core.ReadAll(result.CategoryPath)
	require.NoError(t, err)
	require.Len(t, categorized, 3)
	for i, rec := range categorized {
		assert.Equal(t, keyworded[i].Title(), rec.Title(), "category stage preserves order")
		assert.Equal(t, "Research", rec[core.FieldCategory])
	}
}

func TestRunSkipsMalformedLines(t *testing.T) {
	input := writeInput(t,
		`{"title": "Good one", "description": "body"}`,
		`{not valid json`,
		`"just a string"`,
		`{"title": "Good two", "description": "body"}`,
	)

	p, err := New(newTestProvider(), WithOutputDir(t.TempDir()))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Records)
	assert.Equal(t, 2, result.SkippedLines)

	keyworded, _, err := core.ReadAll(result.KeywordPath)
	require.NoError(t, err)
	require.Len(t, keyworded, 2)
	assert.Equal(t, "Good one", keyworded[0].Title())
	assert.Equal(t, "Good two", keyworded[1].Title())
}

func TestRunMissingInput(t *testing.T) {
	p, err := New(newTestProvider(), WithOutputDir(t.TempDir()))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.ErrorIs(t, err, ErrInputNotFound)

	_, err = p.Run(context.Background(), "")
	assert.ErrorIs(t, err, ErrInputNotFound)
}

func TestRunUnreachableHost(t *testing.T) {
	input := writeInput(t, `{"title": "A", "description": "b"}`)

	provider := newTestProvider()
	provider.PingErr = errors.New("connection refused")

	outDir := t.TempDir()
	p, err := New(provider, WithOutputDir(outDir))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), input)
	assert.ErrorIs(t, err, ErrHostUnreachable)

	// Nothing was written before the probe failed.
	_, statErr := os.Stat(filepath.Join(outDir, "articles_keywords.jsonl"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunModelFailuresDegrade(t *testing.T) {
	input := writeInput(t,
		`{"title": "A", "description": "b"}`,
		`{"title": "C", "description": "d"}`,
	)

	provider := mock.NewMockProvider()
	provider.GetMockTagger().Err = errors.New("model down")
	provider.GetMockClassifier().Err = errors.New("model down")

	p, err := New(provider, WithOutputDir(t.TempDir()))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), input)
	require.NoError(t, err, "model failures never abort the run")

	assert.EqualValues(t, 2, result.TagFailures)
	assert.EqualValues(t, 2, result.CategoryFailures)

	tagged, _, err := core.ReadAll(result.TagPath)
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	for _, rec := range tagged {
		assert.Empty(t, rec.Strings(core.FieldTags))
	}

	categorized, _, err := core.ReadAll(result.CategoryPath)
	require.NoError(t, err)
	for _, rec := range categorized {
		assert.Equal(t, category.Fallback, rec[core.FieldCategory])
	}
}

func TestRunStageToggles(t *testing.T) {
	input := writeInput(t, `{"title": "A", "description": "b"}`)

	t.Run("without tags", func(t *testing.T) {
		outDir := t.TempDir()
		p, err := New(newTestProvider(), WithOutputDir(outDir), WithoutTags())
		require.NoError(t, err)

		result, err := p.Run(context.Background(), input)
		require.NoError(t, err)

		_, statErr := os.Stat(result.TagPath)
		assert.True(t, os.IsNotExist(statErr))
		_, statErr = os.Stat(result.CategoryPath)
		assert.NoError(t, statErr)
	})

	t.Run("without categories", func(t *testing.T) {
		outDir := t.TempDir()
		p, err := New(newTestProvider(), WithOutputDir(outDir), WithoutCategories())
		require.NoError(t, err)

		result, err := p.Run(context.Background(), input)
		require.NoError(t, err)

		_, statErr := os.Stat(result.TagPath)
		assert.NoError(t, statErr)
		_, statErr = os.Stat(result.CategoryPath)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestRunIsRepeatable(t *testing.T) {
	input := writeInput(t,
		`{"title": "A", "description": "Researchers announced a new model today."}`,
	)
	outDir := t.TempDir()

	p, err := New(newTestProvider(), WithOutputDir(outDir))
	require.NoError(t, err)

	first, err := p.Run(context.Background(), input)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first.KeywordPath)
	require.NoError(t, err)

	second, err := p.Run(context.Background(), input)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second.KeywordPath)
	require.NoError(t, err)

	assert.Equal(t, string(firstBytes), string(secondBytes), "keyword extraction is deterministic")
	assert.NotEqual(t, first.RunID, second.RunID)
}
