package tags

import (
	"fmt"
	"strings"

	"github.com/redfinlabs/annotate/vocab"
)

const promptTemplate = `You are an expert tagger for AI-related news articles. Generate relevant tags in the form 'prefix/Value' for the article below.

Controlled vocabulary (preferred tags): %s

Extracted keywords: %s

Rules:
1. Prefer tags from the controlled vocabulary when the title or content matches one closely.
2. If a keyword or content term is relevant but missing from the vocabulary, propose a new value under one of the existing prefixes.
3. Capitalize values for consistency.
4. Output ONLY comma-separated tags in 'prefix/Value' form, nothing else.

Article:
Title: %s
Content: %s

Tags:`

// buildPrompt assembles the tagging prompt from the vocabulary, the
// record's keyword list and its text fields.
func buildPrompt(v vocab.Vocabulary, keywords []string, title, body string) string {
	return fmt.Sprintf(promptTemplate,
		v.PromptPairs(),
		strings.Join(keywords, ", "),
		title,
		body,
	)
}
