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


package core

import "strings"

// Field names written by the pipeline stages.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldKeywords    = "keywords"
	FieldTags        = "tags"
	FieldCategory    = "category"
)

// Record is a single news item as an open field mapping. Unrecognized
// fields are preserved across stages.
type Record map[string]any

// Title returns the article title, or "" when absent or not a string.
func (r Record) Title() string {
	return r.stringField(FieldTitle)
}

// Description returns the article body text, or "" when absent.
func (r Record) Description() string {
	return r.stringField(FieldDescription)
}

// Text concatenates title and description into the blob the keyword and
// tagging stages operate on. The result is whitespace-trimmed, so an
// article with neither field yields "".
func (r Record) Text() string {
	return strings.TrimSpace(r.Title() + " " + r.Description())
}

// ContentID returns a deterministic ID derived from the record's title and
// description. Records with identical text hash to the same ID, which is
// what makes the annotation cache safe across runs.
func (r Record) ContentID() ID {
	return IDFromContent(r.Title() + "\x00" + r.Description())
}

// Strings reads a field as a string slice. JSON decoding produces []any,
// so both representations are accepted. Non-string elements are dropped.
func (r Record) Strings(field string) []string {
	switch v := r[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func (r Record) stringField(name string) string {
	if s, ok := r[name].(string); ok {
		return s
	}
	return ""
}
