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


package vocab

import (
	"html"
	"strings"
	"unicode"
)

// remap corrects known model mislabelings: tags attributed to the wrong
// prefix and placeholder values. A source tag never appears verbatim in
// output; it is always replaced by its target.
var remap = map[string]string{
	"biz/Regulation":             "policy/Regulation",
	"event/Funding":              "biz/Funding",
	"domain/Multimodal":          "topic/Multimodal",
	"event/NA":                   "event/Unknown",
	"domain/SocialNetwork":       "domain/SocialMedia",
	"domain/SpaceExploration":    "domain/Space",
	"domain/Multimedia":          "domain/Media",
	"domain/ImageEditing":        "domain/Media",
	"domain/Photoshop":           "domain/Media",
	"domain/FutureWorkplace":     "domain/Workplace",
	"domain/ConsumerElectronics": "domain/Technology",
}

// NormalizeTag repairs one raw candidate into canonical prefix/value form.
// The boolean is false when the candidate cannot be salvaged.
func NormalizeTag(raw string) (string, bool) {
	tag := html.UnescapeString(strings.TrimSpace(raw))
	if tag == "" {
		return "", false
	}

	// Markdown bullets, role markers and escapes signal the model wandered
	// off the requested format; such candidates are not repairable.
	if strings.ContainsAny(tag, `*:\`) {
		return "", false
	}

	// Anything after a newline is commentary, not tag.
	tag, _, _ = strings.Cut(tag, "\n")

	if !strings.Contains(tag, "/") {
		return "", false
	}

	// Keep only the first two /-delimited segments.
	parts := strings.SplitN(tag, "/", 3)
	prefix := stripSpace(strings.TrimSpace(parts[0]))
	value := stripSpace(strings.TrimSpace(parts[1]))
	if prefix == "" || value == "" {
		return "", false
	}
	tag = prefix + "/" + value

	if fixed, ok := remap[tag]; ok {
		tag = fixed
		prefix, _, _ = strings.Cut(tag, "/")
	}

	if !ValidPrefix(prefix) {
		return "", false
	}
	return tag, true
}

// Clean normalizes a batch of raw candidates and deduplicates the
// survivors preserving first-seen order. It never returns nil so that the
// tags field serializes as [] rather than null.
func Clean(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	cleaned := make([]string, 0, len(raw))
	for _, candidate := range raw {
		tag, ok := NormalizeTag(candidate)
		if !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	return cleaned
}

// SplitResponse splits a raw model response on commas into tag candidates.
func SplitResponse(response string) []string {
	fields := strings.Split(response, ",")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
