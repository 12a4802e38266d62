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
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prefixes enumerates the eight allowed tag prefixes, in prompt order.
var Prefixes = []string{"org", "model", "domain", "topic", "event", "geo", "biz", "policy"}

var prefixSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Prefixes))
	for _, p := range Prefixes {
		set[p] = struct{}{}
	}
	return set
}()

// ValidPrefix reports whether p is one of the allowed tag prefixes.
func ValidPrefix(p string) bool {
	_, ok := prefixSet[p]
	return ok
}

// Vocabulary maps a tag prefix to its canonical values. It is built once at
// startup and treated as immutable afterwards.
type Vocabulary map[string][]string

// Default returns the compiled-in controlled vocabulary.
func Default() Vocabulary {
	return Vocabulary{
		"org":    {"OpenAI", "Anthropic", "Naver", "Google", "Microsoft", "NVIDIA", "MIT", "Facebook", "Apple", "Intel", "Sony", "Honeywell", "Oracle", "SenseTime"},
		"model":  {"GPT-6", "Claude-3.7", "Genie", "Assistant", "Azure", "Mini Cheetah", "Smart Compose"},
		"domain": {"Healthcare", "Fintech", "Education", "Transportation", "Robotics"},
		"topic":  {"Multimodal", "RAG", "Agents", "Safety", "Robotics"},
		"event":  {"NeurIPS2025", "GoogleIO", "WWDC", "MAX"},
		"geo":    {"KR", "US", "EU", "CN"},
		"biz":    {"M&A", "Funding", "Earnings", "Pricing", "Hiring"},
		"policy": {"Regulation", "Standard", "Grant"},
	}
}

// Load reads a vocabulary from a YAML file mapping prefix to a value list.
// Prefixes outside the fixed set are rejected so a typoed file fails loudly
// instead of silently producing untaggable prompts.
func Load(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}

	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}

	for prefix, values := range v {
		if !ValidPrefix(prefix) {
			return nil, fmt.Errorf("load vocabulary %s: %w: %q", path, ErrUnknownPrefix, prefix)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("load vocabulary %s: prefix %q has no values", path, prefix)
		}
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("load vocabulary %s: no prefixes defined", path)
	}
	return v, nil
}

// PromptPairs serializes the vocabulary as comma-joined prefix/value pairs
// in stable prefix order, the form embedded in the tagging prompt.
func (v Vocabulary) PromptPairs() string {
	var pairs []string
	for _, prefix := range Prefixes {
		for _, value := range v[prefix] {
			pairs = append(pairs, prefix+"/"+value)
		}
	}
	return strings.Join(pairs, ", ")
}
