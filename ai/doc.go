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


// Package ai provides abstractions for the remote language model used by
// the tagging and classification stages.
//
// The package defines two interfaces:
//
//   - Completer: a single-prompt chat completion against one fixed model
//   - Provider: aggregates the tagger and classifier completers and owns
//     the health probe for the shared model host
//
// Implementation packages:
//
//   - ai/openai: production implementation for OpenAI-compatible chat APIs
//     (a local Ollama server in the default configuration)
//   - ai/mock: test doubles for unit testing without a model server
//
// Public constructors in the implementation packages return the interface
// types so callers never couple to a concrete client; mock constructors
// return concrete types so tests can inject behavior and assert on calls.
package ai
