// Package openai implements the ai interfaces against OpenAI-compatible
// chat APIs.
//
// Despite the name, the primary deployment target is a local Ollama server
// exposing its OpenAI-compatible endpoint (http://localhost:11434/v1); any
// service speaking the same protocol works. Completions are made with
// temperature 0 and a single attempt — failure policy lives with the
// callers, which degrade per record instead of retrying.
package openai
