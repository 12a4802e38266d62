package ai

import "context"

// Completer performs a single synchronous chat completion against one
// fixed model. Implementations must be thread-safe for concurrent use; the
// tagging stage calls Complete from several workers at once.
type Completer interface {
	// Complete sends one prompt and returns the model's raw response text.
	// There is no streaming, no conversation state across calls, and no
	// retry: any transport or model failure surfaces as the error.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates the model services used by the pipeline. The tagger
// and classifier may be distinct models served by the same host.
type Provider interface {
	// Tagger returns the completer used for tag generation.
	Tagger() Completer

	// Classifier returns the completer used for category classification.
	Classifier() Completer

	// Ping probes the model host once. An error means the host is
	// unreachable and a run must not start.
	Ping(ctx context.Context) error

	// Close releases resources held by the provider.
	Close() error
}
