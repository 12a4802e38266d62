package mock

import (
	"context"

	"github.com/redfinlabs/annotate/ai"
)

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	tagger     *MockCompleter
	classifier *MockCompleter

	// PingErr is returned by Ping, simulating an unreachable model host.
	PingErr error
}

// NewMockProvider creates a provider whose completers answer with empty
// responses until configured.
//
// Returns ai.Provider for consistency with production constructors; use
// GetMockTagger()/GetMockClassifier() for assertions.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		tagger:     NewMockCompleter(""),
		classifier: NewMockCompleter(""),
	}
}

// NewMockProviderWithCompleters creates a provider with custom mocks.
func NewMockProviderWithCompleters(tagger, classifier *MockCompleter) *MockProvider {
	return &MockProvider{tagger: tagger, classifier: classifier}
}

// Tagger returns the mock tag completer.
func (p *MockProvider) Tagger() ai.Completer {
	return p.tagger
}

// Classifier returns the mock classification completer.
func (p *MockProvider) Classifier() ai.Completer {
	return p.classifier
}

// Ping returns PingErr.
func (p *MockProvider) Ping(ctx context.Context) error {
	return p.PingErr
}

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockTagger returns the underlying mock for test assertions.
func (p *MockProvider) GetMockTagger() *MockCompleter {
	return p.tagger
}

// GetMockClassifier returns the underlying mock for test assertions.
func (p *MockProvider) GetMockClassifier() *MockCompleter {
	return p.classifier
}
