package mock

import (
	"context"
	"sync"
)

// MockCompleter is a test double for ai.Completer. It is safe for
// concurrent use, matching the contract the tagging workers rely on.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set. If nil, Complete returns
	// Response and Err verbatim.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// Response and Err are the canned results used when CompleteFunc is nil.
	Response string
	Err      error

	mu        sync.Mutex
	callCount int
	prompts   []string
}

// NewMockCompleter creates a mock completer that answers every prompt with
// the given response.
//
// Returns the concrete type to allow behavior injection and assertions.
func NewMockCompleter(response string) *MockCompleter {
	return &MockCompleter{Response: response}
}

// Complete records the call and returns the injected behavior's result.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return m.Response, m.Err
}

// CallCount returns how many times Complete has been called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns a copy of every prompt received, in call order.
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears recorded calls.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.prompts = nil
}
