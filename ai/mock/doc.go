// Package mock provides test doubles for the ai interfaces.
//
// MockCompleter supports behavior injection via its CompleteFunc field and
// records call counts for assertions. MockProvider bundles two completers
// so pipeline tests can run without a model server.
package mock
