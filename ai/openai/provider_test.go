package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redfinlabs/annotate/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		provider, err := NewProvider(ai.DefaultConfig())
		require.NoError(t, err)
		defer provider.Close()

		assert.NotNil(t, provider.Tagger())
		assert.NotNil(t, provider.Classifier())
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		_, err := NewProvider(ai.NewConfig(ai.WithHost("")))
		assert.Error(t, err)
	})
}

func TestProviderPing(t *testing.T) {
	t.Run("reachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/models", r.URL.Path)
			w.Write([]byte(`{"data":[]}`))
		}))
		defer srv.Close()

		provider, err := NewProvider(ai.NewConfig(ai.WithHost(srv.URL + "/v1")))
		require.NoError(t, err)
		defer provider.Close()

		assert.NoError(t, provider.Ping(context.Background()))
	})

	t.Run("error status still counts as reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		provider, err := NewProvider(ai.NewConfig(ai.WithHost(srv.URL + "/v1")))
		require.NoError(t, err)
		defer provider.Close()

		assert.NoError(t, provider.Ping(context.Background()))
	})

	t.Run("unreachable host", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // shut down before pinging

		provider, err := NewProvider(ai.NewConfig(ai.WithHost(srv.URL + "/v1")))
		require.NoError(t, err)
		defer provider.Close()

		assert.Error(t, provider.Ping(context.Background()))
	})
}

func TestProviderWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	provider, err := NewProvider(ai.NewConfig(ai.WithHost(srv.URL + "/v1")))
	require.NoError(t, err)
	defer provider.Close()

	start := time.Now()
	err = provider.Wait(context.Background(), 0)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}
