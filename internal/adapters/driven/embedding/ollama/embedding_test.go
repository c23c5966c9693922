package ollama

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOllama returns a test server that answers /api/embeddings with a
// fixed vector derived from the prompt length, and /api/tags with 200.
func fakeOllama(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/embeddings":
			var req embedRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			// Deterministic vector for a given prompt.
			vec := []float64{float64(len(req.Prompt)), 1, 2}
			json.NewEncoder(w).Encode(embedResponse{Embedding: vec}) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestEmbeddingService_Defaults(t *testing.T) {
	s := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, DefaultDimensions, s.Dimensions())
}

func TestEmbeddingService_Embed_Normalised(t *testing.T) {
	srv := fakeOllama(t)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 3})

	vec, err := s.Embed(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, vec, 3)

	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6, "vector should be unit length")
}

func TestEmbeddingService_Embed_Deterministic(t *testing.T) {
	srv := fakeOllama(t)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL})

	first, err := s.Embed(context.Background(), "same input")
	require.NoError(t, err)
	second, err := s.Embed(context.Background(), "same input")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmbeddingService_EmbedBatch(t *testing.T) {
	srv := fakeOllama(t)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL})

	vecs, err := s.EmbedBatch(context.Background(), []string{"a", "bb", "ccc"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for _, v := range vecs {
		assert.Len(t, v, 3)
	}
}

func TestEmbeddingService_Embed_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL})

	_, err := s.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestEmbeddingService_Ping(t *testing.T) {
	srv := fakeOllama(t)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL})
	assert.NoError(t, s.Ping(context.Background()))

	srv.Close()
	assert.Error(t, s.Ping(context.Background()))
}
