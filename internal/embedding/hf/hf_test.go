package hf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvault/internal/domain"
)

func vectorOf(dim int, v float32) []float32 {
	out := make([]float32, dim)
	for i := range out {
		out[i] = v
	}
	return out
}

func newServerClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Model: "test-model"})
}

func TestEmbedFlatResponse(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-model", r.URL.Path)
		var req struct {
			Inputs string `json:"inputs"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "some summary", req.Inputs)
		json.NewEncoder(w).Encode(vectorOf(domain.EmbeddingDim, 0.5))
	})

	vec, err := c.Embed(context.Background(), "some summary")
	require.NoError(t, err)
	assert.Len(t, vec, domain.EmbeddingDim)
	assert.InDelta(t, 0.5, vec[0], 1e-6)
}

func TestEmbedNestedResponse(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([][]float32{vectorOf(domain.EmbeddingDim, 0.25)})
	})

	vec, err := c.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Len(t, vec, domain.EmbeddingDim)
}

func TestEmbedWrongDimension(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(vectorOf(3, 1))
	})

	_, err := c.Embed(context.Background(), "text")
	var embErr *domain.EmbeddingError
	require.ErrorAs(t, err, &embErr)
}

func TestEmbedUpstreamError(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	})

	_, err := c.Embed(context.Background(), "text")
	var embErr *domain.EmbeddingError
	require.ErrorAs(t, err, &embErr)
	assert.Contains(t, embErr.Status, "503")
}
