package summarize

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

func newServerClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("TEST_SUMMARIZER_KEY", "sekrit")
	return NewClient(Config{Endpoint: srv.URL, APIKeyEnv: "TEST_SUMMARIZER_KEY"})
}

func TestSummarize(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sekrit", r.Header.Get("x-api-key"))
		var req struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "full book text", req.Content)
		json.NewEncoder(w).Encode("A concise summary.")
	})

	got, err := c.Summarize(context.Background(), "full book text")
	require.NoError(t, err)
	assert.Equal(t, "A concise summary.", got)
}

func TestSummarizeStripsStrayMarker(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode("A summary//p with markers.//p")
	})

	got, err := c.Summarize(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "A summary with markers.", got)
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.Summarize(context.Background(), "text")
	var sumErr *domain.SummarizationError
	require.ErrorAs(t, err, &sumErr)
	assert.Contains(t, sumErr.Status, "502")
}
