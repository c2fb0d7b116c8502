// Package summarize wraps the remote summarization service.
package summarize

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"bookvault/internal/domain"
)

// Summarizer produces a summary of the provided text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// strayMarker sometimes leaks from the upstream model into summaries and
// is stripped verbatim.
const strayMarker = "//p"

// Client calls the external summarization endpoint. Single attempt, no
// retry: a failed call fails the ingestion.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// Config configures the summarization client. APIKeyEnv names the
// environment variable holding the endpoint's API key.
type Config struct {
	Endpoint  string
	APIKeyEnv string
	Timeout   time.Duration
}

// NewClient creates a summarization client.
func NewClient(cfg Config) *Client {
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   os.Getenv(cfg.APIKeyEnv),
		client:   &http.Client{Timeout: t},
	}
}

// Summarize sends text to the summarization endpoint and returns the
// cleaned summary.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	body, _ := json.Marshal(struct {
		Content string `json:"content"`
	}{Content: text})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.SummarizationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &domain.SummarizationError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.SummarizationError{Status: resp.Status}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.SummarizationError{Err: err}
	}

	// The endpoint returns the summary as a JSON string.
	var summary string
	if err := json.Unmarshal(payload, &summary); err != nil {
		return "", &domain.SummarizationError{Err: err}
	}
	return strings.ReplaceAll(summary, strayMarker, ""), nil
}
