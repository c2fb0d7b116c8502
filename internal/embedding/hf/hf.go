// Package hf implements the Embedder interface against a Hugging Face
// inference-style endpoint.
package hf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"

	"bookvault/internal/domain"
)

// Client is a sentence-embedding inference client. Calls are single-attempt:
// any transport or upstream failure surfaces as an EmbeddingError without
// retrying.
type Client struct {
	baseURL   string
	model     string
	apiKey    string
	dimension int
	client    *http.Client
}

// Config configures the embedding client. APIKeyEnv names an environment
// variable; an empty or unset variable leaves requests unauthenticated,
// which the inference endpoint may or may not accept.
type Config struct {
	BaseURL   string
	Model     string
	APIKeyEnv string
	Timeout   time.Duration
}

// NewClient creates an embedding client for the given model.
func NewClient(cfg Config) *Client {
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		apiKey:    os.Getenv(cfg.APIKeyEnv),
		dimension: domain.EmbeddingDim,
		client:    &http.Client{Timeout: t},
	}
}

// Dimension returns the dimensionality of the produced embedding vectors.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns the embedding vector for text. A response vector whose
// length differs from Dimension() is an error; callers must never persist
// such a vector.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	body, _ := json.Marshal(struct {
		Inputs string `json:"inputs"`
	}{Inputs: text})

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.EmbeddingError{Status: resp.Status}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}

	vec, err := decodeVector(payload)
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}
	if len(vec) != c.dimension {
		return nil, &domain.EmbeddingError{
			Err: fmt.Errorf("expected %d-dimensional vector, got %d", c.dimension, len(vec)),
		}
	}
	return vec, nil
}

// decodeVector accepts the two shapes the inference API returns for
// sentence-similarity models: a flat float array, or an array of arrays
// (one vector per input sentence), in which case the first vector wins.
func decodeVector(payload []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(payload, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	var nested [][]float32
	if err := json.Unmarshal(payload, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}
	return nil, fmt.Errorf("no embedding in response")
}
