package tui

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"bookvault/internal/domain"
)

// Client is a thin HTTP client over the catalog API, holding the identity
// token obtained at login.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// NewClient creates a client for the API at base (e.g. http://localhost:8080).
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type apiError struct {
	Detail string `json:"detail"`
}

// Login exchanges credentials for an identity token and stores it for
// subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{"username": {email}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Detail != "" {
			return fmt.Errorf("login: %s", apiErr.Detail)
		}
		return fmt.Errorf("login: %s", resp.Status)
	}
	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return err
	}
	c.token = tok.AccessToken
	return nil
}

// Books lists the whole catalog.
func (c *Client) Books(ctx context.Context) ([]domain.BookView, error) {
	body, err := c.get(ctx, "/books")
	if err != nil {
		return nil, err
	}
	var views []domain.BookView
	if err := json.Unmarshal(body, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// Recommendations fetches the ranked list for the logged-in user. When the
// server answers with an explanation instead of books, the explanation
// comes back as note.
func (c *Client) Recommendations(ctx context.Context) (views []domain.BookView, note string, err error) {
	body, err := c.get(ctx, "/recommendations")
	if err != nil {
		return nil, "", err
	}
	if json.Unmarshal(body, &views) == nil {
		return views, "", nil
	}
	var msg struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, "", err
	}
	return nil, msg.Msg, nil
}

// BookSummary fetches one book's summary and mean rating; avg is nil for
// an unreviewed book.
func (c *Client) BookSummary(ctx context.Context, id int64) (summary string, avg *float64, err error) {
	body, err := c.get(ctx, fmt.Sprintf("/books/%d/summary", id))
	if err != nil {
		return "", nil, err
	}
	var out struct {
		Summary       string   `json:"summary"`
		AverageRating *float64 `json:"average_rating"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", nil, err
	}
	return out.Summary, out.AverageRating, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Detail != "" {
			return nil, fmt.Errorf("%s: %s", path, apiErr.Detail)
		}
		return nil, fmt.Errorf("%s: %s", path, resp.Status)
	}
	return body, nil
}
