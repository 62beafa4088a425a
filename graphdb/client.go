// Package graphdb is a minimal REST client for GraphDB repositories:
// listing repositories, uploading Turtle, clearing statements, and running
// SPARQL queries against the repository endpoint.
package graphdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a GraphDB server.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// Config configures a Client.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:7200".
	BaseURL string

	// Username and Password are optional basic-auth credentials.
	Username string
	Password string

	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("graphdb: server returned %d: %s", e.StatusCode, e.Body)
}

// New creates a GraphDB client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("graphdb: base URL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Repository describes one repository on the server.
type Repository struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ListRepositories returns the repositories the server hosts.
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	body, err := c.do(ctx, http.MethodGet, "/rest/repositories", "", "application/json", nil)
	if err != nil {
		return nil, err
	}
	var repos []Repository
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, fmt.Errorf("graphdb: decode repository list: %w", err)
	}
	return repos, nil
}

// Size returns the number of statements in a repository.
func (c *Client) Size(ctx context.Context, repository string) (int64, error) {
	body, err := c.do(ctx, http.MethodGet, "/repositories/"+url.PathEscape(repository)+"/size", "", "text/plain", nil)
	if err != nil {
		return 0, err
	}
	var n int64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(body)), "%d", &n); err != nil {
		return 0, fmt.Errorf("graphdb: parse size response %q: %w", body, err)
	}
	return n, nil
}

// UploadTurtle adds Turtle statements to a repository. With replace set the
// existing statements are dropped first, which is how model reloads work.
func (c *Client) UploadTurtle(ctx context.Context, repository, ttl string, replace bool) error {
	method := http.MethodPost
	if replace {
		method = http.MethodPut
	}
	_, err := c.do(ctx, method, "/repositories/"+url.PathEscape(repository)+"/statements",
		"text/turtle", "", strings.NewReader(ttl))
	return err
}

// Clear removes every statement from a repository.
func (c *Client) Clear(ctx context.Context, repository string) error {
	_, err := c.do(ctx, http.MethodDelete, "/repositories/"+url.PathEscape(repository)+"/statements", "", "", nil)
	return err
}

// Query runs a SPARQL query against a repository and returns the raw
// SPARQL JSON results body.
func (c *Client) Query(ctx context.Context, repository, query string) ([]byte, error) {
	form := url.Values{"query": {query}}
	return c.do(ctx, http.MethodPost, "/repositories/"+url.PathEscape(repository),
		"application/x-www-form-urlencoded", "application/sparql-results+json",
		strings.NewReader(form.Encode()))
}

func (c *Client) do(ctx context.Context, method, path, contentType, accept string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("graphdb: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphdb: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("graphdb: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}
