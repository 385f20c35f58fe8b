// Package vectorstore provides namespaced vector persistence and similarity
// search over an external vector database. The database is an opaque service
// reached over its REST data plane; this package owns request shaping,
// batching, and multi-namespace result merging.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Namespaces partition the index: crawled corpus records versus
// user-submitted facts.
const (
	NamespaceFileData = "file_data"
	NamespaceOwnData  = "own_data"
)

// Vector is one stored entry: a unique id within its namespace, the
// embedding values, and the record metadata.
type Vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Match is one similarity-query result. Score is cosine similarity;
// higher is more relevant. Matches are ephemeral, produced per query.
type Match struct {
	ID        string         `json:"id"`
	Score     float64        `json:"score"`
	Namespace string         `json:"namespace"`
	Metadata  map[string]any `json:"metadata"`
}

// Client is a minimal REST client to the vector database's data plane.
// It assumes the index already exists with cosine metric and the embedding
// model's dimension.
type Client struct {
	host   string
	apiKey string
	client *http.Client
}

// Config configures the REST client.
type Config struct {
	// Host is the index data-plane base URL.
	Host string
	// APIKey authenticates every request.
	APIKey string
	// Timeout bounds a single request. Defaults to 15 seconds.
	Timeout time.Duration
}

// NewClient creates a REST client for one index.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		host:   cfg.Host,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Upsert writes vectors into a namespace. The caller is responsible for
// keeping batches within the service's per-call vector limit.
func (c *Client) Upsert(ctx context.Context, namespace string, vectors []Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	body := map[string]any{
		"vectors":   vectors,
		"namespace": namespace,
	}
	return c.postJSON(ctx, "/vectors/upsert", body, nil)
}

// Query runs a similarity search over one namespace and returns up to topK
// matches with their metadata, sorted by the service in descending score.
func (c *Client) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error) {
	body := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"namespace":       namespace,
		"includeMetadata": true,
	}
	var resp struct {
		Matches []Match `json:"matches"`
	}
	if err := c.postJSON(ctx, "/query", body, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Matches {
		resp.Matches[i].Namespace = namespace
	}
	return resp.Matches, nil
}

// Fetch retrieves vectors by id from a namespace. Missing ids are simply
// absent from the result.
func (c *Client) Fetch(ctx context.Context, namespace string, ids []string) (map[string]Vector, error) {
	if len(ids) == 0 {
		return map[string]Vector{}, nil
	}
	params := url.Values{}
	for _, id := range ids {
		params.Add("ids", id)
	}
	params.Set("namespace", namespace)

	var resp struct {
		Vectors map[string]Vector `json:"vectors"`
	}
	if err := c.getJSON(ctx, "/vectors/fetch?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Vectors == nil {
		resp.Vectors = map[string]Vector{}
	}
	return resp.Vectors, nil
}

// ListIDs returns every vector id in a namespace, following pagination.
func (c *Client) ListIDs(ctx context.Context, namespace string) ([]string, error) {
	var ids []string
	token := ""
	for {
		params := url.Values{}
		params.Set("namespace", namespace)
		if token != "" {
			params.Set("paginationToken", token)
		}

		var resp struct {
			Vectors []struct {
				ID string `json:"id"`
			} `json:"vectors"`
			Pagination struct {
				Next string `json:"next"`
			} `json:"pagination"`
		}
		if err := c.getJSON(ctx, "/vectors/list?"+params.Encode(), &resp); err != nil {
			return nil, err
		}
		for _, v := range resp.Vectors {
			ids = append(ids, v.ID)
		}
		if resp.Pagination.Next == "" {
			return ids, nil
		}
		token = resp.Pagination.Next
	}
}

// Delete removes vectors by id from a namespace. Deleting a missing id is
// not an error: the service may answer 404, which is swallowed here so
// deletion stays idempotent from the caller's perspective.
func (c *Client) Delete(ctx context.Context, namespace string, ids []string) error {
	body := map[string]any{
		"ids":       ids,
		"namespace": namespace,
	}
	err := c.postJSON(ctx, "/vectors/delete", body, nil)
	var storeErr *StoreError
	if errors.As(err, &storeErr) && storeErr.StatusCode == http.StatusNotFound {
		return nil
	}
	return err
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &StoreError{Op: "POST " + path, Message: "failed to encode request", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(data))
	if err != nil {
		return &StoreError{Op: "POST " + path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+path, nil)
	if err != nil {
		return &StoreError{Op: "GET " + path, Message: "failed to create request", Cause: err}
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return &StoreError{Op: req.Method + " " + path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StoreError{
			Op:         req.Method + " " + path,
			Message:    fmt.Sprintf("status %s: %s", resp.Status, bytes.TrimSpace(msg)),
			StatusCode: resp.StatusCode,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &StoreError{Op: req.Method + " " + path, Message: "failed to decode response", Cause: err}
		}
	}
	return nil
}
