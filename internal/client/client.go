package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/familyboard/familyboard/internal/recipe"
	"github.com/familyboard/familyboard/internal/wish"
)

// Client talks to the familyboard REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL (e.g. http://localhost:3000).
// A nil httpClient uses a client with a 10 s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

// APIError is a failure envelope returned by the server (or a non-JSON error response).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// PingResult is the body of GET /api/ping.
type PingResult struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

type listEnvelope[T any] struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Count   int    `json:"count"`
	Data    []T    `json:"data"`
}

type createEnvelope[T any] struct {
	Success      bool   `json:"success"`
	Error        string `json:"error"`
	Message      string `json:"message"`
	Data         T      `json:"data"`
	TotalRecipes int    `json:"totalRecipes"`
	TotalWishes  int    `json:"totalWishes"`
}

func (c *Client) Ping(ctx context.Context) (*PingResult, error) {
	var out PingResult
	if err := c.do(ctx, http.MethodGet, "/api/ping", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	var out listEnvelope[recipe.Recipe]
	if err := c.do(ctx, http.MethodGet, "/api/recipes", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ListWishes(ctx context.Context) ([]wish.Wish, error) {
	var out listEnvelope[wish.Wish]
	if err := c.do(ctx, http.MethodGet, "/api/wishes", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateRecipe submits a recipe and returns the stored record and the new total.
func (c *Client) CreateRecipe(ctx context.Context, in recipe.Input) (*recipe.Recipe, int, error) {
	var out createEnvelope[recipe.Recipe]
	if err := c.do(ctx, http.MethodPost, "/api/recipes", in, &out); err != nil {
		return nil, 0, err
	}
	return &out.Data, out.TotalRecipes, nil
}

// CreateWish submits a wish and returns the stored record and the new total.
func (c *Client) CreateWish(ctx context.Context, in wish.Input) (*wish.Wish, int, error) {
	var out createEnvelope[wish.Wish]
	if err := c.do(ctx, http.MethodPost, "/api/wishes", in, &out); err != nil {
		return nil, 0, err
	}
	return &out.Data, out.TotalWishes, nil
}

// DeleteRecipe removes a recipe and returns the remaining total.
func (c *Client) DeleteRecipe(ctx context.Context, id int64) (int, error) {
	var out createEnvelope[json.RawMessage]
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", id), nil, &out); err != nil {
		return 0, err
	}
	return out.TotalRecipes, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var fail struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &fail) == nil && fail.Error != "" {
			msg = fail.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
