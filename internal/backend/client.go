// README: Backend API client; one HTTP round trip per call, bearer credential, errors passed through unchanged.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Error is a non-2xx backend response, surfaced to callers as-is: no retry,
// no transformation (call sites decide how to show it).
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
}

// Recorder observes gateway calls; satisfied by the metrics collector.
type Recorder interface {
	RecordGatewayCall(method, path string, status int, d time.Duration)
}

type Client struct {
	baseURL string
	http    *http.Client
	rec     Recorder

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *Client) WithRecorder(rec Recorder) *Client {
	c.rec = rec
	return c
}

// SetToken attaches the bearer credential to all subsequent calls, the way
// the original set a default Authorization header after login.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// WithToken returns a shallow copy bound to one session's credential, so the
// shared client can serve concurrent sessions.
func (c *Client) WithToken(token string) *Client {
	clone := &Client{baseURL: c.baseURL, http: c.http, rec: c.rec}
	clone.token = token
	return clone
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.rec != nil {
			c.rec.RecordGatewayCall(method, path, 0, time.Since(start))
		}
		return err
	}
	defer resp.Body.Close()
	if c.rec != nil {
		c.rec.RecordGatewayCall(method, path, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return &Error{StatusCode: resp.StatusCode, Message: er.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
