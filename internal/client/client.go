// ABOUTME: HTTP client for the Ssnapify backend API
// ABOUTME: Single choke point for auth headers, error normalization, and 401 handling

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// Callers must treat it as terminal: the token store has already been cleared
// and the user has to log in again.
var ErrUnauthorized = errors.New("unauthorized: session expired or invalid")

// APIError carries a backend error response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// TokenSource provides the bearer token attached to authenticated requests.
// Clear is invoked when the backend answers 401.
type TokenSource interface {
	Token() (string, bool)
	Clear()
}

// NopTokenSource is a TokenSource with no token, for unauthenticated use.
type NopTokenSource struct{}

func (NopTokenSource) Token() (string, bool) { return "", false }
func (NopTokenSource) Clear()                {}

// Client is the API client for the Ssnapify backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a new API client with the given base URL and token source.
func New(baseURL string, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = NopTokenSource{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do builds and dispatches a request, normalizing failures. contentType is
// left empty for bodyless requests; multipart callers pass their boundary
// header explicitly. authed controls the Authorization header; the health
// endpoints suppress it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, authed bool) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.tokens.Clear()
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, c.handleErrorResponse(resp)
	}

	return resp, nil
}

// handleRequestError converts transport and context errors to user-facing ones.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot reach backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse extracts the backend "detail" message when present,
// falling back to the HTTP status text.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	detail := http.StatusText(resp.StatusCode)
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)); err == nil {
		if d := gjson.GetBytes(body, "detail"); d.Exists() && d.String() != "" {
			detail = d.String()
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, authed bool, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "", authed)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSON(resp, out)
}

// postJSON performs a POST with a JSON body, decoding the response into out
// when out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, body, contentType, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return drain(resp)
	}
	return decodeJSON(resp, out)
}

// postJSONRaw performs a POST with a JSON body and returns the raw response
// bytes for loose gjson reads.
func (c *Client) postJSONRaw(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(data), "application/json", true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

// postForm performs a POST with a form-encoded body, decoding the response
// into out when out is non-nil.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	var body io.Reader
	contentType := ""
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, body, contentType, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return drain(resp)
	}
	return decodeJSON(resp, out)
}

// deleteReq performs a DELETE request, discarding any response body.
func (c *Client) deleteReq(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil, "", true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return drain(resp)
}

// decodeJSON decodes a response body into out, requiring a JSON content type.
func decodeJSON(resp *http.Response, out any) error {
	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		return fmt.Errorf("unexpected response type %q from backend", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

func drain(resp *http.Response) error {
	_, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return err
}
