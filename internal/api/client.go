// Package api is the HTTP gateway to the SkillSwap backend. It owns bearer
// auth, request correlation, response decoding and the mapping of every
// failure into the apierr taxonomy. Stores never touch net/http directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/apierr"
)

// TokenSource supplies the current bearer token. An empty string means the
// request goes out unauthenticated (register/login).
type TokenSource interface {
	Token() string
}

// Client is the gateway. One instance is shared by all stores.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	// onUnauthorized fires once per 401 response, before the AuthError is
	// returned to the caller. Session teardown is wired here from above;
	// the gateway itself holds no session state.
	onUnauthorized func()
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// SetUnauthorizedHook registers the global 401 handler.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// errBody is the error envelope every backend failure carries.
type errBody struct {
	Error string `json:"error"`
}

// do performs one round trip. body (if non-nil) is marshalled as JSON; out
// (if non-nil) receives the decoded response. Every failure comes back as an
// *apierr.Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return apierr.Validation("failed to encode request: " + err.Error())
		}
		reader = bytes.NewReader(buf)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apierr.Network("failed to build request: " + err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierr.Network("request failed: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apierr.FromStatus(resp.StatusCode, eb.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// A 2xx body that does not parse is a broken contract, not a
		// transient failure.
		return apierr.Validation("malformed response body: " + err.Error())
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
