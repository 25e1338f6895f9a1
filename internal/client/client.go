// Package client is a typed HTTP SDK for the najdeno API. It wraps the
// JSON endpoints in Go methods, normalizes base URLs, and maps HTTP
// failures onto a small set of error kinds callers can branch on.
package client

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

	"github.com/kelseyhightower/envconfig"
)

// DefaultBaseURL is used when no server address is configured.
const DefaultBaseURL = "http://localhost:8080"

// Client talks to a najdeno server. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   *tokenTransport
}

// envSettings holds the environment-derived configuration for FromEnv.
// The resulting variable names are NAJDENO_BASE_URL, NAJDENO_HTTP_TIMEOUT,
// and NAJDENO_TOKEN.
type envSettings struct {
	BaseURL     string        `envconfig:"BASE_URL"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT"`
	Token       string        `envconfig:"TOKEN"`
}

// New constructs a Client for the given server address. The address may
// be given with or without a trailing /api segment; both point at the
// same server. An empty address falls back to DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: normalizeBaseURL(baseURL),
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   &tokenTransport{},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Install the token wrapper last so every configured transport sits
	// beneath it.
	c.token.base = c.http.Transport
	if c.token.base == nil {
		c.token.base = http.DefaultTransport
	}
	c.http.Transport = c.token

	return c, nil
}

// FromEnv constructs a Client configured from NAJDENO_* environment
// variables. Unset variables fall back to the defaults used by New.
func FromEnv(opts ...Option) (*Client, error) {
	var s envSettings
	if err := envconfig.Process("najdeno", &s); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if s.HTTPTimeout > 0 {
		opts = append(opts, WithHTTPTimeout(s.HTTPTimeout))
	}
	if s.Token != "" {
		opts = append(opts, WithToken(s.Token))
	}
	return New(s.BaseURL, opts...)
}

// normalizeBaseURL trims trailing slashes and any /api suffix, then
// appends exactly one, so "host", "host/" and "host/api" are equivalent.
func normalizeBaseURL(raw string) string {
	base := strings.TrimRight(raw, "/")
	for strings.HasSuffix(base, "/api") {
		base = strings.TrimRight(strings.TrimSuffix(base, "/api"), "/")
	}
	return base + "/api"
}

// endpoint joins path segments onto the base URL, escaping each one.
func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// do sends a request with an optional JSON body and decodes the JSON
// response into out when the server reports success. Remote failures
// are turned into *Error with the server's message when one is present.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return transportError(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return transportError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var remote struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&remote)
		if remote.Error == "" {
			remote.Error = http.StatusText(resp.StatusCode)
		}
		return remoteError(resp.StatusCode, remote.Error)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return transportError(fmt.Errorf("decoding response: %w", err))
		}
	}
	return nil
}

// tokenTransport adds the Authorization header when a token is set. The
// token is read per request, so SetToken affects in-flight clients.
type tokenTransport struct {
	base http.RoundTripper

	mu    sync.RWMutex
	token string
}

func (t *tokenTransport) set(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.RLock()
	token := t.token
	t.mu.RUnlock()

	if token == "" {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}
