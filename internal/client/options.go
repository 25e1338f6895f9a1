package client

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New. Options are
// applied before the authorization wrapper is installed, so custom
// transports end up beneath it.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client timeout. Prefer
// per-request context deadlines; this is a coarse safety net bounding
// the total time spent on a single request.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client entirely. The
// authorization wrapper is still installed on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token.set(token)
		return nil
	}
}

// SetToken replaces the bearer token on a constructed client, typically
// after Login. An empty token makes subsequent requests anonymous.
func (c *Client) SetToken(token string) {
	c.token.set(token)
}
