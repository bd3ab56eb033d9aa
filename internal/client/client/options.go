package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/pdfnotes/internal/logging"
)

// DefaultTimeout bounds every request unless WithTimeout says otherwise.
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient uses a copy of hc for requests. Its Timeout is kept unless
// a later WithTimeout overrides it; hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.http = &cp
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			cp := *c.http
			cp.Timeout = d
			c.http = &cp
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRequestID overrides the X-Request-ID generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}

// RequestOption adjusts a single request.
type RequestOption func(*request)

type request struct {
	query   url.Values
	headers http.Header
}

// WithQuery adds query parameters. Empty values are skipped.
func WithQuery(q url.Values) RequestOption {
	return func(r *request) {
		for k, vs := range q {
			for _, v := range vs {
				if v != "" {
					r.query.Add(k, v)
				}
			}
		}
	}
}

// WithHeader sets (overrides) a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) { r.headers.Set(key, value) }
}
