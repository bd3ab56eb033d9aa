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
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/pdfnotes/internal/common"
	"github.com/dmitrijs2005/pdfnotes/internal/logging"
)

// TokenStore is the persisted session token as seen by the transport.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Client is the single configured HTTP client for the REST service.
//
// It attaches the persisted bearer token to every request and treats a 401
// from any endpoint as the end of the session: the token is cleared, every
// hook registered with OnUnauthorized runs, and the error is returned.
type Client struct {
	baseURL   string
	origin    string
	http      *http.Client
	tokens    TokenStore
	log       logging.Logger
	requestID func() string

	mu    sync.Mutex
	hooks []func()
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		origin:    origin(baseURL),
		http:      &http.Client{Timeout: DefaultTimeout},
		tokens:    tokens,
		log:       logging.Nop(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// OnUnauthorized registers fn to run after a 401 cleared the token.
// Hooks run synchronously, in registration order, before the failing call
// returns.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post sends body as JSON, or as-is when body is an io.Reader (set the
// content type with WithHeader).
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Download fetches raw bytes from path.
func (c *Client) Download(ctx context.Context, path string, opts ...RequestOption) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts...)
}

// DownloadURL fetches raw bytes from an absolute URL. The bearer token is
// sent, and a 401 ends the session, only when the URL is on the API's own
// scheme and host.
func (c *Client) DownloadURL(ctx context.Context, rawURL string, opts ...RequestOption) ([]byte, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil, opts...)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	data, err := c.do(ctx, method, path, reader, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, opts ...RequestOption) ([]byte, error) {
	r := request{query: make(map[string][]string), headers: make(http.Header)}
	r.headers.Set("Content-Type", "application/json")
	r.headers.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(&r)
	}

	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header = r.headers
	if body == nil {
		req.Header.Del("Content-Type")
	}

	own := origin(req.URL.String()) == c.origin
	if own {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.Warn(ctx, "token lookup failed, sending unauthenticated", "error", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}
	reqID := c.requestID()
	req.Header.Set(common.RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("%s %s: %w", method, path, context.Canceled)
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: serverMessage(data)}
	if resp.StatusCode == http.StatusUnauthorized && own {
		c.unauthorized(ctx)
	}
	return nil, apiErr
}

// unauthorized clears the token and runs the registered hooks.
func (c *Client) unauthorized(ctx context.Context) {
	if err := c.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		c.log.Error(ctx, "failed to clear token after 401", "error", err)
	}

	c.mu.Lock()
	hooks := append([]func(){}, c.hooks...)
	c.mu.Unlock()

	for _, h := range hooks {
		h()
	}
}

// origin is the lower-cased scheme://host[:port] of rawURL, or "" when it
// does not parse.
func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}

// serverMessage pulls "message" (or "error") out of a JSON error body.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
