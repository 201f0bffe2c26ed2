package chzzk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the base URL of the public CHZZK API.
const DefaultBaseURL = "https://api.chzzk.naver.com"

// Client is a CHZZK API client. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL overrides the base URL every request is sent to.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client. Timeouts, proxies and TLS
// settings are taken from it as is.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// New creates a new CHZZK API client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// url resolves the absolute URL for req.
func (c *Client) url(req *Request) string {
	base := req.BaseURL
	if c.baseURL != "" {
		base = c.baseURL
	}
	u := base + req.Path
	if req.Query != "" {
		u += "?" + req.Query
	}
	return u
}

// Do sends req once. When auth is non-nil its cookies are sent in a single
// Cookie header. The caller must close the response body. Failures to reach
// the server are returned as *TransportError; the status code is not checked.
func (c *Client) Do(ctx context.Context, req *Request, auth *Auth) (*http.Response, error) {
	slog.Debug("sending request", slog.Any("request", req), slog.Bool("auth", auth != nil))

	u := c.url(req)

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body.Buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: u, Err: fmt.Errorf("creating request: %w", err)}
	}

	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if auth != nil {
		httpReq.Header.Set("Cookie", auth.CookieHeader())
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", req.Body.ContentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: u, Err: err}
	}
	return resp, nil
}

// Send runs one endpoint call: encode, send, and decode a 200 response.
// Any other status yields *UndefinedError carrying the status code and the
// raw body text.
func Send[T any](ctx context.Context, c *Client, endpoint Endpoint[T], auth *Auth) (T, error) {
	var zero T
	start := time.Now()

	req, err := endpoint.Encode()
	if err != nil {
		return zero, err
	}

	resp, err := c.Do(ctx, req, auth)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return zero, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &TransportError{Method: req.Method, URL: c.url(req), Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		slog.Debug("HTTP request returned error",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return zero, &UndefinedError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	result, err := endpoint.Decode(body)
	if err != nil {
		slog.Debug("HTTP response decode failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return zero, err
	}

	slog.Debug("HTTP request completed",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return result, nil
}
