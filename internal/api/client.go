// Package api is the sole I/O path to the Cinetick service. It executes typed
// requests, classifies failures, and decodes payloads; it performs no retries
// and keeps no cache.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// The service speaks plain JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

const defaultTimeout = 15 * time.Second

// Client executes requests against one base URL. The token source and the
// unauthorized hook are provided by the session manager after construction,
// since the session itself talks through this client.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	tokenSource    func() (string, bool)
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetTokenSource registers the provider of the bearer credential attached to
// authenticated requests.
func (c *Client) SetTokenSource(fn func() (string, bool)) {
	c.tokenSource = fn
}

// SetUnauthorizedHook registers the callback invoked when the service rejects
// an authenticated request with 401, so the session can reconcile its state.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// Request describes one call to the service.
type Request struct {
	Method        string
	Path          string
	Query         url.Values
	Body          any
	Authenticated bool
}

// Do executes req and decodes the response body into T. Failures are
// classified: a malformed target yields ErrInvalidURL before any I/O, a
// non-2xx status yields ErrRequestFailed with the status attached, a schema
// mismatch yields ErrDecodingFailed, and anything else yields ErrUnknown.
func Do[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var zero T

	target, err := c.buildURL(req)
	if err != nil {
		return zero, invalidURLError(err)
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return zero, unknownError(err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return zero, unknownError(err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.New().String())

	if req.Authenticated && c.tokenSource != nil {
		if token, ok := c.tokenSource(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error("request transport failure", "method", req.Method, "path", req.Path, "error", err)
		return zero, unknownError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, unknownError(err)
	}

	c.logger.Debug("request completed",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && req.Authenticated && c.onUnauthorized != nil {
			c.onUnauthorized()
		}

		return zero, requestFailedError(resp.StatusCode)
	}

	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		c.logger.Error("response decoding failure", "method", req.Method, "path", req.Path, "error", err)
		return zero, decodingFailedError(err)
	}

	return payload, nil
}

func (c *Client) buildURL(req Request) (string, error) {
	target, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return "", err
	}

	if !target.IsAbs() || target.Host == "" {
		return "", fmt.Errorf("target %q is not an absolute URL", target)
	}

	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	return target.String(), nil
}
