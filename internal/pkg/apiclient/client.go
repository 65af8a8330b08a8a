// Package apiclient talks to the LMS backend REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/app/observability/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// ErrResponseTooLarge is returned when a response body exceeds maxBodyBytes.
var ErrResponseTooLarge = errors.New("response too large")

// TokenReader yields the current credential, if any.
type TokenReader interface {
	Get() (string, bool)
}

type noTokens struct{}

func (noTokens) Get() (string, bool) { return "", false }

// Client is a thin JSON client for the backend. It never retries or caches.
// A Client is safe for concurrent use; ForTokens derives per-caller copies.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenReader
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTokens sets the credential source used for the Authorization header.
func WithTokens(t TokenReader) Option {
	return func(c *Client) { c.tokens = t }
}

func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: noTokens{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ForTokens returns a copy of c that authenticates with t.
func (c *Client) ForTokens(t TokenReader) *Client {
	cp := *c
	if t == nil {
		t = noTokens{}
	}
	cp.tokens = t
	return &cp
}

func (c *Client) BaseURL() string { return c.baseURL }

// do sends one request. body is JSON-encoded when non-nil; a 2xx response
// body is decoded into out when out is non-nil and the body is not empty.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.tokens.Get(); ok {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	l := c.logger.With(zap.String("method", method), zap.String("path", path))
	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		c.record(ctx, method, path, 0, elapsed)
		l.Warn("Backend request failed", zap.Error(err))
		return fmt.Errorf("%s %s: %w: %w", method, path, models.ErrTransport, err)
	}
	defer resp.Body.Close()
	c.record(ctx, method, path, resp.StatusCode, elapsed)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%s %s: reading body: %w: %w", method, path, models.ErrTransport, err)
	}
	if len(data) > maxBodyBytes {
		l.Warn("Backend response too large", zap.Int("limit", maxBodyBytes))
		return fmt.Errorf("%s %s: %w (limit %d bytes)", method, path, ErrResponseTooLarge, maxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, data)
		l.Debug("Backend rejected request", zap.Int("status", resp.StatusCode), zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) record(ctx context.Context, method, path string, status int, seconds float64) {
	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", routeOf(path)),
		attribute.Int("status", status),
	)
	m.BackendRequestDuration.Record(ctx, seconds, attrs)
	if status == 0 || status >= 400 {
		m.BackendErrorsTotal.Add(ctx, 1, attrs)
	}
}

// routeOf keeps the first path segment so ids don't explode metric cardinality.
func routeOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// list fetches a collection in either accepted shape.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var env ListEnvelope[T]
	if err := c.get(ctx, path, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}
