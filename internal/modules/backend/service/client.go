package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"trade_desk/internal/models"
	"trade_desk/pkg/tracing"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
)

// CredentialStore hands out the bearer token for backend calls.
type CredentialStore interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a CredentialStore backed by a fixed token (config or env).
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("no backend token configured")
	}
	return string(t), nil
}

// APIError is any non-2xx answer. The body is kept for logs only.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the /user/instances API. It never retries; callers decide.
type Client struct {
	baseURL string
	creds   CredentialStore
	http    *http.Client
	log     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

func NewClient(baseURL string, creds CredentialStore, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type instancesResponse struct {
	Data []models.Instance `json:"data"`
}

// ListInstances fetches the full instance collection.
func (c *Client) ListInstances(ctx context.Context) (_ []models.Instance, err error) {
	span, ctx := tracing.StartSpan(ctx, "backend.ListInstances")
	defer tracing.Finish(span, &err)

	body, err := c.do(ctx, http.MethodGet, "/user/instances")
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}

	var resp instancesResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("list instances: decode: %w", err)
	}
	if resp.Data == nil {
		resp.Data = []models.Instance{}
	}
	return resp.Data, nil
}

// DeleteInstance removes one instance and, with it, all of its trade details.
func (c *Client) DeleteInstance(ctx context.Context, id string) (err error) {
	span, ctx := tracing.StartSpan(ctx, "backend.DeleteInstance")
	span.SetTag("instance_id", id)
	defer tracing.Finish(span, &err)

	if _, err := c.do(ctx, http.MethodDelete, "/user/instances/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete instance %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	if span := opentracing.SpanFromContext(ctx); span != nil {
		ext.HTTPMethod.Set(span, method)
		ext.HTTPUrl.Set(span, req.URL.String())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if span := opentracing.SpanFromContext(ctx); span != nil {
		ext.HTTPStatusCode.Set(span, uint16(resp.StatusCode))
	}

	if resp.StatusCode/100 != 2 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       b,
		}
	}
	return b, nil
}
