// Package api is the HTTP client for the load backend. It exposes the two
// operations the application needs and nothing else: list one page of loads
// and create a load.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drumkit/drumkit/internal/load"
)

// DefaultBaseURL is the deployed backend, version prefix included.
const DefaultBaseURL = "https://nnef6rysh7.execute-api.us-east-1.amazonaws.com/v2"

const (
	listPath   = "view-loads"
	createPath = "create-load"
)

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-Id"

// ListParams selects a page. Empty fields are omitted from the query string.
type ListParams struct {
	Start    string
	PageSize string
}

// Query encodes the parameters in a stable order.
func (p ListParams) Query() string {
	q := url.Values{}
	if p.Start != "" {
		q.Set("start", p.Start)
	}
	if p.PageSize != "" {
		q.Set("pageSize", p.PageSize)
	}
	return q.Encode()
}

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

type Option func(*Client)

// WithTimeout bounds each request. Zero leaves requests bounded only by ctx.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("component", "api"))
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// ListLoads fetches one page of loads.
func (c *Client) ListLoads(ctx context.Context, params ListParams) ([]load.LoadData, error) {
	const op = "view loads"
	target := c.baseURL + "/" + listPath
	if q := params.Query(); q != "" {
		target += "?" + q
	}
	body, err := c.do(ctx, op, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	var rows []load.LoadData
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, Body: body, Cause: err}
	}
	return rows, nil
}

// CreateLoad posts a new load. The response body is returned as-is.
func (c *Client) CreateLoad(ctx context.Context, payload load.Load) ([]byte, error) {
	const op = "create load"
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindEncode, Op: op, Cause: err}
	}
	body, err := c.do(ctx, op, http.MethodPost, c.baseURL+"/"+createPath, buf)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, op, method, target string, payload []byte) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	reqID := uuid.NewString()
	logger := c.logger.With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", target),
		zap.String("request_id", reqID),
	)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		logger.Error("failed to build request", zap.Error(err))
		return nil, &Error{Kind: KindTransport, Op: op, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("request failed", zap.Error(err))
		return nil, &Error{Kind: KindTransport, Op: op, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("failed to read body", zap.Int("status_code", resp.StatusCode), zap.Error(err))
		return nil, &Error{Kind: KindTransport, Op: op, StatusCode: resp.StatusCode, Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("non-success response",
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("elapsed", time.Since(started)),
		)
		return nil, &Error{Kind: KindStatus, Op: op, StatusCode: resp.StatusCode, Body: body}
	}
	logger.Debug("request done",
		zap.Int("status_code", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return body, nil
}
