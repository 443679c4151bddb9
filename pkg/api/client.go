package api

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
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/wilhg/foodadmin/pkg/action"
	"github.com/wilhg/foodadmin/pkg/entity"
	"github.com/wilhg/foodadmin/pkg/errmodel"
)

const maxResponseBytes = 8 << 20

// Client performs Calls over HTTP and normalizes their responses.
type Client struct {
	base     *url.URL
	http     *http.Client
	timeout  time.Duration
	validate ValidateFunc
}

// Option configures the Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client. hc is used
// as given; WithTimeout does not apply to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithValidator overrides response validation. Passing nil disables it.
func WithValidator(v ValidateFunc) Option {
	return func(c *Client) { c.validate = v }
}

// NewClient constructs a Client rooted at baseURL, e.g.
// "http://localhost:3000/api/".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("api: base url is empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: unsupported scheme %q", u.Scheme)
	}
	c := &Client{
		base:     u,
		timeout:  10 * time.Second,
		validate: JSONSchemaValidator,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{
			Timeout:   c.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return c, nil
}

// Do executes call and returns its normalized response. Every failure is
// returned as *errmodel.Error.
func (c *Client) Do(ctx context.Context, call Call) (*action.Response, error) {
	if call.Endpoint == "" || call.Method == "" {
		return nil, errmodel.Validation("bad_call", "endpoint and method are required", map[string]any{"endpoint": call.Endpoint, "method": call.Method})
	}
	errCtx := map[string]any{"endpoint": call.Endpoint, "method": call.Method}

	var body io.Reader
	if call.Body != nil {
		b, err := json.Marshal(call.Body)
		if err != nil {
			return nil, errmodel.Validation("bad_body", "request body is not serializable", map[string]any{"error": err.Error()})
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, call.Method, c.base.JoinPath(call.Endpoint).String(), body)
	if err != nil {
		return nil, errmodel.Validation("bad_call", err.Error(), errCtx)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errmodel.Network("canceled", "request canceled", errCtx, ctx.Err())
		}
		return nil, errmodel.Network("request_failed", "backend unreachable", errCtx, err)
	}
	defer func() { _ = res.Body.Close() }()
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, errmodel.Network("read_failed", "reading response failed", errCtx, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errmodel.FromStatus(res.StatusCode, backendMessage(raw), errCtx)
	}
	return c.decode(call, raw, errCtx)
}

func (c *Client) decode(call Call, raw []byte, errCtx map[string]any) (*action.Response, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && call.ResponseSchema != entity.SchemaNone && c.validate != nil {
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errmodel.New(errmodel.CategoryServer, "bad_response", "response is not valid JSON", errCtx)
		}
		if doc != nil {
			schema, err := call.ResponseSchema.JSONSchema()
			if err != nil {
				return nil, errmodel.System("schema", "response schema unavailable", errCtx, err)
			}
			if err := c.validate(schema, doc); err != nil {
				errCtx["error"] = err.Error()
				return nil, errmodel.New(errmodel.CategoryServer, "invalid_response", "response does not match "+string(call.ResponseSchema), errCtx)
			}
		}
	}
	ents, result, err := entity.Normalize(call.ResponseSchema, raw)
	if err != nil {
		return nil, errmodel.New(errmodel.CategoryServer, "bad_response", err.Error(), errCtx)
	}
	if len(result) == 0 && len(call.ResultIDs) > 0 {
		result = append([]string{}, call.ResultIDs...)
	}
	return &action.Response{Entities: ents, Result: result}, nil
}

// backendMessage extracts a human message from an error body, which the
// backend sends as {"message": ...} or {"error": ...}.
func backendMessage(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "<") {
		return ""
	}
	return s
}
