package upstream

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

	"go-hris-console/internal/shared/contextutil"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	PayrollBasePath        = "/api/v1/payroll"
	DataManagementBasePath = "/api/v1/data-management"
)

// Client talks to the HR backend REST API. It never retries: every failure
// is returned once to the caller.
type Client struct {
	baseURL string
	rest    *resty.Client
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream: missing base url")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.New("upstream: invalid base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("upstream: invalid base url scheme")
	}
	if u.Host == "" {
		return nil, errors.New("upstream: invalid base url host")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	logger := zap.L().Named("upstream")

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())
	// 2xx with an empty body (204, bare 200) decodes to nothing.
	rest.JSONUnmarshal = func(data []byte, v interface{}) error {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return json.Unmarshal(data, v)
	}

	return &Client{
		baseURL: baseURL,
		rest:    rest,
		logger:  logger,
	}, nil
}

// WithTransport swaps the round tripper, mostly for tests.
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	c.rest.SetTransport(rt)
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) PutJSON(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Stream performs a GET and hands back the raw body for passthrough
// downloads. The caller must close the returned body.
func (c *Client) Stream(ctx context.Context, path string, query url.Values) (io.ReadCloser, string, error) {
	res, err := c.request(ctx, query).
		SetDoNotParseResponse(true).
		Get(path)
	if err != nil {
		return nil, "", &TransportError{Err: err}
	}

	body := res.RawBody()
	if !res.IsSuccess() {
		defer body.Close()
		payload, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return nil, "", newHTTPError(res.StatusCode(), res.Header().Get("Content-Type"), payload)
	}

	return body, res.Header().Get("Content-Type"), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	req := c.request(ctx, query)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		// backend sometimes omits the header; the payload is JSON regardless
		req.SetResult(out).ForceContentType("application/json")
	}

	log := contextutil.GetLogger(ctx, c.logger)

	res, err := req.Execute(method, path)
	if err != nil {
		if res == nil || res.RawResponse == nil {
			log.Warn("upstream request failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err),
			)
			return &TransportError{Err: err}
		}
		if res.IsSuccess() {
			return fmt.Errorf("upstream: decode %s %s: %w", method, path, err)
		}
	}

	log.Debug("upstream request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode()),
		zap.Duration("elapsed", res.Time()),
	)

	if !res.IsSuccess() {
		return newHTTPError(res.StatusCode(), res.Header().Get("Content-Type"), res.Body())
	}
	return nil
}

func (c *Client) request(ctx context.Context, query url.Values) *resty.Request {
	req := c.rest.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		req.SetHeader("X-Request-ID", rid)
	}
	return req
}
