// Package client is a typed HTTP client for the prediction API.
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
	"time"

	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/logger"
)

const defaultTimeout = 5 * time.Second

// maxErrorBody caps how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// Client calls the prediction API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     logger.Logger
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: defaultTimeout,
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Predict posts req to /predict. A non-empty modelType is sent as the
// model_type query parameter; the body is exactly {name, study_hours}.
func (c *Client) Predict(ctx context.Context, req model.PredictionRequest, modelType string) (model.PredictionResponse, error) {
	q := url.Values{}
	if modelType != "" {
		q.Set("model_type", modelType)
	}
	var out model.PredictionResponse
	err := c.do(ctx, "client.predict", http.MethodPost, "/predict", q, req, &out)
	return out, err
}

// Dataset fetches every row from /data.
func (c *Client) Dataset(ctx context.Context) ([]model.DataRow, error) {
	var rows []model.DataRow
	if err := c.do(ctx, "client.dataset", http.MethodGet, "/data", nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Columns fetches the dataset column names from /data/columns.
func (c *Client) Columns(ctx context.Context) ([]string, error) {
	var out struct {
		Columns []string `json:"columns"`
	}
	if err := c.do(ctx, "client.columns", http.MethodGet, "/data/columns", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Columns, nil
}

// RegressionCurve fetches the fitted curve for modelType.
func (c *Client) RegressionCurve(ctx context.Context, modelType string) ([]model.Point, error) {
	q := url.Values{}
	q.Set("model_type", modelType)
	var pts []model.Point
	if err := c.do(ctx, "client.regression_curve", http.MethodGet, "/model/regression-data", q, nil, &pts); err != nil {
		return nil, err
	}
	return pts, nil
}

// Performance fetches the per-model metrics report.
func (c *Client) Performance(ctx context.Context) (model.PerformanceReport, error) {
	var report model.PerformanceReport
	if err := c.do(ctx, "client.performance", http.MethodGet, "/model/performance", nil, nil, &report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errkind.Wrap(op, ErrConnectivity, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errkind.Wrap(op, ErrConnectivity, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed",
			logger.String("method", method),
			logger.String("url", target),
			logger.Error(err))
		return errkind.Wrap(op, ErrConnectivity, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug(ctx, "request completed",
		logger.String("method", method),
		logger.String("url", target),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errkind.Wrap(op, ErrRequest, readRequestError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errkind.Wrap(op, ErrConnectivity, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func readRequestError(resp *http.Response) *RequestError {
	rerr := &RequestError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return rerr
	}
	var body model.ErrorResponse
	if json.Unmarshal(data, &body) == nil {
		rerr.Detail = body.Detail
	}
	return rerr
}

// DetailOf returns the server-provided detail carried by err, if any.
func DetailOf(err error) string {
	var rerr *RequestError
	if errors.As(err, &rerr) {
		return rerr.Detail
	}
	return ""
}
