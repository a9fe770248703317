// Package api implements the HTTP client for the storefront backend. It
// owns the wire contract: the response envelope, error mapping, and the
// conversion of raw records into domain types via the catalog normalizer.
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

	"github.com/smartg5/storefront/internal/catalog"
	"github.com/smartg5/storefront/internal/domain"
	"github.com/smartg5/storefront/internal/telemetry"
)

// Client talks to the storefront REST API. All methods are safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	normalizer *catalog.Normalizer
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

// Options configures optional Client collaborators.
type Options struct {
	// HTTPClient overrides the default client (30s timeout).
	HTTPClient *http.Client

	// Logger receives request/error logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics, when set, records API latency and error counts.
	Metrics *telemetry.Metrics
}

// NewClient creates a Client for the API at baseURL (e.g.,
// "https://smartg5.com/api").
func NewClient(baseURL string, normalizer *catalog.Normalizer, opts Options) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	if normalizer == nil {
		return nil, fmt.Errorf("normalizer is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		normalizer: normalizer,
		logger:     logger,
		metrics:    opts.Metrics,
	}, nil
}

// envelope is the standard response wrapper. Some endpoints return a bare
// JSON array instead; decodeInto accepts both and nothing else.
type envelope struct {
	Status  *bool           `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues one request and returns the response body. endpoint is the
// metrics label; path is relative to the base URL. Non-2xx statuses map to
// domain errors: 404 to ENOTFOUND, everything else to EUNAVAILABLE.
func (c *Client) do(ctx context.Context, method, endpoint, path string, query url.Values, payload any) ([]byte, error) {
	op := "api." + endpoint

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to encode request")
		}
		body = bytes.NewReader(encoded)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.countError(endpoint)
		c.logger.Warn("api request failed", "endpoint", endpoint, "error", err)
		return nil, domain.Unavailable(err, op, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countError(endpoint)
		return nil, domain.Unavailable(err, op, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.countError(endpoint)
		msg := serverMessage(raw)
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		c.logger.Warn("api returned error status",
			"endpoint", endpoint, "status", resp.StatusCode, "message", msg)
		if resp.StatusCode == http.StatusNotFound {
			return nil, &domain.Error{Code: domain.ENOTFOUND, Op: op, Message: msg}
		}
		return nil, &domain.Error{Code: domain.EUNAVAILABLE, Op: op, Message: msg}
	}

	return raw, nil
}

// decodeInto unwraps a response body into out. Two shapes are accepted:
// the {"status", "data", "message"} envelope, and a bare JSON array. An
// envelope with status=false is a failed call even under HTTP 200.
func decodeInto(op string, raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return domain.Errorf(domain.EUNAVAILABLE, op, "empty response body")
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return domain.WrapError(err, domain.EUNAVAILABLE, op, "malformed response")
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return domain.WrapError(err, domain.EUNAVAILABLE, op, "malformed response")
	}
	if env.Status != nil && !*env.Status {
		msg := env.Message
		if msg == "" {
			msg = "request rejected"
		}
		return domain.Errorf(domain.EUNAVAILABLE, op, "%s", msg)
	}
	if len(env.Data) == 0 || string(bytes.TrimSpace(env.Data)) == "null" {
		// Not enveloped at all: some endpoints return the payload object
		// directly with no wrapper.
		if env.Status == nil {
			if err := json.Unmarshal(trimmed, out); err != nil {
				return domain.WrapError(err, domain.EUNAVAILABLE, op, "malformed response")
			}
			return nil
		}
		return domain.Errorf(domain.EUNAVAILABLE, op, "response missing data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return domain.WrapError(err, domain.EUNAVAILABLE, op, "malformed response data")
	}
	return nil
}

func (c *Client) countError(endpoint string) {
	if c.metrics != nil {
		c.metrics.APIRequestErrors.WithLabelValues(endpoint).Inc()
	}
}

// serverMessage pulls the backend's message field out of an error body,
// tolerating both enveloped and flat shapes.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
