// Package graphapi dispatches requests to the Messenger Platform Graph API.
package graphapi

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

	"messenger-client/pkg/logger"
	"messenger-client/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL    = "https://graph.facebook.com"
	DefaultAPIVersion = "v2.11"

	userAgent = "messenger-client/1.0"
)

// HTTPClient abstracts the http.Client Do method for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dispatcher sends one Graph API request. Client is the production
// implementation.
type Dispatcher interface {
	Dispatch(ctx context.Context, endpoint Endpoint, method Method, envelope Envelope) (json.RawMessage, error)
}

// Option customises the behaviour of the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used to talk to the Graph API.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL sets the Graph API base URL. Useful for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithAPIVersion sets the Graph API version path segment, e.g. "v2.11".
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.version = strings.Trim(version, "/")
		}
	}
}

// WithLogger sets the logger. Without one, nothing is logged.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables request metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client performs Graph API calls on behalf of one page. It is safe for
// concurrent use.
type Client struct {
	tokens     oauth2.TokenSource
	httpClient HTTPClient
	baseURL    string
	version    string
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a Client that authenticates every call with a token
// from tokens.
func NewClient(tokens oauth2.TokenSource, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("graphapi: token source is required")
	}

	c := &Client{
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		version:    DefaultAPIVersion,
		logger:     logger.NewNopLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Dispatch sends one request to endpoint and returns the raw response body.
// A structured platform error is returned as *APIError; any other failure to
// complete the exchange as *TransportError. Nothing is retried.
func (c *Client) Dispatch(ctx context.Context, endpoint Endpoint, method Method, envelope Envelope) (json.RawMessage, error) {
	log := c.logger.With("requestId", uuid.NewString(), "endpoint", string(endpoint), "method", string(method))
	log.Debug("Dispatching Graph API request")

	start := time.Now()
	body, status, err := c.do(ctx, endpoint, method, envelope)
	elapsed := time.Since(start)

	outcome := "success"
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		outcome = "api_error"
		log.Info("Graph API rejected request",
			"status", status,
			"code", apiErr.Code,
			"subcode", apiErr.Subcode,
			"type", apiErr.Type,
			"fbtraceId", apiErr.TraceID,
			"duration", elapsed)
	case err != nil:
		outcome = "transport_error"
		log.Info("Graph API request failed", "status", status, "error", err, "duration", elapsed)
	default:
		log.Debug("Graph API request completed", "status", status, "duration", elapsed)
	}

	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(string(endpoint), string(method), outcome).Inc()
		c.metrics.RequestDuration.WithLabelValues(string(endpoint), string(method)).Observe(elapsed.Seconds())
	}

	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint Endpoint, method Method, envelope Envelope) (json.RawMessage, int, error) {
	transportErr := func(status int, err error) error {
		return &TransportError{Method: method, Endpoint: endpoint, StatusCode: status, Err: err}
	}

	u := c.baseURL + "/" + c.version + "/" + string(endpoint)

	var br io.Reader
	if method == MethodGet {
		q, err := encodeQuery(envelope)
		if err != nil {
			return nil, 0, transportErr(0, err)
		}
		if len(q) > 0 {
			u += "?" + q.Encode()
		}
	} else if envelope != nil {
		data, err := json.Marshal(envelope)
		if err != nil {
			return nil, 0, transportErr(0, fmt.Errorf("encode envelope: %w", err))
		}
		br = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), u, br)
	if err != nil {
		return nil, 0, transportErr(0, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if br != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	tok, err := c.tokens.Token()
	if err != nil {
		return nil, 0, transportErr(0, fmt.Errorf("access token: %w", err))
	}
	tok.SetAuthHeader(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, transportErr(0, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, transportErr(res.StatusCode, fmt.Errorf("read response: %w", err))
	}

	if apiErr := decodeAPIError(b, res.StatusCode); apiErr != nil {
		return nil, res.StatusCode, apiErr
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, res.StatusCode, transportErr(res.StatusCode, fmt.Errorf("unexpected response: %s", truncate(b, 512)))
	}
	if !json.Valid(b) {
		return nil, res.StatusCode, transportErr(res.StatusCode, fmt.Errorf("malformed response body: %s", truncate(b, 512)))
	}

	return json.RawMessage(b), res.StatusCode, nil
}

// DispatchJSON is Dispatch followed by decoding the success body into
// Response. A body that does not decode is reported as *TransportError.
func DispatchJSON[Response any](ctx context.Context, d Dispatcher, endpoint Endpoint, method Method, envelope Envelope) (Response, error) {
	var resp Response

	raw, err := d.Dispatch(ctx, endpoint, method, envelope)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp, &TransportError{Method: method, Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp, nil
}

// encodeQuery turns an envelope into query parameters. Strings (including
// named string types) are sent verbatim, everything else as JSON.
func encodeQuery(envelope Envelope) (url.Values, error) {
	q := make(url.Values, len(envelope))
	for k, v := range envelope {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode query parameter %q: %w", k, err)
		}
		if len(data) > 0 && data[0] == '"' {
			var s string
			if err := json.Unmarshal(data, &s); err != nil {
				return nil, fmt.Errorf("encode query parameter %q: %w", k, err)
			}
			q.Set(k, s)
			continue
		}
		q.Set(k, string(data))
	}
	return q, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
