package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Service defines the two operations the sentiment service offers.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	Health(ctx context.Context) error
	Predict(ctx context.Context, sentences []string) ([]Result, error)
	BaseURL() string
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the sentiment service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
}

const (
	defaultUserAgent = "moodline/0.1"
	healthPath       = "/health"
	predictPath      = "/predict"
	maxErrorBody     = 64 << 10
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero keeps the default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger routes request logging to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for baseURL. An empty baseURL is allowed; every
// call on such a client fails with ErrNoBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		log:       discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised service URL, or "" when unset.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Health probes GET /health. Any 2xx status means the service is available.
func (c *Client) Health(ctx context.Context) error {
	resp, entry, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		statusErr := statusErrorFrom(healthPath, resp)
		entry.WithField("status", resp.StatusCode).Warn("health check rejected")
		return statusErr
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

// Predict classifies sentences via POST /predict. The returned slice is in the
// order the service sent it.
func (c *Client) Predict(ctx context.Context, sentences []string) ([]Result, error) {
	if sentences == nil {
		sentences = []string{}
	}
	body, err := json.Marshal(PredictRequest{Conversation: sentences})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, entry, err := c.do(ctx, http.MethodPost, predictPath, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		statusErr := statusErrorFrom(predictPath, resp)
		entry.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"detail": statusErr.Detail,
		}).Warn("prediction rejected")
		return nil, statusErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read response", Err: err}
	}
	if !gjson.ValidBytes(raw) || !gjson.GetBytes(raw, "results").IsArray() {
		entry.Warn("prediction response has no results array")
		return nil, fmt.Errorf("decode response: %w", ErrMalformedResponse)
	}
	var payload PredictResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w: %v", ErrMalformedResponse, err)
	}
	if len(payload.Results) != len(sentences) {
		entry.WithFields(logrus.Fields{
			"sent":     len(sentences),
			"received": len(payload.Results),
		}).Warn("result count differs from sentence count")
	}
	return payload.Results, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, logrus.FieldLogger, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("client is nil")
	}
	if c.baseURL == nil {
		return nil, nil, ErrNoBaseURL
	}

	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	entry := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"url":        reqURL.String(),
	})
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return nil, entry, &NetworkError{Op: method + " " + path, Err: err}
	}
	entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("request completed")
	return resp, entry, nil
}

func statusErrorFrom(endpoint string, resp *http.Response) *StatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Detail:     extractDetail(raw),
	}
}

// extractDetail pulls a human-readable message out of an error payload. It
// understands {"detail": "text"} and validation lists of the form
// {"detail": [{"msg": "..."}, ...]}.
func extractDetail(raw []byte) string {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return ""
	}
	detail := gjson.GetBytes(raw, "detail")
	switch {
	case detail.Type == gjson.String:
		return strings.TrimSpace(detail.String())
	case detail.IsArray():
		var msgs []string
		detail.ForEach(func(_, item gjson.Result) bool {
			text := item.String()
			if item.IsObject() {
				text = item.Get("msg").String()
			}
			if text = strings.TrimSpace(text); text != "" {
				msgs = append(msgs, text)
			}
			return true
		})
		return strings.Join(msgs, "; ")
	case detail.IsObject():
		return strings.TrimSpace(detail.Get("msg").String())
	}
	return ""
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
