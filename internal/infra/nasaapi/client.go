// Package nasaapi is the outbound fetch helper shared by every adapter.
// One call is one GET: bounded timeout, redirects followed, status >= 400 turned into a
// typed *Error, body returned as a gjson tree so callers can probe fields without
// panicking on absent keys.
package nasaapi

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/tidwall/gjson"
)

var logger = xlog.NewPackageLogger("github.com/matiasleandrokruk/nasamini/internal/infra", "nasaapi")

const (
	// DefaultTimeout bounds each outbound call.
	DefaultTimeout = 15 * time.Second

	maxBodyBytes      = 8 << 20
	maxErrorBodyBytes = 64 << 10
	headerAccept      = "Accept"
	mimeJSON          = "application/json"
	userAgent         = "nasa-mini/1.0"
)

// Client performs single GET requests against upstream APIs.
// It holds no connection state: every call builds its own http.Client.
type Client struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTransport sets the RoundTripper used by each per-call client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// NewClient creates a Client with DefaultTimeout.
func NewClient(opts ...Option) *Client {
	c := &Client{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// GetJSON issues GET rawURL?params and returns the parsed JSON body.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values) (gjson.Result, error) {
	target, err := buildURL(rawURL, params)
	if err != nil {
		return gjson.Result{}, &Error{Kind: KindRequestError, Message: err.Error(), URL: rawURL, Err: err}
	}
	redacted := redact(target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return gjson.Result{}, &Error{Kind: KindRequestError, Message: err.Error(), URL: redacted, Err: err}
	}
	req.Header.Set(headerAccept, mimeJSON)
	req.Header.Set("User-Agent", userAgent)

	httpClient := &http.Client{Timeout: c.timeout, Transport: c.transport}

	started := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		fetchErr := classifyTransportError(err, redacted, c.timeout)
		logger.ContextKV(ctx, xlog.WARNING,
			"method", http.MethodGet,
			"url", redacted,
			"kind", fetchErr.Kind,
			"err", err.Error(),
		)
		return gjson.Result{}, fetchErr
	}
	defer resp.Body.Close() //nolint:errcheck

	logger.ContextKV(ctx, xlog.DEBUG,
		"method", http.MethodGet,
		"url", redacted,
		"status", resp.StatusCode,
		"duration", time.Since(started).String(),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return gjson.Result{}, &Error{
			Kind:    KindHTTPError,
			Status:  resp.StatusCode,
			Message: extractErrorMessage(resp.StatusCode, body),
			URL:     redacted,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return gjson.Result{}, classifyTransportError(err, redacted, c.timeout)
	}
	body = bytes.TrimSpace(body)
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &Error{
			Kind:    KindDecodeError,
			Message: "upstream returned a non-JSON body",
			URL:     redacted,
		}
	}
	return gjson.ParseBytes(body), nil
}

func buildURL(rawURL string, params url.Values) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse upstream url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("upstream url %q must be absolute", rawURL)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

// redact drops the api_key so URLs can be logged and returned in errors.
func redact(u *url.URL) string {
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
	}
	cp := *u
	cp.RawQuery = q.Encode()
	return cp.String()
}

func classifyTransportError(err error, redacted string, timeout time.Duration) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{
			Kind:    KindConnectTimeout,
			Message: "request timed out after " + timeout.String(),
			URL:     redacted,
			Err:     err,
		}
	}
	return &Error{
		Kind:    KindRequestError,
		Message: unwrapURLError(err).Error(),
		URL:     redacted,
		Err:     err,
	}
}

// unwrapURLError strips the "Get <url>:" prefix so the api key never leaks into messages.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
