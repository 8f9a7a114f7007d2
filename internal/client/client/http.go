package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/socialprofile/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/socialprofile/internal/logging"
	"github.com/google/uuid"
)

// DefaultTimeout bounds every request issued by HTTPClient.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

var defaultHeaders = map[string]string{
	"Content-Type": "application/json",
	"Accept":       "application/json",
}

// Request describes one call relative to the API base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    any
}

// Response is a successful (2xx) reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v any) error {
	if !r.IsJSON() {
		return fmt.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
	}
	return json.Unmarshal(r.Body, v)
}

// HTTPClient issues JSON requests against the backend REST API. It carries
// credentials in a cookie jar and bounds every call with a fixed timeout.
// There are no retries.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	jar     *PersistentJar
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

// NewHTTPClient builds a client for baseURL (e.g. http://127.0.0.1:8000/api/v1).
// When repo is non-nil, cookies are persisted to it and restored by
// RestoreCredentials.
func NewHTTPClient(baseURL string, repo metadata.Repository, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		http:    &http.Client{},
		log:     logging.Nop(),
	}

	if repo != nil {
		origin := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
		c.jar, err = NewPersistentJar(origin, repo)
		if err != nil {
			return nil, err
		}
		c.http.Jar = c.jar
	} else {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RestoreCredentials loads persisted cookies, if any.
func (c *HTTPClient) RestoreCredentials(ctx context.Context) error {
	if c.jar == nil {
		return nil
	}
	return c.jar.Restore(ctx)
}

// ClearCredentials drops all cookies, in memory and on disk.
func (c *HTTPClient) ClearCredentials(ctx context.Context) error {
	if c.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return err
		}
		c.http.Jar = jar
		return nil
	}
	return c.jar.Clear(ctx)
}

// Do issues a single request. Non-2xx replies become *APIError, an elapsed
// timeout becomes ErrTimeout and other transport failures wrap ErrUnavailable.
func (c *HTTPClient) Do(ctx context.Context, r Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	log := c.log.With("method", r.Method, "path", r.Path, "request_id", reqID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "error", err)
		return nil, transportError(ctx, err)
	}

	if c.jar != nil {
		if err := c.jar.Persist(ctx); err != nil {
			log.Warn(ctx, "persisting cookies failed", "error", err)
		}
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, statusText(resp), payload)
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: payload}, nil
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func statusText(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if strings.HasPrefix(resp.Status, prefix) {
		return strings.TrimPrefix(resp.Status, prefix)
	}
	return http.StatusText(resp.StatusCode)
}
