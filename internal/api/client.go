// Package api implements the typed HTTP client for the fraud-prediction
// backend: transport, interceptor pipeline, auth and domain operations.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fraudwatch-client/internal/notify"
	"fraudwatch-client/internal/observability"
	"fraudwatch-client/internal/session"
)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second
	DefaultBaseURL = "http://localhost:8000/api/v1"
)

// Client issues typed requests against the backend. Every request passes
// through the ordered request interceptors before dispatch and the
// ordered response interceptors afterwards. The client performs no
// retries; retry policy belongs to the caller or the poller.
type Client struct {
	baseURL string
	client  *http.Client
	store   *session.Store
	bus     *notify.Bus

	reqInterceptors  []RequestInterceptor
	respInterceptors []ResponseInterceptor
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithRequestInterceptor appends an extra request interceptor after the
// built-in ones.
func WithRequestInterceptor(ic RequestInterceptor) Option {
	return func(c *Client) {
		c.reqInterceptors = append(c.reqInterceptors, ic)
	}
}

// WithResponseInterceptor appends an extra response interceptor after the
// built-in ones.
func WithResponseInterceptor(ic ResponseInterceptor) Option {
	return func(c *Client) {
		c.respInterceptors = append(c.respInterceptors, ic)
	}
}

// New creates a client bound to a session store and a notification bus.
// The bearer-auth request interceptor and the unauthorized session guard
// are always installed.
func New(baseURL string, store *session.Store, bus *notify.Bus, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		store:   store,
		bus:     bus,
	}
	c.reqInterceptors = []RequestInterceptor{bearerAuth(store)}
	c.respInterceptors = []ResponseInterceptor{sessionGuard(store, bus)}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the session store the client is bound to.
func (c *Client) Store() *session.Store {
	return c.store
}

// do issues exactly one HTTP request and decodes exactly one response
// into out, or returns a *Fault. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	for _, ic := range c.reqInterceptors {
		ic(req)
	}

	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		fault := newNetworkFault(err)
		c.intercept(nil, fault)
		observability.RecordRequest(path, time.Since(start).Seconds(), string(fault.Kind))
		return fault
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		fault := newNetworkFault(fmt.Errorf("read response: %w", err))
		c.intercept(resp, fault)
		observability.RecordRequest(path, time.Since(start).Seconds(), string(fault.Kind))
		return fault
	}

	if resp.StatusCode >= 400 {
		fault := newHTTPFault(resp.StatusCode, respBody)
		c.intercept(resp, fault)
		observability.RecordRequest(path, time.Since(start).Seconds(), string(fault.Kind))
		return fault
	}

	c.intercept(resp, nil)
	observability.RecordRequest(path, time.Since(start).Seconds(), "")

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) intercept(resp *http.Response, fault *Fault) {
	for _, ic := range c.respInterceptors {
		ic(resp, fault)
	}
}
