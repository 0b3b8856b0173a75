package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultTimeout = 10 * time.Second

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: bad status: %s", e.URL, e.Status)
}

type API struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	metrics *Metrics
}

type APIOption func(*API)

func WithTimeout(timeout time.Duration) APIOption {
	return func(a *API) {
		a.client = &http.Client{Timeout: timeout}
	}
}

func WithHTTPClient(client *http.Client) APIOption {
	return func(a *API) {
		a.client = client
	}
}

// WithRateLimit caps outgoing requests at r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) APIOption {
	return func(a *API) {
		a.limiter = rate.NewLimiter(r, burst)
	}
}

func WithMetrics(m *Metrics) APIOption {
	return func(a *API) {
		a.metrics = m
	}
}

func NewAPI(baseURL string, opts ...APIOption) *API {
	a := &API{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) BaseURL() string {
	return a.baseURL
}

// Get issues a GET against baseURL+path and decodes the JSON body into v.
func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	endpoint := endpointLabel(path)
	if params != nil {
		path += "?" + params.Encode()
	}

	resp, err := a.do(ctx, fmt.Sprintf("%s%s", a.baseURL, path), "application/json")
	if err != nil {
		a.metrics.ObserveRequest(endpoint, outcome(err))
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		a.metrics.ObserveRequest(endpoint, "decode_error")
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	a.metrics.ObserveRequest(endpoint, "ok")
	return nil
}

// Fetch downloads an absolute URL and returns its body and content type.
func (a *API) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	resp, err := a.do(ctx, rawURL, "*/*")
	if err != nil {
		a.metrics.ObserveRequest("asset", outcome(err))
		return nil, "", err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		a.metrics.ObserveRequest("asset", "read_error")
		return nil, "", fmt.Errorf("failed to read %s: %w", rawURL, err)
	}
	a.metrics.ObserveRequest("asset", "ok")
	return content, resp.Header.Get("Content-Type"), nil
}

func (a *API) do(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

// endpointLabel collapses "/pokemon/pikachu" to "pokemon/:key" so metric
// cardinality stays bounded.
func endpointLabel(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i] + "/:key"
	}
	return path
}

func outcome(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("status_%d", se.StatusCode)
	}
	return "transport_error"
}
