// Package web wraps the HTTP client shared by every remote provider:
// user agent, timeouts, per-client request throttling and retries
// on transient HTTP failures.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 3
	defaultWait      = 500 * time.Millisecond
	defaultMaxWait   = 10 * time.Second
)

// HTTPError represents a non-successful HTTP response
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, e.Status, e.URL)
}

// ErrCredentials marks the errors of remote APIs refusing the configured credentials
var ErrCredentials = errors.New("invalid credentials")

// Refused wraps err into ErrCredentials when it is a 401 or 403 answer,
// only meant for APIs queried with credentials
func Refused(err error) error {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) &&
		(httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden) {
		return fmt.Errorf("%w: %v", ErrCredentials, err)
	}
	return err
}

// IsRetryableStatus reports whether a response status is worth retrying
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusServiceUnavailable,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
}

type Option func(*Client)

// WithDelay enforces a minimum delay between consecutive requests
func WithDelay(delay time.Duration) Option {
	return func(client *Client) {
		client.limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.resty.SetTimeout(timeout)
	}
}

func WithRetries(count int) Option {
	return func(client *Client) {
		client.resty.SetRetryCount(count)
	}
}

func WithHeader(key, value string) Option {
	return func(client *Client) {
		client.resty.SetHeader(key, value)
	}
}

func WithAuthToken(token string) Option {
	return func(client *Client) {
		client.resty.SetAuthToken(token)
	}
}

func New(options ...Option) *Client {
	client := &Client{
		resty: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", DefaultUserAgent).
			SetRetryCount(defaultRetries).
			SetRetryWaitTime(defaultWait).
			SetRetryMaxWaitTime(defaultMaxWait).
			AddRetryCondition(func(response *resty.Response, _ error) bool {
				return response != nil && IsRetryableStatus(response.StatusCode())
			}),
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Get issues a GET request and returns the response body,
// any status code >= 400 is turned into an *HTTPError
func (client *Client) Get(ctx context.Context, url string, query map[string]string) ([]byte, http.Header, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	response, err := client.resty.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)
	if err != nil {
		return nil, nil, err
	}

	if response.IsError() {
		return nil, response.Header(), &HTTPError{
			StatusCode: response.StatusCode(),
			Status:     http.StatusText(response.StatusCode()),
			URL:        url,
		}
	}
	return response.Body(), response.Header(), nil
}

// Close releases idle connections held by the client
func (client *Client) Close() error {
	client.resty.GetClient().CloseIdleConnections()
	return nil
}
