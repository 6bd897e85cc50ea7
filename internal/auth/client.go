package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// Options configures the HTTP client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    uint
	RetryDelay time.Duration
}

// Client talks to the remote auth service over HTTP. Only one submission
// may be in flight at a time.
type Client struct {
	httpClient *resty.Client
	retries    uint
	retryDelay time.Duration
	inFlight   atomic.Bool
}

var _ Service = (*Client)(nil)

func NewClient(opts Options) *Client {
	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("ngrok-skip-browser-warning", "true")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &Client{
		httpClient: client,
		retries:    opts.Retries,
		retryDelay: opts.RetryDelay,
	}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Login validates req and posts it to /auth/login. Transient failures are
// retried.
func (c *Client) Login(ctx context.Context, req LoginRequest) (Response, error) {
	if err := ValidateLogin(req); err != nil {
		return Response{}, err
	}
	return c.submit(ctx, "/auth/login", req, c.retries)
}

// Signup validates req and posts it to /auth/signup. Signup creates an
// account, so it is sent exactly once.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (Response, error) {
	if err := ValidateSignup(req); err != nil {
		return Response{}, err
	}
	return c.submit(ctx, "/auth/signup", req, 0)
}

func (c *Client) submit(ctx context.Context, path string, body any, retries uint) (Response, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Response{}, ErrSubmitInProgress
	}
	defer c.inFlight.Store(false)

	var result Response
	err := retry.Do(
		func() error {
			r, err := c.post(ctx, path, body)
			if err != nil {
				return err
			}
			result = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(retries+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if !errors.Is(err, ErrConnectivity) {
				err = fmt.Errorf("%w: %w", ErrConnectivity, err)
			}
		}
		return Response{}, err
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (Response, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&Response{}).
		SetError(&Response{}).
		SetForceResponseContentType("application/json").
		Post(path)
	if err != nil {
		// A reply arrived but its body was not JSON.
		if response != nil && response.StatusCode() >= http.StatusBadRequest {
			return Response{}, &ServerError{Status: response.StatusCode()}
		}
		if response != nil && response.IsSuccess() {
			return Response{}, nil
		}
		return Response{}, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}

	if !response.IsSuccess() {
		serr := &ServerError{Status: response.StatusCode()}
		if body, ok := response.Error().(*Response); ok && body != nil {
			serr.Message = body.Message
		}
		return Response{}, serr
	}

	if r, ok := response.Result().(*Response); ok && r != nil {
		return *r, nil
	}
	return Response{}, nil
}

// isRetryable reports whether a failed submission is worth repeating:
// transport failures and gateway errors are, client errors are not.
func isRetryable(err error) bool {
	var serr *ServerError
	if errors.As(err, &serr) {
		switch serr.Status {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	return errors.Is(err, ErrConnectivity)
}
