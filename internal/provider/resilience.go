package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// backoffConfig controls exponential backoff behaviour.
type backoffConfig struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errCircuitOpen = errors.New("circuit breaker open")
)

// doRequest executes the HTTP request with retries, exponential backoff, and
// the shared circuit breaker. Rate limits and 5xx responses are retried;
// authentication and not-found failures are terminal.
func (c *Client) doRequest(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := c.breaker.Execute(func() (interface{}, error) {
			resp, execErr := c.httpClient.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			switch {
			case resp.StatusCode == http.StatusUnauthorized:
				resp.Body.Close()
				return nil, ErrUnauthorized
			case resp.StatusCode == http.StatusNotFound:
				resp.Body.Close()
				return nil, ErrNotFound
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, errRateLimited
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, errServerError
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: unexpected status %d", ErrNoData, resp.StatusCode)
			}
			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		// Terminal failures are never retried.
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoData) {
			return nil, err
		}

		lastErr = err
		if attempt >= c.backoff.maxRetries {
			return nil, lastErr
		}

		delay := c.backoff.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.maxInterval > 0 && delay > c.backoff.maxInterval {
			delay = c.backoff.maxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
