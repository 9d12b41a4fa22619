package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// RetryPolicy bounds how often and how long DoWithRetry waits between attempts.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryPolicy is used when a zero policy is passed.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries: 3,
	BaseDelay:  250 * time.Millisecond,
	MaxDelay:   2 * time.Second,
}

func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// DoWithRetry executes the request built by makeReq, retrying on 429 and 5xx
// with exponential backoff and jitter. A 2xx response is returned to the caller
// with its body open. Any other status is turned into an error by
// formatAPIError when it is set.
func DoWithRetry(
	ctx context.Context,
	client *http.Client,
	policy RetryPolicy,
	makeReq func(ctx context.Context) (*http.Request, error),
	formatAPIError func(status int, body []byte) error,
) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if policy == (RetryPolicy{}) {
		policy = DefaultRetryPolicy
	}

	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		req, err := makeReq(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if formatAPIError != nil {
			lastErr = formatAPIError(resp.StatusCode, body)
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		if !isRetryableStatus(resp.StatusCode) || attempt == policy.MaxRetries {
			return nil, lastErr
		}

		if err := sleepWithBackoff(ctx, policy, attempt); err != nil {
			return nil, err
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("request failed")
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sleepWithBackoff(ctx context.Context, policy RetryPolicy, attempt int) error {
	delay := policy.BaseDelay * time.Duration(1<<attempt)
	if delay > policy.MaxDelay {
		delay = policy.MaxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(delay/2) + 1))
	delay += jitter
	if delay > policy.MaxDelay {
		delay = policy.MaxDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
