// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Defaults applied by RetryPolicy.WithDefaults. GitHub code search
// signals rate limiting with HTTP 403; its secondary-rate-limit window
// resets on a fixed schedule, so the delay is fixed rather than
// exponential.
const (
	DefaultMaxAttempts = 10
	DefaultDelay       = 60 * time.Second
	DefaultRetryStatus = http.StatusForbidden
)

// RetryPolicy controls how DoWithRetry reacts to rate-limit responses.
// The zero value means "use the defaults"; MaxAttempts of 1 disables
// retrying entirely.
type RetryPolicy struct {
	// MaxAttempts is the total number of requests, first try included.
	MaxAttempts int

	// Delay is the fixed wait between attempts.
	Delay time.Duration

	// RetryStatus is the HTTP status treated as a retryable
	// rate-limit signal.
	RetryStatus int
}

// WithDefaults fills unset fields with the package defaults.
func (p RetryPolicy) WithDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Delay <= 0 {
		p.Delay = DefaultDelay
	}
	if p.RetryStatus == 0 {
		p.RetryStatus = DefaultRetryStatus
	}
	return p
}

// DoWithRetry executes an HTTP request and retries on the policy's
// rate-limit status with a fixed delay between attempts. On each
// rate-limited response the body is drained and closed before sleeping.
// If the context is cancelled during a backoff wait the function
// returns ctx.Err(). After exhausting the attempt budget the last
// rate-limited response is returned so the caller can inspect it.
// Transport errors are returned immediately; they are not retried.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, policy RetryPolicy) (*http.Response, error) {
	policy = policy.WithDefaults()

	for attempt := 1; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != policy.RetryStatus {
			return resp, nil
		}

		// Exhausted the budget — return the rate-limited response as-is.
		if attempt >= policy.MaxAttempts {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(policy.Delay):
		}
	}
}
