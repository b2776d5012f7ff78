package collector

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"
)

const (
	defaultRetryAttempts = 3
	retryBaseDelay       = 250 * time.Millisecond
	retryMaxDelay        = 5 * time.Second
)

// StatusError reports a non-2xx answer from a source endpoint.
type StatusError struct {
	Method string
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Status)
}

// Retryable reports whether the status signals a transient server-side
// condition. Rate limiting and 5xx retry; other client errors mean the
// request itself is wrong and repeating it would not help.
func (e *StatusError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// RetryPolicy decides which source failures are worth repeating and paces
// the repeats with jittered exponential backoff.
type RetryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewRetryPolicy builds a policy allowing maxAttempts retries per request.
// Non-positive values fall back to the package default.
func NewRetryPolicy(maxAttempts int) *RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	return &RetryPolicy{
		maxAttempts: maxAttempts,
		baseDelay:   retryBaseDelay,
		maxDelay:    retryMaxDelay,
	}
}

// ShouldRetry reports whether the error from the given attempt is transient.
// Cancellation is never retried; HTTP statuses retry per StatusError; network
// errors retry only on timeout. Anything else (connection resets, WAF pages
// breaking the JSON decode) is treated as transient.
func (p *RetryPolicy) ShouldRetry(err error, attempt int) bool {
	if err == nil || attempt >= p.maxAttempts {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return true
}

// Backoff returns the wait before retrying the given attempt: half the
// capped exponential delay plus up to that much again in jitter.
func (p *RetryPolicy) Backoff(attempt int) time.Duration {
	delay := p.baseDelay << attempt
	if delay <= 0 || delay > p.maxDelay {
		delay = p.maxDelay
	}
	half := delay / 2
	return half + rand.N(half+1)
}
