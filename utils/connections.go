package utils

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
)

var RetryOnStatus = []int{502, 503, 504, 429}

func CreateHttpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewRetryBackoff builds the exponential backoff used for
// outbound calls: up to maxRetries retries, cancelled with ctx.
// Zero retries means a single attempt.
func NewRetryBackoff(ctx context.Context, maxRetries uint64) backoff.BackOff {
	// backoff.WithMaxRetries treats 0 as unlimited
	var policy backoff.BackOff = &backoff.StopBackOff{}
	if maxRetries > 0 {
		retryBackoff := backoff.NewExponentialBackOff()
		retryBackoff.InitialInterval = 200 * time.Millisecond
		retryBackoff.MaxElapsedTime = 30 * time.Second
		policy = backoff.WithMaxRetries(retryBackoff, maxRetries)
	}

	return backoff.WithContext(policy, ctx)
}

func IsRetryableStatus(status int) bool {
	for _, s := range RetryOnStatus {
		if s == status {
			return true
		}
	}
	return false
}
