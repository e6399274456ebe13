package main

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/logging"
)

// retryDelay is the base backoff between caller retries.
var retryDelay = 2 * time.Second

// withRetries runs fn once plus up to retries more times while the reasoning
// service is unavailable. Contract violations and bad input are not retried.
func withRetries[T any](ctx context.Context, retries int, fn func() (T, error)) (T, error) {
	if retries < 0 {
		retries = 0
	}
	logger := logging.New("retry")
	return retry.DoWithData(
		fn,
		retry.Context(ctx),
		retry.Attempts(uint(retries+1)),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, extract.ErrServiceUnavailable)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("reasoning service unavailable, retrying", "attempt", n+1, "error", err)
		}),
	)
}
