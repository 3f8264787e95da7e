package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/threadkit"
)

// FetchFunc fetches a single URL.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc receives retry notices.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch up to len(delays)+1 times, sleeping delays[i]
// after the i-th failure. Invalid-input and not-found errors are returned
// immediately since another attempt cannot change them.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logf LogFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt == len(delays) {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logf != nil {
			logf("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch threadkit.ErrorCode(err) {
	case threadkit.EINVALID, threadkit.ENOTFOUND:
		return false
	}
	return true
}
