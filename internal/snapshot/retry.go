package snapshot

import (
	"context"
	"errors"
	"time"

	"aleopulse/internal/dex"
	"aleopulse/internal/explorer"
)

// withRetry retries fn with exponential backoff. Missing and malformed mapping
// values are final and returned immediately.
func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries || isFinal(err) {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}

func isFinal(err error) bool {
	return errors.Is(err, explorer.ErrNotFound) || errors.Is(err, dex.ErrMalformed)
}
