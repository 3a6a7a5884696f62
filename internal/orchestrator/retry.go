package orchestrator

import (
	"context"
	"time"

	"mediaforge/internal/pkg/errors"
)

// retry runs fn up to attempts times with exponential backoff, stopping
// early on non-transient errors or context cancellation. Layout computation
// never goes through here; only the engine and storage steps do.
func retry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if !isTransient(err) || i == attempts-1 {
			return err
		}

		select {
		case <-ctx.Done():
			return errors.WrapWithCode(ctx.Err(), errors.CodeTimeout, "orchestrator.retry", "canceled while backing off")
		case <-time.After(backoff << i):
		}
	}
	return err
}

// isTransient classifies retryable failures. Validation problems and
// timeouts never improve on retry; engine and storage failures might.
func isTransient(err error) bool {
	switch errors.GetCode(err) {
	case errors.CodeValidation, errors.CodeBadRequest, errors.CodeTimeout, errors.CodeUnauthorized:
		return false
	default:
		return true
	}
}
