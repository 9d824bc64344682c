package common

import (
	"context"
	"time"
)

// WaitWithCancellation waits for a duration or until context is cancelled.
// A non-positive duration returns immediately with ctx.Err().
func WaitWithCancellation(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
