package ai

import (
	"context"
	"time"
)

// RetryPolicy bounds generation attempts and spaces retries with
// exponential backoff. Sleep is injectable so tests can run against a
// fake clock.
type RetryPolicy struct {
	MaxAttempts int
	Delay       func(retry int) time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy: 3 attempts total, waiting 1s then 2s between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay: func(retry int) time.Duration {
			return time.Duration(1<<retry) * time.Second
		},
		Sleep: sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
