package control

import (
	"context"
	"time"
)

// Clock suspends the loop between ticks.
// Sleep must return ctx.Err() as soon as ctx is done.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock sleeps on the wall clock.
type SystemClock struct{}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
