package browser

import (
	"context"
	"math/rand"
	"time"
)

// Delayer pauses between page actions.
type Delayer interface {
	Wait(ctx context.Context, min, max time.Duration) error
}

// RandomDelayer waits a uniformly random duration in [min, max].
type RandomDelayer struct{}

func (RandomDelayer) Wait(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max-min) + 1))
	}
	return Sleep(ctx, d)
}

// NoDelay returns immediately unless ctx is already done.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context, _, _ time.Duration) error {
	return ctx.Err()
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
