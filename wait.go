package threadex

import (
	"context"
	"time"
)

// Waiter suspends the caller for a fixed duration.
// It stands in for a "content settled" signal the page does not provide.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// WaitFunc adapts a function to the Waiter interface.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Wait calls f(ctx, d).
func (f WaitFunc) Wait(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// Sleep is a Waiter backed by the wall clock.
// It returns early with ctx.Err() if the context is canceled.
var Sleep Waiter = WaitFunc(sleep)

func sleep(ctx context.Context, d time.Duration) error {
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
