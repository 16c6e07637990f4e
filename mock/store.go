package mock

import (
	"context"
	"time"

	"github.com/fwojciec/threadex"
)

// Compile-time interface verification.
var (
	_ threadex.ThreadStore = (*ThreadStore)(nil)
	_ threadex.Waiter      = (*Waiter)(nil)
)

// ThreadStore is a mock implementation of threadex.ThreadStore.
type ThreadStore struct {
	SaveFn func(ctx context.Context, filename, content string) error
}

func (s *ThreadStore) Save(ctx context.Context, filename, content string) error {
	return s.SaveFn(ctx, filename, content)
}

// Waiter is a mock implementation of threadex.Waiter.
type Waiter struct {
	WaitFn func(ctx context.Context, d time.Duration) error
}

func (w *Waiter) Wait(ctx context.Context, d time.Duration) error {
	return w.WaitFn(ctx, d)
}
