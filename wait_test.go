package threadex_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/threadex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleep(t *testing.T) {
	t.Parallel()

	t.Run("waits for the duration", func(t *testing.T) {
		t.Parallel()

		begin := time.Now()
		err := threadex.Sleep.Wait(context.Background(), 20*time.Millisecond)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(begin), 20*time.Millisecond)
	})

	t.Run("returns early when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := threadex.Sleep.Wait(ctx, time.Hour)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero duration returns immediately", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, threadex.Sleep.Wait(context.Background(), 0))
	})
}
