package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testInvoker() (*Invoker, *[]time.Duration) {
	inv := NewInvoker(zap.NewNop())
	var slept []time.Duration
	inv.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return inv, &slept
}

func TestInvoke(t *testing.T) {
	t.Run("Retries Rate Limit Until Success", func(t *testing.T) {
		inv, slept := testInvoker()

		attempts := 0
		err := inv.Invoke(context.Background(), "test", func() error {
			attempts++
			if attempts <= 2 {
				return ErrRateLimited
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Len(t, *slept, 2)
		for _, d := range *slept {
			assert.GreaterOrEqual(t, d, rateLimitWaitMin)
			assert.LessOrEqual(t, d, rateLimitWaitMax)
		}
	})

	t.Run("Other Errors Propagate", func(t *testing.T) {
		inv, slept := testInvoker()

		boom := fmt.Errorf("boom")
		attempts := 0
		err := inv.Invoke(context.Background(), "test", func() error {
			attempts++
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, attempts)
		assert.Empty(t, *slept)
	})

	t.Run("Cancelled Context Aborts The Wait", func(t *testing.T) {
		inv := NewInvoker(zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := inv.Invoke(ctx, "test", func() error {
			return ErrRateLimited
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestInvokeMutation(t *testing.T) {
	t.Run("Sleeps After Success", func(t *testing.T) {
		inv, slept := testInvoker()

		err := inv.InvokeMutation(context.Background(), "test", func() error {
			return nil
		})

		assert.NoError(t, err)
		assert.Len(t, *slept, 1)
		assert.GreaterOrEqual(t, (*slept)[0], mutationJitterMin)
		assert.LessOrEqual(t, (*slept)[0], mutationJitterMax)
	})

	t.Run("No Jitter After Failure", func(t *testing.T) {
		inv, slept := testInvoker()

		err := inv.InvokeMutation(context.Background(), "test", func() error {
			return fmt.Errorf("boom")
		})

		assert.Error(t, err)
		assert.Empty(t, *slept)
	})
}

func TestPause(t *testing.T) {
	inv, slept := testInvoker()

	err := inv.Pause(context.Background(), 5*time.Second, 15*time.Second)
	assert.NoError(t, err)
	assert.Len(t, *slept, 1)
	assert.GreaterOrEqual(t, (*slept)[0], 5*time.Second)
	assert.LessOrEqual(t, (*slept)[0], 15*time.Second)
}
