package api

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Backoff and jitter windows. The remote limiter bans aggressively, so the
// backoff window is measured in minutes and every successful mutation is
// followed by a short randomized pause before the next call.
const (
	rateLimitWaitMin = 2 * time.Minute
	rateLimitWaitMax = 5 * time.Minute

	mutationJitterMin = 1 * time.Second
	mutationJitterMax = 4 * time.Second
)

// Invoker executes remote calls under the rate-limit retry policy.
// Rate-limit failures are retried forever with a randomized multi-minute
// wait; every other error propagates to the caller unmodified.
type Invoker struct {
	log *zap.Logger

	// sleep is swappable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewInvoker creates an invoker bound to the given logger.
func NewInvoker(log *zap.Logger) *Invoker {
	return &Invoker{
		log:   log,
		sleep: sleepContext,
	}
}

// Invoke runs fn, retrying indefinitely while it fails with ErrRateLimited.
// Any other error is returned as-is. Context cancellation aborts the wait.
func (i *Invoker) Invoke(ctx context.Context, op string, fn func() error) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return err
		}

		wait := i.uniform(rateLimitWaitMin, rateLimitWaitMax)
		i.log.Warn("Rate limited by remote, backing off",
			zap.String("op", op),
			zap.Duration("wait", wait),
		)
		if err := i.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// InvokeMutation runs fn under the same retry policy and, on success, sleeps
// a short randomized delay to avoid tripping the limiter on the next call.
func (i *Invoker) InvokeMutation(ctx context.Context, op string, fn func() error) error {
	if err := i.Invoke(ctx, op, fn); err != nil {
		return err
	}
	return i.sleep(ctx, i.uniform(mutationJitterMin, mutationJitterMax))
}

// Pause sleeps a randomized duration within [min, max]. Drivers use this
// between coarse phases (the remote limiter keys on burstiness, not volume).
func (i *Invoker) Pause(ctx context.Context, min, max time.Duration) error {
	return i.sleep(ctx, i.uniform(min, max))
}

func (i *Invoker) uniform(min, max time.Duration) time.Duration {
	return min + rand.N(max-min)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
