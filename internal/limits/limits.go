// Package limits bounds how many worker subprocesses run at once and how
// fast new dispatches may start. The per-call memory bound lives in the
// driver; this is the process-wide guard in front of it.
package limits

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Limiter gates dispatches with a concurrency semaphore and an optional rate
// limit. A zero value for either bound disables that bound.
type Limiter struct {
	sem  *semaphore.Weighted
	rate *rate.Limiter
}

// New creates a Limiter. maxConcurrent <= 0 disables the semaphore;
// ratePerSecond <= 0 disables the rate limit.
func New(maxConcurrent int64, ratePerSecond float64, burst int) *Limiter {
	l := &Limiter{}
	if maxConcurrent > 0 {
		l.sem = semaphore.NewWeighted(maxConcurrent)
	}
	if ratePerSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		l.rate = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	}
	return l
}

// Acquire blocks until a dispatch slot is available or ctx is done. The
// returned release function must be called exactly once when the subprocess
// has finished.
func (l *Limiter) Acquire(ctx context.Context) (func(), error) {
	if l == nil {
		return func() {}, nil
	}
	if l.rate != nil {
		if err := l.rate.Wait(ctx); err != nil {
			return nil, fmt.Errorf("dispatch rate limit: %w", err)
		}
	}
	if l.sem == nil {
		return func() {}, nil
	}
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("dispatch concurrency limit: %w", err)
	}
	return func() { l.sem.Release(1) }, nil
}
