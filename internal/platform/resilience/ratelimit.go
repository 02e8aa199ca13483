package resilience

import (
	"context"
	"sync"
	"time"
)

// IntervalLimiter enforces a fixed minimum gap between consecutive requests,
// derived from a requests-per-window quota. It is a strict serial delay, not
// a token bucket: the gap is measured from the completion of the previous
// request, recorded via Mark.
type IntervalLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewIntervalLimiter builds a limiter for a quota of requests per window,
// e.g. 20 requests per 60s yields a 3s gap.
func NewIntervalLimiter(requests int, window time.Duration) *IntervalLimiter {
	if requests < 1 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	return &IntervalLimiter{
		interval: window / time.Duration(requests),
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Interval returns the enforced gap between requests.
func (l *IntervalLimiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the interval since the last Mark has elapsed. The first
// call never blocks.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	var pause time.Duration
	if !l.last.IsZero() {
		if elapsed := l.now().Sub(l.last); elapsed < l.interval {
			pause = l.interval - elapsed
		}
	}
	l.mu.Unlock()

	if pause <= 0 {
		return ctx.Err()
	}
	return l.sleep(ctx, pause)
}

// Mark records the completion of a request. The next Wait measures its gap
// from this instant.
func (l *IntervalLimiter) Mark() {
	l.mu.Lock()
	l.last = l.now()
	l.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
