package clock

import (
	"context"
	"time"

	"go.uber.org/ratelimit"
)

// Ticker paces a loop. Tick blocks until the next tick or until ctx is done.
type Ticker interface {
	Tick(ctx context.Context) error
	Stop()
}

// Interval is a Ticker backed by time.Ticker. The first Tick returns immediately,
// later ones wait for the next period boundary; missed ticks are dropped.
type Interval struct {
	ticker  *time.Ticker
	started bool
}

// NewInterval returns an Interval firing every d.
func NewInterval(d time.Duration) *Interval {
	return &Interval{ticker: time.NewTicker(d)}
}

// Tick waits for the next tick.
func (i *Interval) Tick(ctx context.Context) error {
	if !i.started {
		i.started = true
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-i.ticker.C:
		return nil
	}
}

// Stop releases the underlying timer.
func (i *Interval) Stop() {
	i.ticker.Stop()
}

// Limiter is a Ticker that lets one caller through per period using a leaky bucket without slack.
type Limiter struct {
	limiter ratelimit.Limiter
}

// NewLimiter returns a Limiter allowing one tick per period.
func NewLimiter(period time.Duration) *Limiter {
	return &Limiter{limiter: ratelimit.New(1, ratelimit.Per(period), ratelimit.WithoutSlack)}
}

// Tick blocks until the next slot. Cancellation is checked before and after waiting.
func (l *Limiter) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.limiter.Take()
	return ctx.Err()
}

// Stop is a no-op; Limiter holds no timers.
func (l *Limiter) Stop() {}
