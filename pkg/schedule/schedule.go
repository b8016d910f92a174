package schedule

import (
	"context"
	"time"
)

// Schedule runs fn on a fixed interval until ctx is cancelled. The first
// invocation happens once the initial delay elapses; a zero delay fires
// immediately. Cancelling ctx during the delay prevents the first run.
func Schedule(ctx context.Context, fn func(), interval time.Duration, delay time.Duration) {
	go func() {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		fn()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
}

// ScheduleWithoutDelay runs fn immediately and then on every interval tick.
func ScheduleWithoutDelay(ctx context.Context, fn func(), interval time.Duration) {
	Schedule(ctx, fn, interval, 0)
}
