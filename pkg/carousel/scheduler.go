package carousel

import (
	"context"
	"time"
)

// Scheduler runs fn once after d. The returned stop func cancels it.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

// TimerScheduler schedules on real wall-clock timers.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Run starts c and keeps it running until ctx is cancelled.
func Run(ctx context.Context, c *Carousel) {
	c.Start()
	<-ctx.Done()
	c.Stop()
}
