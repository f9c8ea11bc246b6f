package watcher

import (
	"context"
	"sync"
)

// limiter runs jobs on goroutines, at most cap(slots) at a time.
type limiter struct {
	slots chan struct{}
	wg    sync.WaitGroup
}

func newLimiter(capacity int) *limiter {
	return &limiter{slots: make(chan struct{}, capacity)}
}

// goLimited blocks until a slot is free, then runs fn on its own goroutine.
// It returns ctx.Err() without running fn if ctx ends first.
func (l *limiter) goLimited(ctx context.Context, fn func()) error {
	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer func() { <-l.slots }()
		fn()
	}()
	return nil
}

// wait blocks until every started job has returned.
func (l *limiter) wait() {
	l.wg.Wait()
}
