package loader

import (
	"context"
	"sync"
)

// Dispatcher posts a callback onto the control goroutine.
type Dispatcher func(func())

// EventLoop runs posted callbacks one at a time on the goroutine calling Run.
// It plays the role of a UI thread for hosts that do not have one.
type EventLoop struct {
	queue chan func()
	stop  chan struct{}
	once  sync.Once
}

// NewEventLoop creates an event loop with a small posting buffer.
func NewEventLoop() *EventLoop {
	return &EventLoop{
		queue: make(chan func(), 16),
		stop:  make(chan struct{}),
	}
}

// Post enqueues fn. It never blocks once the loop is stopped.
func (l *EventLoop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.stop:
	}
}

// Run executes callbacks until Stop is called or ctx is done.
// A cancelled ctx stops the loop, so later Posts return immediately.
func (l *EventLoop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.stop:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Stop ends Run. Safe to call from a callback and more than once.
func (l *EventLoop) Stop() {
	l.once.Do(func() { close(l.stop) })
}
