// Package loop provides the single-threaded cooperative scheduler every spawner callback runs on.
//
// Tasks posted to a Loop run one at a time, in order, on the goroutine that called Run.
// Delayed tasks are re-posted onto the same queue when their timer fires, so no task ever
// runs concurrently with another one.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mediaspawn/mediaspawn/log"
)

// ErrClosed is returned when work is submitted to a closed loop.
var ErrClosed = errors.New("loop is closed")

// Timer is a pending delayed task.
type Timer interface {
	// Stop prevents the task from running and reports whether this call did so.
	Stop() bool
}

// Scheduler is what cooperative code depends on.
type Scheduler interface {
	Post(fn func())
	After(d time.Duration, fn func()) Timer
}

// Loop is the production Scheduler.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake chan struct{}
	quit chan struct{}
}

// New returns a loop that runs nothing until Run is called.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

// Post queues fn. Posting to a closed loop drops fn.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// After queues fn once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.state.CompareAndSwap(timerArmed, timerFired) {
				fn()
			}
		})
	})
	return t
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})

	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return ErrClosed
	}

	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-l.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the queue until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			l.run(fn)
		}

		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			return nil
		case <-l.wake:
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Component("loop").Errorf("task panicked: %v", r)
		}
	}()
	fn()
}

// Close stops Run and drops every queued task. It is safe to call more than once.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	l.queue = nil
	close(l.quit)
}

const (
	timerArmed int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerArmed, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}
