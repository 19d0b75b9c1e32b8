// Package poller repeatedly probes a condition on a cooperative scheduler until it holds.
//
// A wait never blocks: a failed probe re-submits the wait to the scheduler after the
// interval and yields. Many waits may watch the same condition; each fires its own callback.
package poller

import (
	"errors"
	"sync"
	"time"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/loop"
)

// ErrTimeout is passed to the timeout callback of a bounded wait.
var ErrTimeout = errors.New("dependency did not become ready in time")

type options struct {
	interval  time.Duration
	timeout   time.Duration
	onTimeout func(error)
}

// Option configures AwaitReady.
type Option func(*options)

// WithInterval sets the delay between probes. Non positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithTimeout bounds the wait. Once d of polling has elapsed without success, onTimeout
// receives ErrTimeout and polling stops. A zero d keeps the wait unbounded.
func WithTimeout(d time.Duration, onTimeout func(error)) Option {
	return func(o *options) {
		o.timeout = d
		o.onTimeout = onTimeout
	}
}

// Wait is one pending AwaitReady call.
type Wait struct {
	s       loop.Scheduler
	probe   func() bool
	onReady func()
	opts    options

	mu       sync.Mutex
	attempts int
	finished bool
	timer    loop.Timer
	done     chan struct{}
}

// AwaitReady probes immediately on the calling turn and calls onReady exactly once when probe returns true.
func AwaitReady(s loop.Scheduler, probe func() bool, onReady func(), opts ...Option) *Wait {
	o := options{interval: constant.PollInterval}
	for _, opt := range opts {
		opt(&o)
	}

	w := &Wait{
		s:       s,
		probe:   probe,
		onReady: onReady,
		opts:    o,
		done:    make(chan struct{}),
	}
	w.check()
	return w
}

func (w *Wait) check() {
	w.mu.Lock()
	if w.finished {
		w.mu.Unlock()
		return
	}
	w.attempts++
	elapsed := time.Duration(w.attempts-1) * w.opts.interval
	w.mu.Unlock()

	if w.probe() {
		if w.finish() {
			w.onReady()
		}
		return
	}

	if w.opts.timeout > 0 && elapsed >= w.opts.timeout {
		if w.finish() && w.opts.onTimeout != nil {
			w.opts.onTimeout(ErrTimeout)
		}
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.finished {
		w.timer = w.s.After(w.opts.interval, w.check)
	}
}

func (w *Wait) finish() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return false
	}
	w.finished = true
	close(w.done)
	return true
}

// Cancel stops polling without calling either callback. It reports whether the wait was still pending.
func (w *Wait) Cancel() bool {
	if !w.finish() {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	return true
}

// Attempts returns how many times the probe ran.
func (w *Wait) Attempts() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attempts
}

// Done is closed when the wait succeeded, timed out or was cancelled.
func (w *Wait) Done() <-chan struct{} {
	return w.done
}
