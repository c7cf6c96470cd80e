// Package eventloop provides the single-threaded control loop that owns all
// mutable overlay and viewport state. Hook callbacks, timers and frame ticks
// never touch that state directly; they post closures that the loop runs in
// order.
package eventloop

import (
	"context"
	"log"
	"sync"
)

// Loop is an unbounded FIFO of closures run on one goroutine (or one OS
// thread, when a platform message pump drives it through Drain).
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	waker  func()
	wake   chan struct{}
	closed bool
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post enqueues fn. It is safe to call from any goroutine, including OS
// callback threads; it never blocks on the loop.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	waker := l.waker
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	if waker != nil {
		waker()
	}
}

// SetWaker registers fn to be called after every Post. A platform message
// pump uses it to wake its thread and call Drain there.
func (l *Loop) SetWaker(fn func()) {
	l.mu.Lock()
	l.waker = fn
	l.mu.Unlock()
}

// Drain runs queued closures until the queue is empty and returns how many
// ran. Closures posted while draining run in the same call.
func (l *Loop) Drain() int {
	n := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return n
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			l.run(fn)
			n++
		}
	}
}

// Run drains the loop on the calling goroutine until ctx is done. Queued
// work is dropped once the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close discards pending work and rejects further posts.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()
}

// Pending returns the number of queued closures.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// run executes fn and keeps the loop alive if it panics.
func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Loop: Recovered from panic in posted work: %v", r)
		}
	}()
	fn()
}
