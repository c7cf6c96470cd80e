package eventloop

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending delayed call.
type Timer interface {
	// Stop cancels the call. It reports whether the call was still pending.
	Stop() bool
}

// Clock schedules delayed calls on the control loop.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// loopTimer fires on a runtime timer goroutine and hands fn to the loop.
// stopped is only read and written on the loop, so a Stop issued on the loop
// wins over a fire that was already posted.
type loopTimer struct {
	t       *time.Timer
	stopped bool
	fired   bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.t.Stop()
	return true
}

// AfterFunc runs fn on the loop after d. The returned Timer must be stopped
// from the loop.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if lt.stopped {
				return
			}
			lt.fired = true
			fn()
		})
	})
	return lt
}

// ManualClock is a Clock driven by Advance, for deterministic tests of timed
// behavior. Callbacks run synchronously inside Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	c    *ManualClock
	at   time.Duration
	seq  int
	fn   func()
	done bool
}

func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// AfterFunc schedules fn at Now()+d.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{c: c, at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves time forward by d, firing due timers in deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool {
			if c.timers[i].at != c.timers[j].at {
				return c.timers[i].at < c.timers[j].at
			}
			return c.timers[i].seq < c.timers[j].seq
		})

		var next *manualTimer
		live := c.timers[:0]
		for _, t := range c.timers {
			if t.done {
				continue
			}
			live = append(live, t)
			if next == nil && t.at <= end {
				next = t
			}
		}
		c.timers = live

		if next == nil {
			c.now = end
			c.mu.Unlock()
			return
		}
		next.done = true
		c.now = next.at
		c.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers not yet fired or stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}
