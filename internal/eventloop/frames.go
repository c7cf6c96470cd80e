package eventloop

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval is the fallback refresh period when no vsync wait is
// available.
const DefaultFrameInterval = time.Second / 60

// Frames turns a blocking "wait for the next display refresh" call into
// per-frame callbacks on the loop, stamped with a monotonic timestamp.
// At most one tick is queued at a time, so a busy loop skips frames instead
// of building a backlog; ticks that do run are strictly ordered.
type Frames struct {
	loop *Loop
	wait func() error

	mu      sync.Mutex
	subs    map[*frameSub]struct{}
	stop    chan struct{}
	pending atomic.Bool
	start   time.Time
}

type frameSub struct {
	fn     func(ts time.Duration)
	active bool
}

// NewFrames creates a frame source posting to loop. wait blocks until the
// next refresh; if it is nil or fails, the source sleeps DefaultFrameInterval.
func NewFrames(loop *Loop, wait func() error) *Frames {
	return &Frames{
		loop: loop,
		wait: wait,
		subs: make(map[*frameSub]struct{}),
	}
}

// Subscribe registers fn for every frame. Call it on the loop; the returned
// cancel must also be called on the loop, after which fn never runs again.
func (f *Frames) Subscribe(fn func(ts time.Duration)) (cancel func()) {
	sub := &frameSub{fn: fn, active: true}

	f.mu.Lock()
	f.subs[sub] = struct{}{}
	if f.stop == nil {
		f.stop = make(chan struct{})
		f.start = time.Now()
		go f.pump(f.stop, f.start)
	}
	f.mu.Unlock()

	return func() {
		if !sub.active {
			return
		}
		sub.active = false

		f.mu.Lock()
		delete(f.subs, sub)
		if len(f.subs) == 0 && f.stop != nil {
			close(f.stop)
			f.stop = nil
		}
		f.mu.Unlock()
	}
}

// Active returns the number of live subscriptions.
func (f *Frames) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// pump gets start by value; a later Subscribe may reset f.start.
func (f *Frames) pump(stop <-chan struct{}, start time.Time) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		if f.wait == nil || f.wait() != nil {
			select {
			case <-stop:
				return
			case <-time.After(DefaultFrameInterval):
			}
		}

		if !f.pending.CompareAndSwap(false, true) {
			continue
		}
		ts := time.Since(start)
		f.loop.Post(func() {
			f.pending.Store(false)
			f.dispatch(ts)
		})
	}
}

// dispatch runs on the loop.
func (f *Frames) dispatch(ts time.Duration) {
	f.mu.Lock()
	subs := make([]*frameSub, 0, len(f.subs))
	for s := range f.subs {
		subs = append(subs, s)
	}
	f.mu.Unlock()

	for _, s := range subs {
		if s.active {
			s.fn(ts)
		}
	}
}

// Tick delivers one frame stamped ts directly on the caller, which must be
// the loop. Used by platform pumps that observe vsync themselves.
func (f *Frames) Tick(ts time.Duration) {
	f.dispatch(ts)
}
