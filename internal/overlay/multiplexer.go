package overlay

import (
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"inputoverlay/internal/eventloop"
	"inputoverlay/internal/geometry"
	"inputoverlay/internal/hotkey"
	"inputoverlay/internal/input"
)

// Options configures a Multiplexer.
type Options struct {
	Loop    Poster
	Clock   eventloop.Clock
	Window  Window
	Hotkeys *hotkey.Table

	// OnAction runs on the loop for every triggered hotkey
	OnAction func(hotkey.Action)
	// OnMove runs on the loop with the latest cursor position; bursts of
	// moves between two loop turns are coalesced
	OnMove func(geometry.Point)

	DragButton    input.Button
	DragThreshold int
	AllowMove     bool
	ClearDelays   [HistorySize]time.Duration
	WheelRevert   time.Duration
}

type modalHolder struct {
	sink ModalSink
}

// Multiplexer is the input.Handler behind the global hooks. Hook-thread
// methods only read atomic snapshots and the hook-owned drag machine; every
// other effect is posted to the control loop.
type Multiplexer struct {
	loop     Poster
	window   Window
	hotkeys  *hotkey.Table
	onAction func(hotkey.Action)
	onMove   func(geometry.Point)

	// Loop-owned
	history *KeyHistory
	glyph   *MouseGlyph

	// Hook-owned
	drag *DragMachine

	allowMove   atomic.Bool
	bounds      atomic.Pointer[geometry.Rect]
	modal       atomic.Pointer[modalHolder]
	lastMove    atomic.Pointer[geometry.Point]
	movePending atomic.Bool

	warn rate.Sometimes
}

// NewMultiplexer creates the hook handler. The window starts click-through
// with empty bounds until SetWindowBounds is called.
func NewMultiplexer(opts Options) *Multiplexer {
	delays := opts.ClearDelays
	if delays == ([HistorySize]time.Duration{}) {
		delays = DefaultClearDelays
	}
	button := opts.DragButton
	if button == input.ButtonNone {
		button = input.ButtonRight
	}

	m := &Multiplexer{
		loop:     opts.Loop,
		window:   opts.Window,
		hotkeys:  opts.Hotkeys,
		onAction: opts.OnAction,
		onMove:   opts.OnMove,
		drag:     NewDragMachine(button, opts.DragThreshold),
		warn:     rate.Sometimes{Interval: time.Second},
	}
	clock := opts.Clock
	if clock == nil {
		if c, ok := opts.Loop.(eventloop.Clock); ok {
			clock = c
		}
	}
	if m.hotkeys == nil {
		m.hotkeys = hotkey.NewTable(nil)
	}
	m.history = NewKeyHistory(clock, delays, func(l Labels) {
		if m.window != nil {
			m.window.SetLabels(l)
		}
	})
	m.glyph = NewMouseGlyph(clock, opts.WheelRevert, func(g string) {
		if m.window != nil {
			m.window.SetGlyph(g)
		}
	})
	m.allowMove.Store(opts.AllowMove)
	m.bounds.Store(&geometry.Rect{})
	return m
}

// History returns the key label history. Use it only on the loop.
func (m *Multiplexer) History() *KeyHistory { return m.history }

// Glyph returns the mouse glyph. Use it only on the loop.
func (m *Multiplexer) Glyph() *MouseGlyph { return m.glyph }

// Hotkeys returns the binding table.
func (m *Multiplexer) Hotkeys() *hotkey.Table { return m.hotkeys }

// SetAllowMove enables or pins window dragging. Safe from any goroutine.
func (m *Multiplexer) SetAllowMove(v bool) { m.allowMove.Store(v) }

// AllowMove reports whether window dragging is enabled.
func (m *Multiplexer) AllowMove() bool { return m.allowMove.Load() }

// SetWindowBounds publishes the overlay window's current screen bounds. An
// empty rectangle (hidden window) never contains a press.
func (m *Multiplexer) SetWindowBounds(r geometry.Rect) {
	m.bounds.Store(&r)
}

// WindowBounds returns the last published bounds.
func (m *Multiplexer) WindowBounds() geometry.Rect {
	return *m.bounds.Load()
}

// SetModal routes input to s first until ClearModal(s).
func (m *Multiplexer) SetModal(s ModalSink) {
	m.modal.Store(&modalHolder{sink: s})
}

// ClearModal removes s if it is still the active sink.
func (m *Multiplexer) ClearModal(s ModalSink) {
	h := m.modal.Load()
	if h != nil && h.sink == s {
		m.modal.CompareAndSwap(h, nil)
	}
}

// HandleKey classifies a key event on the hook thread. A key-down either
// triggers one hotkey action or adds one label, never both. Keys are always
// forwarded unless a modal sink consumes them.
func (m *Multiplexer) HandleKey(ev input.KeyEvent) input.Decision {
	if !ev.Down {
		return input.Forward
	}

	if h := m.modal.Load(); h != nil {
		if d, handled := h.sink.ModalKey(ev); handled {
			return d
		}
	}

	if action, ok := m.hotkeys.Match(ev.VK, ev.Mods.Has(input.ModShift)); ok {
		if m.onAction != nil {
			m.loop.Post(func() { m.onAction(action) })
		}
		return input.Forward
	}

	label := FormatLabel(ev.VK, ev.Mods)
	m.loop.Post(func() { m.history.Push(label) })
	return input.Forward
}

// HandleMouse classifies a mouse event on the hook thread.
func (m *Multiplexer) HandleMouse(ev input.MouseEvent) input.Decision {
	switch ev.Kind {
	case input.MouseMove:
		m.notifyMove(ev.Pt)
	default:
		m.loop.Post(func() { m.glyph.Apply(ev) })
	}

	if h := m.modal.Load(); h != nil {
		if d, handled := h.sink.ModalMouse(ev); handled {
			return d
		}
	}

	allow := m.allowMove.Load()
	switch ev.Kind {
	case input.MouseMove:
		m.apply(m.drag.Move(ev.Pt, allow))
		return input.Forward
	case input.MouseDown:
		if ev.Button != m.drag.Button {
			return input.Forward
		}
		d, fx := m.drag.Down(ev.Pt, *m.bounds.Load(), allow)
		m.apply(fx)
		return d
	case input.MouseUp:
		if ev.Button != m.drag.Button {
			return input.Forward
		}
		d, fx := m.drag.Up()
		m.apply(fx)
		return d
	}
	return input.Forward
}

// DragState returns the drag machine state. Only meaningful on the hook
// thread or in tests.
func (m *Multiplexer) DragState() DragState { return m.drag.State() }

func (m *Multiplexer) apply(fx Effects) {
	if fx == (Effects{}) || m.window == nil {
		return
	}
	m.loop.Post(func() {
		if fx.Opaque {
			m.check("SetClickThrough(false)", m.window.SetClickThrough(false))
		}
		if fx.Move {
			m.check("MoveTo", m.window.MoveTo(fx.MoveTo))
		}
		if fx.Transparent {
			m.check("SetClickThrough(true)", m.window.SetClickThrough(true))
		}
	})
}

func (m *Multiplexer) notifyMove(p geometry.Point) {
	if m.onMove == nil {
		return
	}
	m.lastMove.Store(&p)
	if !m.movePending.CompareAndSwap(false, true) {
		return
	}
	m.loop.Post(func() {
		m.movePending.Store(false)
		m.onMove(*m.lastMove.Load())
	})
}

func (m *Multiplexer) check(op string, err error) {
	if err != nil {
		m.warn.Do(func() { log.Printf("Overlay: %s failed: %v", op, err) })
	}
}
