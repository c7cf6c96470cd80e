// Package overlay implements the input overlay core: the hook multiplexer
// that classifies every low-level key and mouse event, the drag/pass-through
// state machine of the overlay window, and the rolling key labels and mouse
// glyph it displays.
package overlay

import (
	"inputoverlay/internal/geometry"
	"inputoverlay/internal/input"
)

// HistorySize is the number of key labels shown.
const HistorySize = 3

// Labels holds the rolling key labels, most recent first.
type Labels [HistorySize]string

// Window is the overlay host window. All methods run on the control loop.
type Window interface {
	// SetClickThrough makes the window pass clicks through (true) or
	// receive them (false)
	SetClickThrough(enabled bool) error

	// MoveTo moves the window's top-left corner to p
	MoveTo(p geometry.Point) error

	SetLabels(l Labels)
	SetGlyph(glyph string)
}

// Poster queues work on the control loop.
type Poster interface {
	Post(fn func())
}

// ModalSink takes over input while a modal tool (the follow viewport) is
// open. Methods run on the hook thread and must only classify the event and
// post work; handled=false lets normal processing continue.
type ModalSink interface {
	ModalKey(ev input.KeyEvent) (d input.Decision, handled bool)
	ModalMouse(ev input.MouseEvent) (d input.Decision, handled bool)
}
