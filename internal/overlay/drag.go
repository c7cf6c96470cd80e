package overlay

import (
	"fmt"

	"inputoverlay/internal/geometry"
	"inputoverlay/internal/input"
)

// DefaultDragThreshold is the travel in pixels, on either axis, after which a
// press inside the window becomes a drag.
const DefaultDragThreshold = 6

// DragState is the state of the drag/pass-through machine.
type DragState int

const (
	DragIdle DragState = iota
	DragDownOutside
	DragDownInside
	DragDragging
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDownOutside:
		return "down-outside"
	case DragDownInside:
		return "down-inside"
	case DragDragging:
		return "dragging"
	default:
		return fmt.Sprintf("DragState(%d)", int(s))
	}
}

// Effects are the window changes requested by one transition. They are
// applied on the control loop in the order the transitions happened.
type Effects struct {
	// Opaque makes the window receive clicks
	Opaque bool
	// Transparent makes the window pass clicks through
	Transparent bool
	// Move requests the window's top-left corner at MoveTo
	Move   bool
	MoveTo geometry.Point
}

// DragMachine tracks one press-drag-release gesture of the drag button over
// the overlay window. It is owned by the hook thread: decisions are needed
// synchronously, so it never waits on the control loop.
type DragMachine struct {
	Button    input.Button
	Threshold int

	state        DragState
	start        geometry.Point
	origin       geometry.Point
	consumedDown bool
}

// NewDragMachine creates an idle machine for button.
func NewDragMachine(button input.Button, threshold int) *DragMachine {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &DragMachine{Button: button, Threshold: threshold}
}

// State returns the current state.
func (m *DragMachine) State() DragState { return m.state }

// Down starts a gesture at p. Whether p lies inside the window bounds is
// latched until the matching Up. A press inside makes the window opaque; it
// is consumed only if the window may move.
func (m *DragMachine) Down(p geometry.Point, bounds geometry.Rect, allowMove bool) (input.Decision, Effects) {
	inside := bounds.Contains(p)
	m.start = p
	m.origin = bounds.TopLeft()

	if !inside {
		m.state = DragDownOutside
		m.consumedDown = false
		return input.Forward, Effects{}
	}

	m.state = DragDownInside
	m.consumedDown = allowMove
	d := input.Forward
	if allowMove {
		d = input.Consume
	}
	return d, Effects{Opaque: true}
}

// Move tracks cursor travel. Moves are never consumed, so the cursor keeps
// moving normally.
func (m *DragMachine) Move(p geometry.Point, allowMove bool) Effects {
	if m.state != DragDownInside && m.state != DragDragging {
		return Effects{}
	}

	d := p.Sub(m.start)
	if m.state == DragDownInside && (abs(d.X) >= m.Threshold || abs(d.Y) >= m.Threshold) {
		m.state = DragDragging
	}
	if m.state != DragDragging || !allowMove {
		return Effects{}
	}
	return Effects{Move: true, MoveTo: m.origin.Add(d)}
}

// Up ends the gesture. The window always returns to pass-through, and the
// release is consumed exactly when the press was.
func (m *DragMachine) Up() (input.Decision, Effects) {
	d := input.Forward
	if m.consumedDown {
		d = input.Consume
	}
	m.state = DragIdle
	m.consumedDown = false
	return d, Effects{Transparent: true}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
