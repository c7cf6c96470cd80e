// Package input provides the process-wide low-level keyboard and mouse hooks
// and the event types they deliver.
package input

import (
	"fmt"

	"inputoverlay/internal/geometry"
)

// Decision tells the hook what to do with an event after a handler saw it.
type Decision int

const (
	// Forward passes the event on to the rest of the system.
	Forward Decision = iota
	// Consume swallows the event.
	Consume
)

func (d Decision) String() string {
	if d == Consume {
		return "consume"
	}
	return "forward"
}

// Modifiers is the live modifier state sampled when an event is delivered.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all of m are set.
func (s Modifiers) Has(m Modifiers) bool { return s&m == m }

// KeyEvent is a key transition.
type KeyEvent struct {
	VK   uint32    `json:"vk"`
	Down bool      `json:"down"`
	Mods Modifiers `json:"mods,omitempty"`
}

// MouseKind classifies a mouse event.
type MouseKind int

const (
	MouseMove MouseKind = iota
	MouseDown
	MouseUp
	MouseWheel
)

func (k MouseKind) String() string {
	switch k {
	case MouseMove:
		return "move"
	case MouseDown:
		return "down"
	case MouseUp:
		return "up"
	case MouseWheel:
		return "wheel"
	default:
		return fmt.Sprintf("MouseKind(%d)", int(k))
	}
}

// Button identifies a mouse button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}

// ParseButton maps a config name to a Button.
func ParseButton(s string) (Button, error) {
	switch s {
	case "left", "Left", "LEFT":
		return ButtonLeft, nil
	case "right", "Right", "RIGHT":
		return ButtonRight, nil
	case "middle", "Middle", "MIDDLE":
		return ButtonMiddle, nil
	}
	return ButtonNone, fmt.Errorf("%w: %q", ErrUnknownButton, s)
}

// WheelDelta is the wheel delta of one notch.
const WheelDelta = 120

// MouseEvent is a low-level mouse event in virtual desktop coordinates.
type MouseEvent struct {
	Kind   MouseKind      `json:"kind"`
	Button Button         `json:"btn,omitempty"`
	Pt     geometry.Point `json:"pt"`
	// Wheel is the signed wheel delta, positive away from the user.
	Wheel int `json:"wheel,omitempty"`
}

// Handler classifies hook events. Both methods run on the hook thread and
// must return quickly.
type Handler interface {
	HandleKey(ev KeyEvent) Decision
	HandleMouse(ev MouseEvent) Decision
}
