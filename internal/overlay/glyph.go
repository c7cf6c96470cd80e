package overlay

import (
	"time"

	"inputoverlay/internal/eventloop"
	"inputoverlay/internal/input"
)

// Mouse state glyphs.
const (
	GlyphIdle      = "🖱:□□□"
	GlyphLeft      = "🖱:■□□"
	GlyphMiddle    = "🖱:□■□"
	GlyphRight     = "🖱:□□■"
	GlyphWheelUp   = "🖱:□▲□"
	GlyphWheelDown = "🖱:□▼□"
)

// DefaultWheelRevert is how long a wheel glyph stays up.
const DefaultWheelRevert = 300 * time.Millisecond

// MouseGlyph mirrors button and wheel state into a glyph. It runs on the
// control loop.
type MouseGlyph struct {
	clock    eventloop.Clock
	revert   time.Duration
	current  string
	onChange func(string)
}

// NewMouseGlyph creates an idle glyph. onChange may be nil.
func NewMouseGlyph(clock eventloop.Clock, revert time.Duration, onChange func(string)) *MouseGlyph {
	if revert <= 0 {
		revert = DefaultWheelRevert
	}
	return &MouseGlyph{clock: clock, revert: revert, current: GlyphIdle, onChange: onChange}
}

// Glyph returns the current glyph.
func (g *MouseGlyph) Glyph() string { return g.current }

// SetRevert changes the wheel glyph lifetime.
func (g *MouseGlyph) SetRevert(d time.Duration) {
	if d > 0 {
		g.revert = d
	}
}

// Apply updates the glyph for ev. Moves are ignored. Every wheel event
// reverts the glyph to idle after the revert delay, whatever happened since.
func (g *MouseGlyph) Apply(ev input.MouseEvent) {
	var next string
	switch ev.Kind {
	case input.MouseDown:
		switch ev.Button {
		case input.ButtonLeft:
			next = GlyphLeft
		case input.ButtonMiddle:
			next = GlyphMiddle
		case input.ButtonRight:
			next = GlyphRight
		default:
			return
		}
	case input.MouseUp:
		next = GlyphIdle
	case input.MouseWheel:
		next = GlyphWheelDown
		if ev.Wheel > 0 {
			next = GlyphWheelUp
		}
	default:
		return
	}

	g.set(next)

	if ev.Kind == input.MouseWheel {
		g.clock.AfterFunc(g.revert, func() { g.set(GlyphIdle) })
	}
}

func (g *MouseGlyph) set(s string) {
	if s == g.current {
		return
	}
	g.current = s
	if g.onChange != nil {
		g.onChange(s)
	}
}
