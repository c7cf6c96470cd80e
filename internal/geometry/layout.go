package geometry

// Display describes one connected monitor.
type Display struct {
	Name     string `json:"name"`
	Bounds   Rect   `json:"bounds"`
	WorkArea Rect   `json:"work_area"` // Excludes the taskbar
	Primary  bool   `json:"primary"`
}

// Layout is a read-only snapshot of the monitor arrangement.
// Callers refresh it from the display provider when monitors may have changed.
type Layout struct {
	displays []Display
	virtual  Rect
}

// NewLayout builds a layout from the given displays.
func NewLayout(displays []Display) Layout {
	l := Layout{displays: append([]Display(nil), displays...)}
	for _, d := range l.displays {
		l.virtual = l.virtual.Union(d.Bounds)
	}
	return l
}

// Displays returns a copy of the displays in the layout.
func (l Layout) Displays() []Display {
	return append([]Display(nil), l.displays...)
}

// Len returns the number of displays.
func (l Layout) Len() int {
	return len(l.displays)
}

// VirtualBounds returns the union of all display bounds.
func (l Layout) VirtualBounds() Rect {
	return l.virtual
}

// Primary returns the primary display. If none is flagged primary the display
// containing the origin is used, then the first display.
func (l Layout) Primary() Display {
	for _, d := range l.displays {
		if d.Primary {
			return d
		}
	}
	for _, d := range l.displays {
		if d.Bounds.Contains(Point{}) {
			return d
		}
	}
	if len(l.displays) > 0 {
		return l.displays[0]
	}
	return Display{}
}

// DisplayContaining returns the display that contains p. When p is outside
// every display the primary display is returned and ok is false.
func (l Layout) DisplayContaining(p Point) (d Display, ok bool) {
	for _, d := range l.displays {
		if d.Bounds.Contains(p) {
			return d, true
		}
	}
	return l.Primary(), false
}
