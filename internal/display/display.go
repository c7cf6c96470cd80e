// Package display enumerates connected monitors and reads the cursor position.
package display

import "inputoverlay/internal/geometry"

// Provider is the platform source of display and cursor metrics.
// Both calls may fail transiently (e.g. during a display reconfiguration).
type Provider interface {
	// Displays returns all connected displays in virtual desktop coordinates
	Displays() ([]geometry.Display, error)

	// CursorPos returns the current cursor position
	CursorPos() (geometry.Point, error)
}

// Layout enumerates the displays of p and returns them as a layout.
func Layout(p Provider) (geometry.Layout, error) {
	displays, err := p.Displays()
	if err != nil {
		return geometry.Layout{}, err
	}
	if len(displays) == 0 {
		return geometry.Layout{}, ErrNoDisplays
	}
	return geometry.NewLayout(displays), nil
}

// Static is a Provider over a fixed layout and a movable cursor.
// It backs the -list fallback and tests.
type Static struct {
	List   []geometry.Display
	Cursor geometry.Point
	Err    error
}

// Displays returns the fixed display list.
func (s *Static) Displays() ([]geometry.Display, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.List, nil
}

// CursorPos returns the fixed cursor position.
func (s *Static) CursorPos() (geometry.Point, error) {
	if s.Err != nil {
		return geometry.Point{}, s.Err
	}
	return s.Cursor, nil
}
