package viewport

import (
	"time"

	"inputoverlay/internal/geometry"
)

// Surface is the platform magnification surface hosted in the viewport window.
type Surface interface {
	// SetZoomTransform sets the magnification factors
	SetZoomTransform(scaleX, scaleY float64) error

	// SetSourceRect sets the desktop region shown by the surface
	SetSourceRect(r geometry.Rect) error

	// Close destroys the host window and releases the surface
	Close() error
}

// Opener sizes a host window to bounds and acquires a surface inside it.
type Opener interface {
	OpenSurface(bounds geometry.Rect) (Surface, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(bounds geometry.Rect) (Surface, error)

// OpenSurface calls f(bounds).
func (f OpenerFunc) OpenSurface(bounds geometry.Rect) (Surface, error) {
	return f(bounds)
}

// Metrics reads the cursor position and the current monitor layout.
type Metrics interface {
	CursorPos() (geometry.Point, error)
	Layout() (geometry.Layout, error)
}

// FrameSource delivers one callback per display refresh on the control loop,
// with a monotonic timestamp. The returned cancel function must be called on
// the control loop; no callback runs after it returns.
type FrameSource interface {
	Subscribe(fn func(ts time.Duration)) (cancel func())
}

// Scheduler runs fn on the control loop once the loop is idle.
type Scheduler interface {
	Post(fn func())
}
