package app

import (
	"io"

	"inputoverlay/internal/geometry"
	"inputoverlay/internal/overlay"
	"inputoverlay/internal/viewport"
)

// Host creates and owns the platform windows. All methods run on the
// control loop.
type Host interface {
	viewport.Metrics

	// Overlay returns the key/mouse overlay window
	Overlay() OverlayWindow

	// Pointer returns the pointer highlight window
	Pointer() PointerWindow

	// OpenViewport covers bounds with a topmost magnifier host, hides the
	// cursor, and returns its surface
	OpenViewport(bounds geometry.Rect) (viewport.Surface, error)

	// OpenLens opens a magnifier window at window
	OpenLens(window geometry.Rect) (viewport.Surface, error)

	// OpenAnnotation opens a click-opaque annotation host over d
	OpenAnnotation(d geometry.Display) (io.Closer, error)

	// OpenFile opens path with the shell
	OpenFile(path string) error
}

// OverlayWindow is the key/mouse overlay host window.
type OverlayWindow interface {
	overlay.Window

	SetVisible(visible bool) error
	Visible() bool

	// Bounds returns the window's screen rectangle
	Bounds() geometry.Rect

	// SetStyle applies the UI scale and label text opacity
	SetStyle(uiScale, textOpacity float64) error
}

// PointerWindow is the click-through circle that follows the cursor.
type PointerWindow interface {
	Show(size int, opacity float64) error
	CenterOn(p geometry.Point) error
	Hide() error
}

// Hook is the installed global input hook.
type Hook interface {
	Install() error
	Uninstall()
}
