// Package win32 hosts the overlay's windows on a dedicated UI thread: the
// key/mouse overlay, the pointer highlight, magnifier hosts for the follow
// viewport and the lens, and annotation hosts. The thread's message pump
// also drains the control loop, so everything the loop runs may touch these
// windows directly.
package win32

import (
	"errors"

	"inputoverlay/internal/display"
	"inputoverlay/internal/eventloop"
)

var (
	// ErrUnsupportedPlatform is returned when running on an unsupported OS
	ErrUnsupportedPlatform = errors.New("win32: unsupported platform")

	// ErrWindowCreate is returned when a host window cannot be created
	ErrWindowCreate = errors.New("win32: window creation failed")
)

// Options configures the UI thread.
type Options struct {
	Loop     *eventloop.Loop
	Displays display.Provider

	// OverlayWidth and OverlayHeight are the overlay size at UI scale 1
	OverlayWidth  int
	OverlayHeight int
}
