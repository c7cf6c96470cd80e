package display

import "errors"

var (
	// ErrUnsupportedPlatform is returned when running on an unsupported OS
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoDisplays is returned when enumeration reports no monitor at all
	ErrNoDisplays = errors.New("no displays found")

	// ErrCursorUnavailable is returned when the cursor position cannot be read,
	// e.g. while the secure desktop is active
	ErrCursorUnavailable = errors.New("cursor position unavailable")
)
