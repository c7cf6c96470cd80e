package viewport

import "errors"

var (
	// ErrSurfaceUnavailable is returned when the magnification surface cannot be created
	ErrSurfaceUnavailable = errors.New("magnification surface unavailable")

	// ErrClosed is returned for operations on a closed viewport
	ErrClosed = errors.New("viewport closed")
)
