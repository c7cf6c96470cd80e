//go:build windows

package win32

import (
	"fmt"

	"golang.org/x/sys/windows"

	"inputoverlay/internal/geometry"
)

const (
	annotationClass = "InputOverlayAnnotation"

	// nearly invisible but still hit-testable
	annotationAlpha = 1
)

// annotationHost is a click-opaque layer over one display that drawing
// tools attach to.
type annotationHost struct {
	hwnd windows.Handle
}

func (u *UI) openAnnotation(bounds geometry.Rect) (*annotationHost, error) {
	brush, _, _ := procCreateSolidBrush.Call(rgb(0, 0, 0))
	cls, err := u.registerClass(annotationClass, brush)
	if err != nil {
		procDeleteObject.Call(brush)
		return nil, err
	}
	hwnd, err := createWindow(
		wsExLayered|wsExTopmost|wsExToolWindow|wsExNoActivate,
		cls, "Annotation", wsPopup,
		bounds.Left, bounds.Top, bounds.Width(), bounds.Height(), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: annotation: %v", ErrWindowCreate, err)
	}
	if err := setAlpha(hwnd, annotationAlpha); err != nil {
		destroyWindow(hwnd)
		return nil, err
	}
	showWindow(hwnd, true)
	return &annotationHost{hwnd: hwnd}, nil
}

func (a *annotationHost) Close() error {
	if a.hwnd == 0 {
		return nil
	}
	destroyWindow(a.hwnd)
	a.hwnd = 0
	return nil
}
