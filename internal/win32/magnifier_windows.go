//go:build windows

package win32

import (
	"fmt"
	"log"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputoverlay/internal/geometry"
	"inputoverlay/internal/viewport"
)

const (
	magnifierHostClass = "InputOverlayMagnifierHost"
	magnifierClass     = "Magnifier"
)

// magnifier is a topmost click-through host window with a Magnification API
// child filling it. It implements viewport.Surface.
type magnifier struct {
	ui     *UI
	host   windows.Handle
	mag    windows.Handle
	hides  int
	closed bool
}

func (u *UI) openMagnifier(bounds geometry.Rect, withoutCursor bool) (*magnifier, error) {
	if err := u.magInit(); err != nil {
		return nil, fmt.Errorf("%w: %v", viewport.ErrSurfaceUnavailable, err)
	}
	m := &magnifier{ui: u}

	cls, err := u.registerClass(magnifierHostClass, 0)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("%w: %v", viewport.ErrSurfaceUnavailable, err)
	}
	m.host, err = createWindow(
		wsExLayered|wsExTopmost|wsExToolWindow|wsExNoActivate|wsExTransparent,
		cls, "Magnifier Host", wsPopup,
		bounds.Left, bounds.Top, bounds.Width(), bounds.Height(), 0)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("%w: host window: %v", viewport.ErrSurfaceUnavailable, err)
	}
	if err := setAlpha(m.host, 255); err != nil {
		m.Close()
		return nil, fmt.Errorf("%w: %v", viewport.ErrSurfaceUnavailable, err)
	}

	magCls, err := windows.UTF16PtrFromString(magnifierClass)
	if err != nil {
		m.Close()
		return nil, err
	}
	m.mag, err = createWindow(0, magCls, "MagnifierWindow", wsChild|wsVisible|msShowMagnifiedCursor,
		0, 0, bounds.Width(), bounds.Height(), m.host)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("%w: magnifier window: %v", viewport.ErrSurfaceUnavailable, err)
	}

	// never magnify our own host
	host := m.host
	procMagSetWindowFilterList.Call(uintptr(m.mag), mwFilterModeExclude, 1, uintptr(unsafe.Pointer(&host)))

	showWindow(m.host, true)
	if withoutCursor {
		m.hides = hideCursor(showCursor)
	}
	return m, nil
}

func (m *magnifier) SetZoomTransform(sx, sy float64) error {
	if m.closed {
		return viewport.ErrClosed
	}
	t := magTransform{V: [3][3]float32{
		{float32(sx), 0, 0},
		{0, float32(sy), 0},
		{0, 0, 1},
	}}
	if ret, _, err := procMagSetWindowTransform.Call(uintptr(m.mag), uintptr(unsafe.Pointer(&t))); ret == 0 {
		return &callError{op: "MagSetWindowTransform", err: err}
	}
	return nil
}

func (m *magnifier) SetSourceRect(r geometry.Rect) error {
	if m.closed {
		return viewport.ErrClosed
	}
	src := rect{Left: int32(r.Left), Top: int32(r.Top), Right: int32(r.Right), Bottom: int32(r.Bottom)}
	if ret, _, err := magSetWindowSource(m.mag, &src); ret == 0 {
		return &callError{op: "MagSetWindowSource", err: err}
	}
	invalidate(m.mag)
	return nil
}

// Close destroys both windows, restores the cursor and releases the
// magnification runtime. It is idempotent.
func (m *magnifier) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	restoreCursor(showCursor, m.hides)
	m.hides = 0
	destroyWindow(m.host) // destroys the child too
	m.ui.magRelease()
	log.Println("Magnifier: Surface released")
	return nil
}

func showCursor(show bool) int32 {
	var flag uintptr
	if show {
		flag = 1
	}
	ret, _, _ := procShowCursor.Call(flag)
	return int32(ret)
}
