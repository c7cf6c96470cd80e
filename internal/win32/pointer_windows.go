//go:build windows

package win32

import (
	"fmt"

	"golang.org/x/sys/windows"

	"inputoverlay/internal/geometry"
)

const pointerClass = "InputOverlayPointer"

// pointerWindow is a click-through circle kept centered on the cursor.
// The window is clipped to an elliptic region; its class brush paints it.
type pointerWindow struct {
	hwnd windows.Handle
	size int
}

func newPointerWindow(u *UI) (*pointerWindow, error) {
	brush, _, _ := procCreateSolidBrush.Call(rgb(0xff, 0xd8, 0x00))
	cls, err := u.registerClass(pointerClass, brush)
	if err != nil {
		procDeleteObject.Call(brush)
		return nil, err
	}
	hwnd, err := createWindow(
		wsExLayered|wsExTopmost|wsExToolWindow|wsExNoActivate|wsExTransparent,
		cls, "Pointer", wsPopup, 0, 0, 1, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: pointer: %v", ErrWindowCreate, err)
	}
	return &pointerWindow{hwnd: hwnd}, nil
}

func (p *pointerWindow) Show(size int, opacity float64) error {
	if size != p.size {
		if err := placeWindow(p.hwnd, 0, 0, size, size, swpNoMove); err != nil {
			return err
		}
		// the window owns the region after SetWindowRgn succeeds
		rgn, _, _ := procCreateEllipticRgn.Call(0, 0, uintptr(size), uintptr(size))
		if ret, _, err := procSetWindowRgn.Call(uintptr(p.hwnd), rgn, 1); ret == 0 {
			procDeleteObject.Call(rgn)
			return &callError{op: "SetWindowRgn", err: err}
		}
		p.size = size
	}
	if err := setAlpha(p.hwnd, byte(opacity*255)); err != nil {
		return err
	}
	showWindow(p.hwnd, true)
	return nil
}

func (p *pointerWindow) CenterOn(pt geometry.Point) error {
	return placeWindow(p.hwnd, pt.X-p.size/2, pt.Y-p.size/2, 0, 0, swpNoSize)
}

func (p *pointerWindow) Hide() error {
	showWindow(p.hwnd, false)
	return nil
}

func (p *pointerWindow) destroy() {
	destroyWindow(p.hwnd)
}
