//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputoverlay/internal/geometry"
	"inputoverlay/internal/overlay"
)

const (
	overlayClass    = "InputOverlayWindow"
	overlayFontSize = 26
	overlayAlpha    = 220
	overlayPadding  = 10
)

// overlayWindow is the layered key/mouse overlay. Its glyph sits on the
// first line and the key labels, newest first, below it.
type overlayWindow struct {
	hwnd windows.Handle

	baseW, baseH int
	pos          geometry.Point
	w, h         int
	visible      bool

	labels overlay.Labels
	glyph  string

	font    uintptr
	bg      uintptr
	textRGB uintptr
}

func newOverlayWindow(u *UI, baseW, baseH int) (*overlayWindow, error) {
	bg, _, _ := procCreateSolidBrush.Call(rgb(0x20, 0x20, 0x20))
	cls, err := u.registerClass(overlayClass, bg)
	if err != nil {
		procDeleteObject.Call(bg)
		return nil, err
	}

	w := &overlayWindow{
		baseW:   baseW,
		baseH:   baseH,
		w:       baseW,
		h:       baseH,
		bg:      bg,
		textRGB: rgb(0xff, 0xff, 0xff),
	}
	w.hwnd, err = createWindow(
		wsExLayered|wsExTopmost|wsExToolWindow|wsExNoActivate|wsExTransparent,
		cls, "Input Overlay", wsPopup, 0, 0, baseW, baseH, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: overlay: %v", ErrWindowCreate, err)
	}
	handlers[w.hwnd] = w

	if err := w.SetStyle(1, 1); err != nil {
		w.destroy()
		return nil, err
	}
	return w, nil
}

func (w *overlayWindow) SetClickThrough(enabled bool) error {
	return setExStyleBit(w.hwnd, wsExTransparent, enabled)
}

func (w *overlayWindow) MoveTo(p geometry.Point) error {
	if err := placeWindow(w.hwnd, p.X, p.Y, 0, 0, swpNoSize); err != nil {
		return err
	}
	w.pos = p
	return nil
}

func (w *overlayWindow) SetLabels(l overlay.Labels) {
	if l == w.labels {
		return
	}
	w.labels = l
	invalidate(w.hwnd)
}

func (w *overlayWindow) SetGlyph(g string) {
	if g == w.glyph {
		return
	}
	w.glyph = g
	invalidate(w.hwnd)
}

func (w *overlayWindow) SetVisible(visible bool) error {
	showWindow(w.hwnd, visible)
	w.visible = visible
	return nil
}

func (w *overlayWindow) Visible() bool { return w.visible }

func (w *overlayWindow) Bounds() geometry.Rect {
	return geometry.Rect{Left: w.pos.X, Top: w.pos.Y, Right: w.pos.X + w.w, Bottom: w.pos.Y + w.h}
}

func (w *overlayWindow) SetStyle(uiScale, textOpacity float64) error {
	w.w = max(int(float64(w.baseW)*uiScale), 1)
	w.h = max(int(float64(w.baseH)*uiScale), 1)
	if err := placeWindow(w.hwnd, 0, 0, w.w, w.h, swpNoMove); err != nil {
		return err
	}

	face, err := windows.UTF16PtrFromString("Segoe UI")
	if err != nil {
		return err
	}
	font, _, callErr := procCreateFont.Call(
		uintptr(-int(float64(overlayFontSize)*uiScale)), 0, 0, 0,
		fwSemibold, 0, 0, 0, 0, 0, 0, 0, 0,
		uintptr(unsafe.Pointer(face)),
	)
	if font == 0 {
		return &callError{op: "CreateFont", err: callErr}
	}
	if w.font != 0 {
		procDeleteObject.Call(w.font)
	}
	w.font = font

	alpha := byte(float64(overlayAlpha) * textOpacity)
	if err := setAlpha(w.hwnd, alpha); err != nil {
		return err
	}
	invalidate(w.hwnd)
	return nil
}

func (w *overlayWindow) handleMessage(msg uint32, wparam, lparam uintptr) (uintptr, bool) {
	switch msg {
	case wmPaint:
		w.paint()
		return 0, true
	case wmEraseBkgnd:
		return 1, true
	}
	return 0, false
}

func (w *overlayWindow) paint() {
	var ps paintStruct
	hdc, _, _ := procBeginPaint.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&ps)))
	if hdc == 0 {
		return
	}
	defer procEndPaint.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&ps)))

	var client rect
	procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&client)))
	procFillRect.Call(hdc, uintptr(unsafe.Pointer(&client)), w.bg)

	old, _, _ := procSelectObject.Call(hdc, w.font)
	defer procSelectObject.Call(hdc, old)
	procSetTextColor.Call(hdc, w.textRGB)
	procSetBkMode.Call(hdc, bkTransparent)

	lines := []string{w.glyph, w.labels[0], w.labels[1], w.labels[2]}
	lineH := (client.Bottom - client.Top) / int32(len(lines))
	for i, text := range lines {
		if text == "" {
			continue
		}
		buf, err := windows.UTF16FromString(text)
		if err != nil {
			continue
		}
		r := rect{
			Left:   client.Left + overlayPadding,
			Top:    client.Top + int32(i)*lineH,
			Right:  client.Right - overlayPadding,
			Bottom: client.Top + int32(i+1)*lineH,
		}
		procDrawText.Call(hdc, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)-1),
			uintptr(unsafe.Pointer(&r)), dtSingleLine|dtVCenter|dtNoPrefix|dtEndEllipsis)
	}
}

func (w *overlayWindow) destroy() {
	delete(handlers, w.hwnd)
	destroyWindow(w.hwnd)
	if w.font != 0 {
		procDeleteObject.Call(w.font)
	}
	// class background brush stays registered for the process
}
