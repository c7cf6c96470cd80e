//go:build windows

package win32

import (
	"io"

	"inputoverlay/internal/app"
	"inputoverlay/internal/display"
	"inputoverlay/internal/geometry"
	"inputoverlay/internal/osutils"
	"inputoverlay/internal/viewport"
)

var _ app.Host = (*Host)(nil)

// Host implements app.Host with real windows. Its methods run on the UI
// thread, i.e. from work posted to the loop.
type Host struct {
	ui       *UI
	displays display.Provider
	overlay  *overlayWindow
	pointer  *pointerWindow
}

func newHost(u *UI) (*Host, error) {
	displays := u.opts.Displays
	if displays == nil {
		displays = display.NewProvider()
	}
	ow, err := newOverlayWindow(u, u.opts.OverlayWidth, u.opts.OverlayHeight)
	if err != nil {
		return nil, err
	}
	pw, err := newPointerWindow(u)
	if err != nil {
		ow.destroy()
		return nil, err
	}
	return &Host{ui: u, displays: displays, overlay: ow, pointer: pw}, nil
}

func (h *Host) CursorPos() (geometry.Point, error) { return h.displays.CursorPos() }

func (h *Host) Layout() (geometry.Layout, error) { return display.Layout(h.displays) }

func (h *Host) Overlay() app.OverlayWindow { return h.overlay }

func (h *Host) Pointer() app.PointerWindow { return h.pointer }

func (h *Host) OpenViewport(bounds geometry.Rect) (viewport.Surface, error) {
	m, err := h.ui.openMagnifier(bounds, true)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (h *Host) OpenLens(window geometry.Rect) (viewport.Surface, error) {
	m, err := h.ui.openMagnifier(window, false)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (h *Host) OpenAnnotation(d geometry.Display) (io.Closer, error) {
	a, err := h.ui.openAnnotation(d.Bounds)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (h *Host) OpenFile(path string) error { return osutils.OpenPath(path) }

func (h *Host) destroy() {
	h.pointer.destroy()
	h.overlay.destroy()
}
