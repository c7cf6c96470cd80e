package app

import (
	"log"

	"inputoverlay/internal/geometry"
)

// PlaceLens centers a w×h lens on cur and pushes it inside display. The
// left and top edges are fixed first, then the right and bottom ones, so a
// lens larger than the display hangs off its left/top side.
func PlaceLens(cur geometry.Point, w, h int, display geometry.Rect) geometry.Rect {
	r := geometry.RectFromCenter(cur.X, cur.Y, w, h)
	l, t := r.Left, r.Top
	if l < display.Left {
		l = display.Left
	}
	if t < display.Top {
		t = display.Top
	}
	if l+w > display.Right {
		l = display.Right - w
	}
	if t+h > display.Bottom {
		t = display.Bottom - h
	}
	return geometry.Rect{Left: l, Top: t, Right: l + w, Bottom: t + h}
}

// LensSource is the desktop area shown by a w×h lens at zoom, centered on
// cur and kept inside the virtual desktop.
func LensSource(cur geometry.Point, w, h int, zoom float64, virtual geometry.Rect) geometry.Rect {
	sw := max(int(float64(w)/zoom), 1)
	sh := max(int(float64(h)/zoom), 1)
	return geometry.Clamp(geometry.RectFromCenter(cur.X, cur.Y, sw, sh), virtual)
}

func (a *App) openLens() {
	mc := a.cfg.Magnifier
	cur, err := a.host.CursorPos()
	if err != nil {
		log.Printf("Magnifier: Cursor unavailable: %v", err)
		return
	}
	layout, err := a.host.Layout()
	if err != nil {
		log.Printf("Magnifier: Cannot read display layout: %v", err)
		return
	}
	d, _ := layout.DisplayContaining(cur)

	surf, err := a.host.OpenLens(PlaceLens(cur, mc.Width, mc.Height, d.Bounds))
	if err != nil {
		log.Printf("Magnifier: Failed to open: %v", err)
		return
	}
	if err := surf.SetZoomTransform(mc.Zoom, mc.Zoom); err != nil {
		log.Printf("Magnifier: Failed to set zoom: %v", err)
	}
	if err := surf.SetSourceRect(LensSource(cur, mc.Width, mc.Height, mc.Zoom, layout.VirtualBounds())); err != nil {
		log.Printf("Magnifier: Failed to set source: %v", err)
	}
	a.lens = surf
	log.Printf("Magnifier: Opened at %v, zoom %.1f", cur, mc.Zoom)
}

func (a *App) closeLens() {
	if a.lens == nil {
		return
	}
	if err := a.lens.Close(); err != nil {
		log.Printf("Magnifier: Close failed: %v", err)
	}
	a.lens = nil
}
