// Package geometry models the virtual desktop: integer device-pixel points and
// rectangles, the monitor layout and the viewport clamp policy.
package geometry

import "fmt"

// Point is a device-pixel position in virtual desktop coordinates.
// Coordinates can be negative (e.g. a display left of the primary one).
type Point struct {
	X int
	Y int
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is a device-pixel rectangle. Right and Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// RectFromCenter builds a w x h rectangle whose center is (cx, cy).
// For odd sizes the extra pixel goes to the right/bottom edge.
func RectFromCenter(cx, cy, w, h int) Rect {
	l := cx - w/2
	t := cy - h/2
	return Rect{Left: l, Top: t, Right: l + w, Bottom: t + h}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// TopLeft returns the origin of r.
func (r Rect) TopLeft() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Center returns the real-valued centroid of r.
func (r Rect) Center() (float64, float64) {
	return float64(r.Left+r.Right) / 2, float64(r.Top+r.Bottom) / 2
}

// Contains reports whether p lies inside r (left/top inclusive, right/bottom exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// ContainsRect reports whether o lies fully inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Top >= r.Top && o.Right <= r.Right && o.Bottom <= r.Bottom
}

// Translate moves r by (dx, dy) without changing its size.
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// MoveTo places the origin of r at (x, y) without changing its size.
func (r Rect) MoveTo(x, y int) Rect {
	return r.Translate(x-r.Left, y-r.Top)
}

// Union returns the smallest rectangle containing both r and o.
// An empty operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Clamp fits r inside bounds by translating it, never resizing it.
//
// Edges are checked in the order left, top, right, bottom. A right/bottom
// correction never pushes the left/top edge past its bound, so a rectangle
// larger than bounds on an axis stays anchored to the top-left edge.
func Clamp(r, bounds Rect) Rect {
	if r.Left < bounds.Left {
		r = r.Translate(bounds.Left-r.Left, 0)
	}
	if r.Top < bounds.Top {
		r = r.Translate(0, bounds.Top-r.Top)
	}
	if r.Right > bounds.Right {
		shift := min(r.Right-bounds.Right, max(r.Left-bounds.Left, 0))
		r = r.Translate(-shift, 0)
	}
	if r.Bottom > bounds.Bottom {
		shift := min(r.Bottom-bounds.Bottom, max(r.Top-bounds.Top, 0))
		r = r.Translate(0, -shift)
	}
	return r
}
