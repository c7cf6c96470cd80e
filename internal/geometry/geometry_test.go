package geometry

import "testing"

// TestRectFromCenter tests the viewport scenario from a 1920x1080 display at scale 2
func TestRectFromCenter(t *testing.T) {
	got := RectFromCenter(500, 500, 960, 540)
	want := Rect{Left: 20, Top: 230, Right: 980, Bottom: 770}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got.Width() != 960 || got.Height() != 540 {
		t.Errorf("Expected size 960x540, got %dx%d", got.Width(), got.Height())
	}
}

func TestClamp(t *testing.T) {
	bounds := Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside", Rect{20, 230, 980, 770}, Rect{20, 230, 980, 770}},
		{"past left", Rect{-100, 10, 860, 550}, Rect{0, 10, 960, 550}},
		{"past top", Rect{10, -40, 970, 500}, Rect{10, 0, 970, 540}},
		{"past right", Rect{1500, 10, 2460, 550}, Rect{960, 10, 1920, 550}},
		{"past bottom", Rect{10, 900, 970, 1440}, Rect{10, 540, 970, 1080}},
		{"past corner", Rect{1800, 1000, 2760, 1540}, Rect{960, 540, 1920, 1080}},
		{"wider than bounds", Rect{-300, 0, 2200, 100}, Rect{0, 0, 2500, 100}},
		{"taller than bounds", Rect{0, 200, 100, 1500}, Rect{0, 0, 100, 1300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.in, bounds)
			if got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Width() != tt.in.Width() || got.Height() != tt.in.Height() {
				t.Errorf("Clamp resized %v to %v", tt.in, got)
			}
		})
	}
}

// TestClampIdempotentAndContained sweeps rectangles across a multi-monitor bound
func TestClampIdempotentAndContained(t *testing.T) {
	bounds := Rect{Left: -1280, Top: -200, Right: 1920, Bottom: 1080}

	for _, size := range [][2]int{{100, 80}, {960, 540}, {3200, 1280}, {4000, 300}, {200, 2000}} {
		for x := -3000; x <= 3000; x += 250 {
			for y := -1500; y <= 1500; y += 250 {
				r := Rect{Left: x, Top: y, Right: x + size[0], Bottom: y + size[1]}
				once := Clamp(r, bounds)
				twice := Clamp(once, bounds)
				if once != twice {
					t.Fatalf("Clamp not idempotent for %v: %v then %v", r, once, twice)
				}
				fits := size[0] <= bounds.Width() && size[1] <= bounds.Height()
				if fits && !bounds.ContainsRect(once) {
					t.Fatalf("Clamp(%v) = %v not contained in %v", r, once, bounds)
				}
				if size[0] > bounds.Width() && once.Left != bounds.Left {
					t.Fatalf("Oversized rect %v not anchored left: %v", r, once)
				}
				if size[1] > bounds.Height() && once.Top != bounds.Top {
					t.Fatalf("Oversized rect %v not anchored top: %v", r, once)
				}
			}
		}
	}
}

func TestLayout(t *testing.T) {
	left := Display{Name: "left", Bounds: Rect{-1280, -200, 0, 824}}
	primary := Display{Name: "primary", Bounds: Rect{0, 0, 1920, 1080}, Primary: true}
	layout := NewLayout([]Display{left, primary})

	if got, want := layout.VirtualBounds(), (Rect{-1280, -200, 1920, 1080}); got != want {
		t.Errorf("Expected virtual bounds %v, got %v", want, got)
	}

	d, ok := layout.DisplayContaining(Point{X: -10, Y: 0})
	if !ok || d.Name != "left" {
		t.Errorf("Expected left display, got %q (ok=%v)", d.Name, ok)
	}

	// Right/bottom edges are exclusive
	d, ok = layout.DisplayContaining(Point{X: 1920, Y: 10})
	if ok || d.Name != "primary" {
		t.Errorf("Expected primary fallback for off-screen point, got %q (ok=%v)", d.Name, ok)
	}

	if layout.Primary().Name != "primary" {
		t.Errorf("Expected primary display, got %q", layout.Primary().Name)
	}
}

func TestLayoutPrimaryFallback(t *testing.T) {
	layout := NewLayout([]Display{
		{Name: "a", Bounds: Rect{1920, 0, 3840, 1080}},
		{Name: "b", Bounds: Rect{0, 0, 1920, 1080}},
	})
	if got := layout.Primary().Name; got != "b" {
		t.Errorf("Expected display at origin as primary, got %q", got)
	}

	if NewLayout(nil).VirtualBounds() != (Rect{}) {
		t.Error("Expected empty virtual bounds for empty layout")
	}
}
