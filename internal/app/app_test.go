package app

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inputoverlay/internal/config"
	"inputoverlay/internal/eventloop"
	"inputoverlay/internal/geometry"
	"inputoverlay/internal/hotkey"
	"inputoverlay/internal/input"
	"inputoverlay/internal/overlay"
	"inputoverlay/internal/viewport"
)

type fakeOverlay struct {
	pos          geometry.Point
	visible      bool
	clickThrough bool
	labels       overlay.Labels
	glyph        string
	uiScale      float64
	moves        []geometry.Point
}

func (w *fakeOverlay) SetLabels(l overlay.Labels) { w.labels = l }
func (w *fakeOverlay) SetGlyph(g string)          { w.glyph = g }
func (w *fakeOverlay) Visible() bool              { return w.visible }

func (w *fakeOverlay) SetClickThrough(enabled bool) error {
	w.clickThrough = enabled
	return nil
}

func (w *fakeOverlay) SetVisible(v bool) error {
	w.visible = v
	return nil
}

func (w *fakeOverlay) MoveTo(p geometry.Point) error {
	w.pos = p
	w.moves = append(w.moves, p)
	return nil
}

func (w *fakeOverlay) Bounds() geometry.Rect {
	scale := w.uiScale
	if scale == 0 {
		scale = 1
	}
	width, height := int(420*scale), int(160*scale)
	return geometry.Rect{Left: w.pos.X, Top: w.pos.Y, Right: w.pos.X + width, Bottom: w.pos.Y + height}
}

func (w *fakeOverlay) SetStyle(uiScale, textOpacity float64) error {
	w.uiScale = uiScale
	return nil
}

type fakePointer struct {
	shown   bool
	size    int
	centers []geometry.Point
}

func (p *fakePointer) Show(size int, opacity float64) error {
	p.shown = true
	p.size = size
	return nil
}

func (p *fakePointer) CenterOn(pt geometry.Point) error {
	p.centers = append(p.centers, pt)
	return nil
}

func (p *fakePointer) Hide() error {
	p.shown = false
	return nil
}

type fakeSurface struct {
	bounds geometry.Rect
	zoom   []float64
	rects  []geometry.Rect
	closed bool
}

func (s *fakeSurface) SetZoomTransform(sx, sy float64) error {
	s.zoom = append(s.zoom, sx)
	return nil
}

func (s *fakeSurface) SetSourceRect(r geometry.Rect) error {
	s.rects = append(s.rects, r)
	return nil
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

type fakeCloser struct{ closed bool }

func (c *fakeCloser) Close() error {
	c.closed = true
	return nil
}

type fakeHost struct {
	cursor      geometry.Point
	layout      geometry.Layout
	overlay     *fakeOverlay
	pointer     *fakePointer
	viewports   []*fakeSurface
	lenses      []*fakeSurface
	annotations []*fakeCloser
	opened      []string
	viewportErr error
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		cursor: geometry.Point{X: 500, Y: 500},
		layout: geometry.NewLayout([]geometry.Display{
			{Name: "primary", Bounds: geometry.Rect{Right: 1920, Bottom: 1080}, Primary: true},
			{Name: "right", Bounds: geometry.Rect{Left: 1920, Right: 3840, Bottom: 1080}},
		}),
		overlay: &fakeOverlay{},
		pointer: &fakePointer{},
	}
}

func (h *fakeHost) CursorPos() (geometry.Point, error) { return h.cursor, nil }
func (h *fakeHost) Layout() (geometry.Layout, error)   { return h.layout, nil }
func (h *fakeHost) Overlay() OverlayWindow             { return h.overlay }
func (h *fakeHost) Pointer() PointerWindow             { return h.pointer }

func (h *fakeHost) OpenViewport(b geometry.Rect) (viewport.Surface, error) {
	if h.viewportErr != nil {
		return nil, h.viewportErr
	}
	s := &fakeSurface{bounds: b}
	h.viewports = append(h.viewports, s)
	return s, nil
}

func (h *fakeHost) OpenLens(b geometry.Rect) (viewport.Surface, error) {
	s := &fakeSurface{bounds: b}
	h.lenses = append(h.lenses, s)
	return s, nil
}

func (h *fakeHost) OpenAnnotation(d geometry.Display) (io.Closer, error) {
	c := &fakeCloser{}
	h.annotations = append(h.annotations, c)
	return c, nil
}

func (h *fakeHost) OpenFile(path string) error {
	h.opened = append(h.opened, path)
	return nil
}

type fakeFrames struct {
	subs     int
	canceled int
}

func (f *fakeFrames) Subscribe(fn func(time.Duration)) func() {
	f.subs++
	return func() { f.canceled++ }
}

type fakeHook struct {
	handler   input.Handler
	installed bool
	removed   bool
}

func (h *fakeHook) Install() error {
	h.installed = true
	return nil
}

func (h *fakeHook) Uninstall() { h.removed = true }

type appHarness struct {
	t        *testing.T
	loop     *eventloop.Loop
	clock    *eventloop.ManualClock
	host     *fakeHost
	cfg      *config.Manager
	hook     *fakeHook
	frames   *fakeFrames
	boot     []bool
	statuses []Status
	app      *App
}

func newAppHarness(t *testing.T) *appHarness {
	t.Helper()
	h := &appHarness{
		t:      t,
		loop:   eventloop.New(),
		clock:  &eventloop.ManualClock{},
		host:   newFakeHost(),
		cfg:    config.NewManagerAt(filepath.Join(t.TempDir(), "config.json")),
		hook:   &fakeHook{},
		frames: &fakeFrames{},
	}
	h.app = New(Options{
		Loop:   h.loop,
		Frames: h.frames,
		Clock:  h.clock,
		Host:   h.host,
		Config: h.cfg,
		NewHook: func(hd input.Handler, g *input.Guard) Hook {
			h.hook.handler = hd
			return h.hook
		},
		Autostart: func(on bool) error {
			h.boot = append(h.boot, on)
			return nil
		},
		OnStatus: func(s Status) { h.statuses = append(h.statuses, s) },
	})
	if err := h.app.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	h.loop.Drain()
	return h
}

func (h *appHarness) key(vk uint32, mods input.Modifiers) input.Decision {
	d := h.hook.handler.HandleKey(input.KeyEvent{VK: vk, Down: true, Mods: mods})
	h.hook.handler.HandleKey(input.KeyEvent{VK: vk, Down: false, Mods: mods})
	h.loop.Drain()
	return d
}

func (h *appHarness) mouse(kind input.MouseKind, b input.Button, x, y, wheel int) input.Decision {
	d := h.hook.handler.HandleMouse(input.MouseEvent{Kind: kind, Button: b, Pt: geometry.Point{X: x, Y: y}, Wheel: wheel})
	h.loop.Drain()
	return d
}

func TestStartShowsOverlay(t *testing.T) {
	h := newAppHarness(t)

	w := h.host.overlay
	if !w.visible || !w.clickThrough {
		t.Errorf("Expected visible click-through overlay, got visible=%v clickThrough=%v", w.visible, w.clickThrough)
	}
	if w.pos != (geometry.Point{X: 40, Y: 40}) {
		t.Errorf("Expected overlay at (40,40), got %v", w.pos)
	}
	if got := h.app.Multiplexer().WindowBounds(); got != w.Bounds() {
		t.Errorf("Expected published bounds %v, got %v", w.Bounds(), got)
	}
	want := overlay.Labels{HintMove, HintHelp, ""}
	if w.labels != want {
		t.Errorf("Expected seeded labels %q, got %q", want, w.labels)
	}
	if w.glyph != overlay.GlyphIdle {
		t.Errorf("Expected idle glyph, got %q", w.glyph)
	}
	if !h.hook.installed {
		t.Error("Expected hook installed")
	}
	if n := h.app.Multiplexer().Hotkeys().Len(); n != len(hotkey.Actions) {
		t.Errorf("Expected %d hotkeys, got %d", len(hotkey.Actions), n)
	}
	if len(h.boot) != 1 || h.boot[0] {
		t.Errorf("Expected start on boot disabled once, got %v", h.boot)
	}
}

func TestStopReleasesEverything(t *testing.T) {
	h := newAppHarness(t)
	h.app.Dispatch(hotkey.ActionFollowViewport)
	h.app.Dispatch(hotkey.ActionMagnifier)
	h.app.Dispatch(hotkey.ActionAnnotation)
	h.app.Dispatch(hotkey.ActionPointer)
	h.loop.Drain()

	h.app.Stop()

	if !h.hook.removed {
		t.Error("Expected hook uninstalled")
	}
	if !h.host.viewports[0].closed || !h.host.lenses[0].closed {
		t.Error("Expected viewport and lens closed")
	}
	for i, c := range h.host.annotations {
		if !c.closed {
			t.Errorf("Expected annotation %d closed", i)
		}
	}
	if h.host.pointer.shown {
		t.Error("Expected pointer hidden")
	}
	if s := h.app.Status(); s.ViewportOpen || s.LensOpen || s.AnnotationOpen || s.PointerOn {
		t.Errorf("Expected every tool off, got %+v", s)
	}
}

func TestHotkeyOpensAndEscClosesViewport(t *testing.T) {
	h := newAppHarness(t)

	if d := h.key(hotkey.VKF1+4, 0); d != input.Forward {
		t.Errorf("Expected hotkey forwarded, got %v", d)
	}
	if !h.app.Status().ViewportOpen || len(h.host.viewports) != 1 {
		t.Fatalf("Expected viewport open, got %+v", h.app.Status())
	}
	if h.host.viewports[0].bounds != (geometry.Rect{Right: 1920, Bottom: 1080}) {
		t.Errorf("Expected viewport on the cursor's display, got %v", h.host.viewports[0].bounds)
	}
	if h.frames.subs != 1 {
		t.Errorf("Expected one frame subscription, got %d", h.frames.subs)
	}
	if last := h.statuses[len(h.statuses)-1]; !last.ViewportOpen {
		t.Error("Expected status report with viewport open")
	}

	// Keys other than Esc keep their normal meaning.
	if d := h.key('A', 0); d != input.Forward {
		t.Errorf("Expected plain key forwarded, got %v", d)
	}
	if d := h.key(hotkey.VKEscape, 0); d != input.Consume {
		t.Errorf("Expected Esc consumed, got %v", d)
	}
	if h.app.Status().ViewportOpen || !h.host.viewports[0].closed {
		t.Error("Expected Esc to close the viewport")
	}
	if h.frames.canceled != 1 {
		t.Errorf("Expected frame subscription canceled, got %d", h.frames.canceled)
	}
	if last := h.statuses[len(h.statuses)-1]; last.ViewportOpen {
		t.Error("Expected status report with viewport closed")
	}

	if d := h.key(hotkey.VKEscape, 0); d != input.Forward {
		t.Errorf("Expected Esc forwarded once the viewport is closed, got %v", d)
	}
}

func TestViewportLogsOpenAndCloseOnce(t *testing.T) {
	h := newAppHarness(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h.key(hotkey.VKF1+4, 0)
	h.key(hotkey.VKEscape, 0)

	out := buf.String()
	if n := strings.Count(out, "Viewport: Opened"); n != 1 {
		t.Errorf("Expected one open line, got %d in %q", n, out)
	}
	if n := strings.Count(out, "Viewport: Closed"); n != 1 {
		t.Errorf("Expected one close line, got %d in %q", n, out)
	}
}

func TestViewportFailureLeavesNothingOpen(t *testing.T) {
	h := newAppHarness(t)
	h.host.viewportErr = errors.New("magnification unavailable")

	h.app.Dispatch(hotkey.ActionFollowViewport)
	h.loop.Drain()

	if h.app.Status().ViewportOpen {
		t.Error("Expected viewport closed after open failure")
	}
	if d := h.key(hotkey.VKEscape, 0); d != input.Forward {
		t.Errorf("Expected Esc forwarded without a viewport, got %v", d)
	}
}

func TestViewportMouseRouting(t *testing.T) {
	h := newAppHarness(t)
	h.app.Dispatch(hotkey.ActionFollowViewport)
	h.loop.Drain()
	s := h.host.viewports[0]
	scale := h.app.session.ctrl.Scale()

	if d := h.mouse(input.MouseWheel, input.ButtonNone, 500, 500, input.WheelDelta); d != input.Consume {
		t.Errorf("Expected wheel consumed, got %v", d)
	}
	if got := h.app.session.ctrl.Scale(); got <= scale {
		t.Errorf("Expected wheel up to zoom in from %v, got %v", scale, got)
	}

	// A partial notch still counts as one step.
	scale = h.app.session.ctrl.Scale()
	h.mouse(input.MouseWheel, input.ButtonNone, 500, 500, -30)
	if got := h.app.session.ctrl.Scale(); got >= scale {
		t.Errorf("Expected partial notch to zoom out from %v, got %v", scale, got)
	}

	if d := h.mouse(input.MouseDown, input.ButtonLeft, 500, 500, 0); d != input.Consume {
		t.Errorf("Expected left press consumed, got %v", d)
	}
	if h.app.session.ctrl.State() != viewport.StateDragging {
		t.Errorf("Expected dragging, got %v", h.app.session.ctrl.State())
	}
	before := s.rects[len(s.rects)-1]
	if d := h.mouse(input.MouseMove, input.ButtonNone, 460, 500, 0); d != input.Forward {
		t.Errorf("Expected move forwarded, got %v", d)
	}
	after := s.rects[len(s.rects)-1]
	if after.Left <= before.Left {
		t.Errorf("Expected drag left to pan the source right, %v -> %v", before, after)
	}
	if d := h.mouse(input.MouseUp, input.ButtonLeft, 460, 500, 0); d != input.Consume {
		t.Errorf("Expected left release consumed, got %v", d)
	}
	if h.app.session.ctrl.State() != viewport.StateTracking {
		t.Errorf("Expected tracking after release, got %v", h.app.session.ctrl.State())
	}

	if d := h.mouse(input.MouseDown, input.ButtonRight, 500, 500, 0); d != input.Consume {
		t.Errorf("Expected right press swallowed, got %v", d)
	}
	if d := h.mouse(input.MouseUp, input.ButtonRight, 500, 500, 0); d != input.Consume {
		t.Errorf("Expected right release swallowed, got %v", d)
	}
	if d := h.mouse(input.MouseUp, input.ButtonLeft, 500, 500, 0); d != input.Forward {
		t.Errorf("Expected unmatched release forwarded, got %v", d)
	}
	if d := h.mouse(input.MouseDown, input.ButtonMiddle, 500, 500, 0); d != input.Forward {
		t.Errorf("Expected middle press forwarded, got %v", d)
	}
}

func TestVisibilityToggle(t *testing.T) {
	h := newAppHarness(t)

	h.key(hotkey.VKF1+1, input.ModShift)
	if h.host.overlay.visible {
		t.Fatal("Expected overlay hidden")
	}
	if b := h.app.Multiplexer().WindowBounds(); !b.Empty() {
		t.Errorf("Expected empty bounds while hidden, got %v", b)
	}
	if d := h.mouse(input.MouseDown, input.ButtonRight, 100, 100, 0); d != input.Forward {
		t.Errorf("Expected press forwarded while hidden, got %v", d)
	}
	h.mouse(input.MouseUp, input.ButtonRight, 100, 100, 0)

	h.key(hotkey.VKF1+1, input.ModShift)
	if !h.host.overlay.visible {
		t.Fatal("Expected overlay shown again")
	}
	if d := h.mouse(input.MouseDown, input.ButtonRight, 100, 100, 0); d != input.Consume {
		t.Errorf("Expected press on the overlay consumed, got %v", d)
	}
}

func TestOverlayDragRepublishesBounds(t *testing.T) {
	h := newAppHarness(t)

	h.mouse(input.MouseDown, input.ButtonRight, 100, 100, 0)
	h.mouse(input.MouseMove, input.ButtonNone, 150, 130, 0)
	h.mouse(input.MouseUp, input.ButtonRight, 150, 130, 0)

	want := geometry.Point{X: 90, Y: 70}
	if h.host.overlay.pos != want {
		t.Fatalf("Expected overlay at %v, got %v", want, h.host.overlay.pos)
	}
	if b := h.app.Multiplexer().WindowBounds(); b.TopLeft() != want {
		t.Errorf("Expected republished bounds at %v, got %v", want, b)
	}
	if !h.host.overlay.clickThrough {
		t.Error("Expected click-through restored after the drag")
	}
}

func TestPlaceLens(t *testing.T) {
	primary := geometry.Rect{Right: 1920, Bottom: 1080}
	right := geometry.Rect{Left: 1920, Right: 3840, Bottom: 1080}
	tests := []struct {
		name    string
		cur     geometry.Point
		w, h    int
		display geometry.Rect
		want    geometry.Rect
	}{
		{"centered", geometry.Point{X: 960, Y: 540}, 1200, 800, primary, geometry.Rect{Left: 360, Top: 140, Right: 1560, Bottom: 940}},
		{"top left corner", geometry.Point{X: 10, Y: 10}, 1200, 800, primary, geometry.Rect{Right: 1200, Bottom: 800}},
		{"bottom right corner", geometry.Point{X: 1900, Y: 1060}, 1200, 800, primary, geometry.Rect{Left: 720, Top: 280, Right: 1920, Bottom: 1080}},
		{"second display", geometry.Point{X: 1925, Y: 5}, 1200, 800, right, geometry.Rect{Left: 1920, Right: 3120, Bottom: 800}},
		{"wider than display", geometry.Point{X: 960, Y: 540}, 2000, 800, primary, geometry.Rect{Left: -80, Top: 140, Right: 1920, Bottom: 940}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlaceLens(tt.cur, tt.w, tt.h, tt.display); got != tt.want {
				t.Errorf("PlaceLens() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLensSource(t *testing.T) {
	virtual := geometry.Rect{Right: 3840, Bottom: 1080}
	tests := []struct {
		name string
		cur  geometry.Point
		want geometry.Rect
	}{
		{"centered", geometry.Point{X: 1000, Y: 500}, geometry.Rect{Left: 800, Top: 367, Right: 1200, Bottom: 633}},
		{"clamped at origin", geometry.Point{X: 100, Y: 100}, geometry.Rect{Right: 400, Bottom: 266}},
		{"clamped at far edge", geometry.Point{X: 3830, Y: 1070}, geometry.Rect{Left: 3440, Top: 814, Right: 3840, Bottom: 1080}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LensSource(tt.cur, 1200, 800, 3, virtual); got != tt.want {
				t.Errorf("LensSource() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMagnifierToggle(t *testing.T) {
	h := newAppHarness(t)
	h.host.cursor = geometry.Point{X: 100, Y: 100}

	h.key(hotkey.VKF1+3, 0)
	if len(h.host.lenses) != 1 {
		t.Fatalf("Expected one lens, got %d", len(h.host.lenses))
	}
	l := h.host.lenses[0]
	if l.bounds != (geometry.Rect{Right: 1200, Bottom: 800}) {
		t.Errorf("Expected lens inside the display, got %v", l.bounds)
	}
	if len(l.zoom) != 1 || l.zoom[0] != 3 {
		t.Errorf("Expected zoom 3, got %v", l.zoom)
	}
	if len(l.rects) != 1 || l.rects[0] != (geometry.Rect{Right: 400, Bottom: 266}) {
		t.Errorf("Expected clamped source rect, got %v", l.rects)
	}

	h.key(hotkey.VKF1+3, 0)
	if !l.closed || h.app.Status().LensOpen {
		t.Error("Expected second press to close the lens")
	}
}

func TestAnnotationPerDisplay(t *testing.T) {
	h := newAppHarness(t)

	h.key(hotkey.VKF1+2, 0)
	if len(h.host.annotations) != 2 {
		t.Fatalf("Expected one annotation host per display, got %d", len(h.host.annotations))
	}
	h.key(hotkey.VKF1+2, 0)
	for i, c := range h.host.annotations {
		if !c.closed {
			t.Errorf("Expected annotation %d closed", i)
		}
	}
	if h.app.Status().AnnotationOpen {
		t.Error("Expected annotation off")
	}
}

func TestPointerFollowsCursor(t *testing.T) {
	h := newAppHarness(t)

	h.key(hotkey.VKF1+7, 0)
	p := h.host.pointer
	if !p.shown || p.size != 50 {
		t.Fatalf("Expected pointer shown at size 50, got shown=%v size=%d", p.shown, p.size)
	}
	if len(p.centers) != 1 || p.centers[0] != h.host.cursor {
		t.Errorf("Expected pointer centered on the cursor, got %v", p.centers)
	}

	h.mouse(input.MouseMove, input.ButtonNone, 700, 300, 0)
	if last := p.centers[len(p.centers)-1]; last != (geometry.Point{X: 700, Y: 300}) {
		t.Errorf("Expected pointer to follow the move, got %v", last)
	}

	h.key(hotkey.VKF1+7, 0)
	if p.shown {
		t.Error("Expected pointer hidden")
	}
	n := len(p.centers)
	h.mouse(input.MouseMove, input.ButtonNone, 10, 10, 0)
	if len(p.centers) != n {
		t.Error("Expected no recentering while hidden")
	}
}

func TestSettingsOpensConfigFile(t *testing.T) {
	h := newAppHarness(t)

	h.key(hotkey.VKF1, input.ModShift)
	if len(h.host.opened) != 1 || h.host.opened[0] != h.cfg.Path() {
		t.Fatalf("Expected config file opened, got %v", h.host.opened)
	}
	if _, err := os.Stat(h.cfg.Path()); err != nil {
		t.Errorf("Expected config file written: %v", err)
	}
}

func TestConfigReloadRebindsHotkeys(t *testing.T) {
	h := newAppHarness(t)

	cfg := h.cfg.Get()
	cfg.Hotkeys.Pointer = "F9"
	cfg.Overlay.AllowMove = false
	cfg.General.StartOnBoot = true
	cfg.General.UIScale = 1.5
	h.cfg.Set(cfg)
	h.loop.Drain()

	h.key(hotkey.VKF1+7, 0)
	if h.host.pointer.shown {
		t.Error("Expected old pointer binding released")
	}
	h.key(hotkey.VKF1+8, 0)
	if !h.host.pointer.shown {
		t.Error("Expected new pointer binding active")
	}
	if h.app.Multiplexer().AllowMove() {
		t.Error("Expected allow move disabled")
	}
	if h.host.overlay.uiScale != 1.5 {
		t.Errorf("Expected UI scale 1.5, got %v", h.host.overlay.uiScale)
	}
	if len(h.boot) != 2 || !h.boot[1] {
		t.Errorf("Expected start on boot enabled on reload, got %v", h.boot)
	}
}

func TestStyleReloadRepublishesBounds(t *testing.T) {
	h := newAppHarness(t)

	cfg := h.cfg.Get()
	cfg.General.UIScale = 2
	h.cfg.Set(cfg)
	h.loop.Drain()

	want := geometry.Rect{Left: 40, Top: 40, Right: 880, Bottom: 360}
	if got := h.app.Multiplexer().WindowBounds(); got != want {
		t.Fatalf("Expected republished bounds %v, got %v", want, got)
	}
	if d := h.mouse(input.MouseDown, input.ButtonRight, 600, 300, 0); d != input.Consume {
		t.Errorf("Expected press on the enlarged overlay consumed, got %v", d)
	}
	if h.app.Multiplexer().DragState() != overlay.DragDownInside {
		t.Errorf("Expected press inside, got %v", h.app.Multiplexer().DragState())
	}
	h.mouse(input.MouseUp, input.ButtonRight, 600, 300, 0)

	cfg.General.UIScale = 0.5
	h.cfg.Set(cfg)
	h.loop.Drain()
	if d := h.mouse(input.MouseDown, input.ButtonRight, 400, 150, 0); d != input.Forward {
		t.Errorf("Expected press outside the shrunk overlay forwarded, got %v", d)
	}
	h.mouse(input.MouseUp, input.ButtonRight, 400, 150, 0)
}

func TestKeyLabelsClearOverTime(t *testing.T) {
	h := newAppHarness(t)

	h.key('A', input.ModCtrl)
	if got := h.host.overlay.labels[0]; got != "Ctrl+A" {
		t.Fatalf("Expected newest label Ctrl+A, got %q", got)
	}
	h.clock.Advance(5 * time.Second)
	h.loop.Drain()
	if h.host.overlay.labels != (overlay.Labels{}) {
		t.Errorf("Expected every label cleared, got %q", h.host.overlay.labels)
	}
}
