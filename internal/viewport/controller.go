// Package viewport implements the follow viewport: a magnified view of the
// desktop around the cursor, re-centred every display frame by a damped
// spring and clamped to the virtual desktop.
package viewport

import (
	"fmt"
	"log"
	"math"
	"time"

	"golang.org/x/time/rate"

	"inputoverlay/internal/geometry"
)

const (
	MinScale       = 1.0
	MaxScale       = 8.0
	DefaultScale   = 2.0
	ZoomStep       = 1.1
	DefaultEpsilon = 0.05
)

// State is the lifecycle state of a Controller.
type State int

const (
	StateUninitialized State = iota
	StateTracking
	StateDragging
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateTracking:
		return "tracking"
	case StateDragging:
		return "dragging"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures a Controller. Zero fields take the defaults.
type Options struct {
	Spring  Spring
	Scale   float64
	Epsilon float64
}

// ClampScale bounds s to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return DefaultScale
	}
	return math.Min(MaxScale, math.Max(MinScale, s))
}

// settle is the bounded re-application policy after Open. The host window can
// reach its final compositor size/position a frame late, so the current view
// is applied on open, again on the next idle turn of the loop, and again on
// the first frame tick if the idle pass has not run yet. Each pass re-issues
// the same transform and rectangle.
type settle struct {
	idle  bool
	frame bool
}

// Controller drives one follow viewport from open to close.
// All methods must be called on the control loop.
type Controller struct {
	metrics Metrics
	opener  Opener
	frames  FrameSource
	sched   Scheduler
	spring  Spring
	epsilon float64

	state    State
	surface  Surface
	cancel   func()
	host     geometry.Rect
	scale    float64
	center   Vec
	velocity Vec
	viewW    int
	viewH    int
	src      geometry.Rect
	applied  bool
	lastTS   time.Duration
	haveTS   bool
	dragLast geometry.Point
	settle   settle

	warn rate.Sometimes
}

// NewController creates an uninitialized viewport controller.
func NewController(metrics Metrics, opener Opener, frames FrameSource, sched Scheduler, opts Options) *Controller {
	spring := opts.Spring
	if spring.Omega <= 0 {
		spring.Omega = DefaultOmega
	}
	if spring.Zeta <= 0 {
		spring.Zeta = DefaultZeta
	}
	if spring.MaxSpeed <= 0 {
		spring.MaxSpeed = DefaultMaxSpeed
	}
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	eps := opts.Epsilon
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	return &Controller{
		metrics: metrics,
		opener:  opener,
		frames:  frames,
		sched:   sched,
		spring:  spring,
		epsilon: eps,
		scale:   ClampScale(scale),
		warn:    rate.Sometimes{Interval: time.Second},
	}
}

// Open sizes the host to the display under the cursor, applies the initial
// view and starts per-frame tracking. It returns false, leaving the
// controller closed, if the display layout or the surface is unavailable.
func (c *Controller) Open() bool {
	if c.state != StateUninitialized {
		return false
	}

	layout, err := c.metrics.Layout()
	if err != nil {
		log.Printf("Viewport: Cannot read display layout: %v", err)
		c.state = StateClosed
		return false
	}

	cur, err := c.metrics.CursorPos()
	var disp geometry.Display
	if err != nil {
		// Fall back to the middle of the primary display
		disp = layout.Primary()
		x, y := disp.Bounds.Center()
		cur = geometry.Point{X: int(x), Y: int(y)}
	} else {
		disp, _ = layout.DisplayContaining(cur)
	}

	surface, err := c.opener.OpenSurface(disp.Bounds)
	if err != nil || surface == nil {
		log.Printf("Viewport: Failed to open magnification surface: %v", err)
		c.state = StateClosed
		return false
	}

	c.surface = surface
	c.host = disp.Bounds
	c.center = Vec{X: float64(cur.X), Y: float64(cur.Y)}
	c.velocity = Vec{}
	c.resize()
	c.applyTransform()
	c.applyRect(c.centerRect(), layout.VirtualBounds(), true)

	c.state = StateTracking
	c.settle = settle{idle: true, frame: true}
	c.cancel = c.frames.Subscribe(c.Tick)
	c.sched.Post(c.settleIdle)

	log.Printf("Viewport: Opened on %s %v at scale %.2f", disp.Name, disp.Bounds, c.scale)
	return true
}

func (c *Controller) settleIdle() {
	if !c.settle.idle || !c.active() {
		return
	}
	c.settle = settle{}
	c.reapply()
}

// reapply re-issues the transform and the rectangle for the current center.
func (c *Controller) reapply() {
	c.applyTransform()
	if bounds, ok := c.virtualBounds(); ok {
		c.applyRect(c.centerRect(), bounds, true)
	}
}

// Tick advances tracking by one display frame stamped ts.
func (c *Controller) Tick(ts time.Duration) {
	if !c.active() {
		return
	}

	if c.settle.frame {
		if c.settle.idle {
			c.reapply()
		}
		c.settle = settle{}
	}

	if !c.haveTS {
		c.lastTS = ts
		c.haveTS = true
		return
	}
	dt := (ts - c.lastTS).Seconds()
	c.lastTS = ts

	if c.state == StateDragging {
		return
	}

	cur, err := c.metrics.CursorPos()
	if err != nil {
		c.warn.Do(func() { log.Printf("Viewport: Skipping frame, cursor unavailable: %v", err) })
		return
	}

	target := Vec{X: float64(cur.X), Y: float64(cur.Y)}
	c.center, c.velocity = c.spring.Step(c.center, c.velocity, target, dt)

	if bounds, ok := c.virtualBounds(); ok {
		c.applyRect(c.centerRect(), bounds, false)
	}
}

// Wheel zooms by notches wheel steps (positive zooms in) and re-anchors the
// view on the cursor at p.
func (c *Controller) Wheel(notches int, p geometry.Point) {
	if c.state == StateClosed || notches == 0 {
		return
	}

	factor := math.Pow(ZoomStep, float64(notches))
	c.scale = ClampScale(c.scale * factor)
	c.center = Vec{X: float64(p.X), Y: float64(p.Y)}
	c.velocity = Vec{}
	c.resize()

	if c.surface == nil {
		return
	}
	c.applyTransform()
	if bounds, ok := c.virtualBounds(); ok {
		c.applyRect(c.centerRect(), bounds, true)
	}
}

// ButtonDown starts a manual pan at p and suspends tracking.
func (c *Controller) ButtonDown(p geometry.Point) {
	if c.state != StateTracking {
		return
	}
	c.dragLast = p
	c.velocity = Vec{}
	c.state = StateDragging
}

// DragTo pans the view by the cursor travel since the last sample. The content
// moves with the cursor, so the source rectangle moves the opposite way.
func (c *Controller) DragTo(p geometry.Point) {
	if c.state != StateDragging {
		return
	}
	d := p.Sub(c.dragLast)
	c.dragLast = p

	bounds, ok := c.virtualBounds()
	if !ok {
		return
	}
	c.applyRect(c.src.Translate(-d.X, -d.Y), bounds, true)
	cx, cy := c.src.Center()
	c.center = Vec{X: cx, Y: cy}
}

// ButtonUp ends a manual pan; tracking resumes from the panned position.
func (c *Controller) ButtonUp() {
	if c.state == StateDragging {
		c.state = StateTracking
	}
}

// Close stops frame delivery and releases the surface. It is idempotent.
func (c *Controller) Close() error {
	if c.state == StateClosed {
		return nil
	}
	c.state = StateClosed
	c.settle = settle{}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	var err error
	if c.surface != nil {
		err = c.surface.Close()
		c.surface = nil
	}
	log.Printf("Viewport: Closed")
	return err
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Scale returns the current magnification.
func (c *Controller) Scale() float64 { return c.scale }

// SourceRect returns the last rectangle applied to the surface.
func (c *Controller) SourceRect() geometry.Rect { return c.src }

// Center returns the current real-valued view center.
func (c *Controller) Center() Vec { return c.center }

// Velocity returns the current spring velocity.
func (c *Controller) Velocity() Vec { return c.velocity }

// ViewSize returns the size of the source rectangle.
func (c *Controller) ViewSize() (int, int) { return c.viewW, c.viewH }

func (c *Controller) active() bool {
	return c.state == StateTracking || c.state == StateDragging
}

func (c *Controller) resize() {
	c.viewW = int(float64(c.host.Width()) / c.scale)
	c.viewH = int(float64(c.host.Height()) / c.scale)
}

func (c *Controller) centerRect() geometry.Rect {
	return geometry.RectFromCenter(
		int(math.Round(c.center.X)),
		int(math.Round(c.center.Y)),
		c.viewW, c.viewH)
}

func (c *Controller) virtualBounds() (geometry.Rect, bool) {
	layout, err := c.metrics.Layout()
	if err != nil {
		c.warn.Do(func() { log.Printf("Viewport: Skipping update, display layout unavailable: %v", err) })
		return geometry.Rect{}, false
	}
	return layout.VirtualBounds(), true
}

func (c *Controller) applyTransform() {
	if err := c.surface.SetZoomTransform(c.scale, c.scale); err != nil {
		c.warn.Do(func() { log.Printf("Viewport: SetZoomTransform failed: %v", err) })
	}
}

// applyRect clamps r and sends it to the surface. Unless force is set, a
// move of the top-left corner below epsilon is skipped.
func (c *Controller) applyRect(r, bounds geometry.Rect, force bool) {
	r = geometry.Clamp(r, bounds)
	if !force && c.applied {
		dx := float64(r.Left - c.src.Left)
		dy := float64(r.Top - c.src.Top)
		if dx*dx+dy*dy < c.epsilon*c.epsilon {
			return
		}
	}

	if err := c.surface.SetSourceRect(r); err != nil {
		c.warn.Do(func() { log.Printf("Viewport: SetSourceRect failed: %v", err) })
		return
	}
	c.src = r
	c.applied = true
}
