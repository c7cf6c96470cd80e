// Package app wires the overlay together: the hook multiplexer, the overlay
// window, the follow viewport and the auxiliary tools, all driven from the
// single control loop.
package app

import (
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/time/rate"

	"inputoverlay/internal/config"
	"inputoverlay/internal/eventloop"
	"inputoverlay/internal/geometry"
	"inputoverlay/internal/hotkey"
	"inputoverlay/internal/input"
	"inputoverlay/internal/overlay"
	"inputoverlay/internal/viewport"
)

// Startup hints shown until the first key press pushes them out.
const (
	HintMove = "RightDrag: move"
	HintHelp = "Shift+F1: Help"
)

// Status is the on/off state of each tool, reported after every change.
type Status struct {
	OverlayVisible bool
	ViewportOpen   bool
	LensOpen       bool
	AnnotationOpen bool
	PointerOn      bool
}

// Options configures an App.
type Options struct {
	Loop   *eventloop.Loop
	Frames viewport.FrameSource

	// Clock drives the label and glyph timers; defaults to Loop
	Clock eventloop.Clock

	Host   Host
	Config *config.Manager

	// NewHook creates the global hook around the multiplexer
	NewHook func(h input.Handler, g *input.Guard) Hook

	// Autostart enables or disables start on login; nil skips it
	Autostart func(enabled bool) error

	// OnStatus runs on the loop after every tool toggle; may be nil
	OnStatus func(Status)
}

// App owns all overlay state. Except for New, every method runs on the
// control loop.
type App struct {
	loop      *eventloop.Loop
	frames    viewport.FrameSource
	host      Host
	cfgMgr    *config.Manager
	autostart func(bool) error
	onStatus  func(Status)

	mux    *overlay.Multiplexer
	window *trackedWindow
	hook   Hook

	cfg         config.Config
	configured  bool
	session     *viewportSession
	lens        viewport.Surface
	annotations []io.Closer
	pointerOn   bool

	warn  rate.Sometimes
	fault rate.Sometimes
}

// trackedWindow republishes the overlay bounds to the hook side after every
// move so the next press is tested against the current position.
type trackedWindow struct {
	OverlayWindow
	mux *overlay.Multiplexer
}

func (w *trackedWindow) MoveTo(p geometry.Point) error {
	err := w.OverlayWindow.MoveTo(p)
	w.publish()
	return err
}

// SetStyle may resize the window, so the new bounds are republished too.
func (w *trackedWindow) SetStyle(uiScale, textOpacity float64) error {
	err := w.OverlayWindow.SetStyle(uiScale, textOpacity)
	w.publish()
	return err
}

func (w *trackedWindow) publish() {
	if w.OverlayWindow.Visible() {
		w.mux.SetWindowBounds(w.OverlayWindow.Bounds())
	} else {
		w.mux.SetWindowBounds(geometry.Rect{})
	}
}

// New builds the app and its hook handler without touching any window.
func New(opts Options) *App {
	cfg := opts.Config.Get()
	a := &App{
		loop:      opts.Loop,
		frames:    opts.Frames,
		host:      opts.Host,
		cfgMgr:    opts.Config,
		autostart: opts.Autostart,
		onStatus:  opts.OnStatus,
		warn:      rate.Sometimes{Interval: time.Second},
		fault:     rate.Sometimes{Interval: time.Second},
	}

	clock := opts.Clock
	if clock == nil {
		clock = opts.Loop
	}

	button, err := input.ParseButton(cfg.Overlay.DragButton)
	if err != nil {
		button = input.ButtonRight
	}

	a.window = &trackedWindow{OverlayWindow: opts.Host.Overlay()}
	a.mux = overlay.NewMultiplexer(overlay.Options{
		Loop:          opts.Loop,
		Clock:         clock,
		Window:        a.window,
		Hotkeys:       hotkey.NewTable(nil),
		OnAction:      a.Dispatch,
		OnMove:        a.onMove,
		DragButton:    button,
		DragThreshold: cfg.Overlay.DragThreshold,
		AllowMove:     cfg.Overlay.AllowMove,
	})
	a.window.mux = a.mux

	guard := &input.Guard{OnFault: func(f input.Fault) {
		a.fault.Do(func() { log.Printf("Hook: Recovered from fault: %v\n%s", f, f.Stack) })
	}}
	if opts.NewHook != nil {
		a.hook = opts.NewHook(a.mux, guard)
	}
	return a
}

// Multiplexer returns the hook handler.
func (a *App) Multiplexer() *overlay.Multiplexer { return a.mux }

// Start applies the configuration, shows the overlay and installs the hooks.
func (a *App) Start() error {
	a.ApplyConfig(a.cfgMgr.Get())
	a.cfgMgr.RegisterChangeCallback(func() {
		a.loop.Post(func() { a.ApplyConfig(a.cfgMgr.Get()) })
	})

	w := a.window
	if err := w.MoveTo(geometry.Point{X: a.cfg.Overlay.X, Y: a.cfg.Overlay.Y}); err != nil {
		log.Printf("Overlay: Failed to position window: %v", err)
	}
	if err := w.SetVisible(true); err != nil {
		return fmt.Errorf("show overlay: %w", err)
	}
	if err := w.SetClickThrough(true); err != nil {
		log.Printf("Overlay: Failed to enable click-through: %v", err)
	}
	w.publish()
	w.SetGlyph(overlay.GlyphIdle)
	a.mux.History().Seed(HintMove, HintHelp)

	if a.hook != nil {
		if err := a.hook.Install(); err != nil {
			return err
		}
	}
	log.Printf("Overlay: Running at %v", w.Bounds())
	a.publishStatus()
	return nil
}

// Stop removes the hooks and closes every tool.
func (a *App) Stop() {
	if a.hook != nil {
		a.hook.Uninstall()
	}
	a.closeViewport()
	a.closeLens()
	a.closeAnnotations()
	if a.pointerOn {
		a.setPointer(false)
	}
	a.mux.History().Stop()
	log.Println("Overlay: Stopped")
}

// ApplyConfig republishes hotkeys and flags read by the hook thread and
// updates the loop-side settings.
func (a *App) ApplyConfig(cfg config.Config) {
	cfg.Normalize()
	prev, first := a.cfg, !a.configured
	a.cfg = cfg
	a.configured = true

	bindings, err := hotkey.ParseAll(cfg.Hotkeys.Map())
	if err != nil {
		log.Printf("Config: Ignoring invalid hotkeys: %v", err)
	}
	a.mux.Hotkeys().Set(bindings)
	a.mux.SetAllowMove(cfg.Overlay.AllowMove)
	log.Printf("Hotkey: %d bindings active, allow move: %v", a.mux.Hotkeys().Len(), cfg.Overlay.AllowMove)

	var delays [overlay.HistorySize]time.Duration
	for i, s := range cfg.Overlay.KeyClearSeconds {
		delays[i] = time.Duration(s * float64(time.Second))
	}
	a.mux.History().SetDelays(delays)
	a.mux.Glyph().SetRevert(time.Duration(cfg.Overlay.WheelGlyphMs) * time.Millisecond)

	if err := a.window.SetStyle(cfg.General.UIScale, cfg.General.TextOpacity); err != nil {
		log.Printf("Overlay: Failed to apply style: %v", err)
	}

	switch {
	case first || cfg.Pointer.Enabled != prev.Pointer.Enabled:
		a.setPointer(cfg.Pointer.Enabled)
	case a.pointerOn && cfg.Pointer != prev.Pointer:
		a.setPointer(true)
	}

	if a.autostart != nil && (first || cfg.General.StartOnBoot != prev.General.StartOnBoot) {
		if err := a.autostart(cfg.General.StartOnBoot); err != nil {
			log.Printf("Config: Failed to update start on boot: %v", err)
		}
	}
}

// Dispatch runs a hotkey or tray action.
func (a *App) Dispatch(action hotkey.Action) {
	debugf("Dispatch %v", action)
	switch action {
	case hotkey.ActionSettings:
		a.openSettings()
	case hotkey.ActionVisibility:
		a.toggleVisibility()
	case hotkey.ActionAnnotation:
		if len(a.annotations) > 0 {
			a.closeAnnotations()
		} else {
			a.openAnnotations()
		}
	case hotkey.ActionMagnifier:
		if a.lens != nil {
			a.closeLens()
		} else {
			a.openLens()
		}
	case hotkey.ActionFollowViewport:
		if a.session != nil {
			a.closeViewport()
		} else {
			a.openViewport()
		}
	case hotkey.ActionPointer:
		a.setPointer(!a.pointerOn)
	default:
		return
	}
	a.publishStatus()
}

// Status returns the current tool state.
func (a *App) Status() Status {
	return Status{
		OverlayVisible: a.window.Visible(),
		ViewportOpen:   a.session != nil,
		LensOpen:       a.lens != nil,
		AnnotationOpen: len(a.annotations) > 0,
		PointerOn:      a.pointerOn,
	}
}

func (a *App) publishStatus() {
	if a.onStatus != nil {
		a.onStatus(a.Status())
	}
}

func (a *App) openSettings() {
	if err := a.cfgMgr.EnsureFile(); err != nil {
		log.Printf("Config: Failed to write %s: %v", a.cfgMgr.Path(), err)
		return
	}
	if err := a.host.OpenFile(a.cfgMgr.Path()); err != nil {
		log.Printf("Config: Failed to open %s: %v", a.cfgMgr.Path(), err)
	}
}

func (a *App) toggleVisibility() {
	visible := !a.window.Visible()
	if err := a.window.SetVisible(visible); err != nil {
		log.Printf("Overlay: Failed to change visibility: %v", err)
	}
	a.window.publish()
}

func (a *App) openAnnotations() {
	layout, err := a.host.Layout()
	if err != nil {
		log.Printf("Annotation: Cannot read display layout: %v", err)
		return
	}
	for _, d := range layout.Displays() {
		c, err := a.host.OpenAnnotation(d)
		if err != nil {
			log.Printf("Annotation: Failed to open on %s: %v", d.Name, err)
			continue
		}
		a.annotations = append(a.annotations, c)
	}
	log.Printf("Annotation: Opened %d hosts", len(a.annotations))
}

func (a *App) closeAnnotations() {
	for _, c := range a.annotations {
		if err := c.Close(); err != nil {
			log.Printf("Annotation: Close failed: %v", err)
		}
	}
	a.annotations = nil
}

func (a *App) setPointer(on bool) {
	p := a.host.Pointer()
	if !on {
		a.pointerOn = false
		if err := p.Hide(); err != nil {
			log.Printf("Pointer: Hide failed: %v", err)
		}
		return
	}

	if err := p.Show(a.cfg.Pointer.Size, a.cfg.Pointer.Opacity); err != nil {
		log.Printf("Pointer: Show failed: %v", err)
		a.pointerOn = false
		return
	}
	a.pointerOn = true
	if cur, err := a.host.CursorPos(); err == nil {
		a.check("Pointer", p.CenterOn(cur))
	}
}

func (a *App) onMove(p geometry.Point) {
	if a.pointerOn {
		a.check("Pointer", a.host.Pointer().CenterOn(p))
	}
}

func (a *App) check(component string, err error) {
	if err != nil {
		a.warn.Do(func() { log.Printf("%s: %v", component, err) })
	}
}
