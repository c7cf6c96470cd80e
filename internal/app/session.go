package app

import (
	"log"

	"inputoverlay/internal/hotkey"
	"inputoverlay/internal/input"
	"inputoverlay/internal/viewport"
)

// viewportSession is one open follow viewport. While current it is the
// multiplexer's modal sink: Esc closes it, the wheel zooms, left drag pans
// and right clicks are swallowed.
type viewportSession struct {
	app  *App
	ctrl *viewport.Controller

	// hook thread only; a release is consumed iff its press was
	held [4]bool
}

func (a *App) openViewport() {
	vc := a.cfg.Viewport
	ctrl := viewport.NewController(a.host, viewport.OpenerFunc(a.host.OpenViewport), a.frames, a.loop, viewport.Options{
		Spring:  viewport.Spring{Omega: vc.Omega, Zeta: vc.Zeta, MaxSpeed: vc.MaxSpeed},
		Scale:   vc.InitialScale,
		Epsilon: vc.ApplyEpsilon,
	})
	if !ctrl.Open() {
		log.Println("Viewport: Follow viewport unavailable")
		return
	}
	s := &viewportSession{app: a, ctrl: ctrl}
	a.session = s
	a.mux.SetModal(s)
}

func (a *App) closeViewport() {
	s := a.session
	if s == nil {
		return
	}
	a.session = nil
	a.mux.ClearModal(s)
	if err := s.ctrl.Close(); err != nil {
		log.Printf("Viewport: Close failed: %v", err)
	}
}

// post runs fn on the loop unless the session was closed in the meantime.
func (s *viewportSession) post(fn func(c *viewport.Controller)) {
	s.app.loop.Post(func() {
		if s.app.session == s {
			fn(s.ctrl)
		}
	})
}

func (s *viewportSession) ModalKey(ev input.KeyEvent) (input.Decision, bool) {
	if ev.VK != hotkey.VKEscape {
		return input.Forward, false
	}
	if ev.Down {
		s.app.loop.Post(func() {
			if s.app.session == s {
				s.app.closeViewport()
				s.app.publishStatus()
			}
		})
	}
	return input.Consume, true
}

func (s *viewportSession) ModalMouse(ev input.MouseEvent) (input.Decision, bool) {
	switch ev.Kind {
	case input.MouseMove:
		p := ev.Pt
		s.post(func(c *viewport.Controller) { c.DragTo(p) })
		return input.Forward, false

	case input.MouseWheel:
		n := ev.Wheel / input.WheelDelta
		if n == 0 {
			switch {
			case ev.Wheel > 0:
				n = 1
			case ev.Wheel < 0:
				n = -1
			}
		}
		p := ev.Pt
		s.post(func(c *viewport.Controller) { c.Wheel(n, p) })
		return input.Consume, true

	case input.MouseDown:
		switch ev.Button {
		case input.ButtonLeft:
			p := ev.Pt
			s.held[ev.Button] = true
			s.post(func(c *viewport.Controller) { c.ButtonDown(p) })
			return input.Consume, true
		case input.ButtonRight:
			s.held[ev.Button] = true
			return input.Consume, true
		}

	case input.MouseUp:
		if int(ev.Button) >= len(s.held) || !s.held[ev.Button] {
			return input.Forward, false
		}
		s.held[ev.Button] = false
		if ev.Button == input.ButtonLeft {
			s.post(func(c *viewport.Controller) { c.ButtonUp() })
		}
		return input.Consume, true
	}
	return input.Forward, false
}
