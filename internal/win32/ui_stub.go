//go:build !windows

package win32

import (
	"inputoverlay/internal/app"
)

// UI is unavailable outside Windows.
type UI struct{}

// Host is unavailable outside Windows and never constructed there.
type Host struct {
	app.Host
}

// Start returns ErrUnsupportedPlatform.
func Start(opts Options) (*UI, error) {
	return nil, ErrUnsupportedPlatform
}

func (u *UI) Host() *Host { return nil }

func (u *UI) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (u *UI) Stop() {}

// WaitForVBlank returns ErrUnsupportedPlatform; the frame source then uses
// its timer.
func WaitForVBlank() error { return ErrUnsupportedPlatform }
