//go:build !windows

package input

// Hook is unavailable off Windows.
type Hook struct{}

// NewHook returns a hook that cannot be installed on this platform.
func NewHook(h Handler, g *Guard) *Hook {
	return &Hook{}
}

// Install always fails with ErrUnsupportedPlatform.
func (h *Hook) Install() error {
	return ErrUnsupportedPlatform
}

// Uninstall is a no-op.
func (h *Hook) Uninstall() {}
