//go:build !windows

package display

import "inputoverlay/internal/geometry"

type stubProvider struct{}

// NewProvider returns the platform display provider.
func NewProvider() Provider {
	return stubProvider{}
}

func (stubProvider) Displays() ([]geometry.Display, error) {
	return nil, ErrUnsupportedPlatform
}

func (stubProvider) CursorPos() (geometry.Point, error) {
	return geometry.Point{}, ErrUnsupportedPlatform
}
