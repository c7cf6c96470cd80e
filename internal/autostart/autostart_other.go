//go:build !windows

package autostart

import "errors"

var errNotWindows = errors.New("registry auto-start requires Windows")

func enableWindows() error { return errNotWindows }
func disableWindows() error { return errNotWindows }
func isEnabledWindows() bool { return false }
