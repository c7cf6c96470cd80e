// Package autostart registers the overlay to start on login through the
// current user's Run key.
package autostart

// Enable enables auto-start on login
func Enable() error {
	return enableWindows()
}

// Set enables or disables auto-start on login
func Set(enabled bool) error {
	if enabled == IsEnabled() {
		return nil
	}
	if enabled {
		return Enable()
	}
	return Disable()
}

// Disable disables auto-start on login
func Disable() error {
	return disableWindows()
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() bool {
	return isEnabledWindows()
}
