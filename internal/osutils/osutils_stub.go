//go:build !windows

package osutils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// IsAdmin is a stub for non-Windows platforms
func IsAdmin() bool {
	return false
}

// SetDPIAware is a no-op outside Windows
func SetDPIAware() error {
	return nil
}

// OpenPath opens path with the desktop's default handler
func OpenPath(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("OpenPath not supported on %s", runtime.GOOS)
	}
	return cmd.Start()
}
