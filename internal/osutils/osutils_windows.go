//go:build windows

package osutils

import (
	"fmt"
	"log"

	"golang.org/x/sys/windows"
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSetDPIAwareContext = user32.NewProc("SetProcessDpiAwarenessContext")
	procSetProcessDPIAware = user32.NewProc("SetProcessDPIAware")
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2
const dpiPerMonitorV2 = ^uintptr(3)

// IsAdmin checks if the current process has administrative privileges
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err = windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}

	return member
}

// SetDPIAware opts the process into per-monitor DPI awareness so hook
// coordinates, window positions and monitor rectangles share physical
// pixels. It falls back to system awareness on older systems.
func SetDPIAware() error {
	if procSetDPIAwareContext.Find() == nil {
		if ret, _, _ := procSetDPIAwareContext.Call(dpiPerMonitorV2); ret != 0 {
			return nil
		}
	}
	if ret, _, err := procSetProcessDPIAware.Call(); ret == 0 {
		return fmt.Errorf("SetProcessDPIAware failed: %v", err)
	}
	log.Println("OS: Per-monitor DPI awareness unavailable, using system awareness")
	return nil
}

// OpenPath opens path with its associated application.
func OpenPath(path string) error {
	verbPtr, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	if err := windows.ShellExecute(0, verbPtr, pathPtr, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}
