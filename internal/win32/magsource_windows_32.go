//go:build windows && (386 || arm)

package win32

import "golang.org/x/sys/windows"

// magSetWindowSource calls MagSetWindowSource with RECT pushed by value.
func magSetWindowSource(hwnd windows.Handle, r *rect) (uintptr, uintptr, error) {
	return procMagSetWindowSource.Call(uintptr(hwnd),
		uintptr(r.Left), uintptr(r.Top), uintptr(r.Right), uintptr(r.Bottom))
}
