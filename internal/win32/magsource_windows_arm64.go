//go:build windows

package win32

import "golang.org/x/sys/windows"

// magSetWindowSource calls MagSetWindowSource; a 16-byte RECT travels in two
// registers on arm64.
func magSetWindowSource(hwnd windows.Handle, r *rect) (uintptr, uintptr, error) {
	lo := uintptr(uint32(r.Left)) | uintptr(uint32(r.Top))<<32
	hi := uintptr(uint32(r.Right)) | uintptr(uint32(r.Bottom))<<32
	return procMagSetWindowSource.Call(uintptr(hwnd), lo, hi)
}
