//go:build windows

package win32

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// magSetWindowSource calls MagSetWindowSource; RECT is passed by value,
// which the x64 ABI lowers to a pointer.
func magSetWindowSource(hwnd windows.Handle, r *rect) (uintptr, uintptr, error) {
	return procMagSetWindowSource.Call(uintptr(hwnd), uintptr(unsafe.Pointer(r)))
}
