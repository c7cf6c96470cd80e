//go:build windows

package display

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputoverlay/internal/geometry"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfo      = user32.NewProc("GetMonitorInfoW")
	procGetCursorPos        = user32.NewProc("GetCursorPos")

	// One callback for the process; syscall.NewCallback slots are never freed.
	enumCallback = syscall.NewCallback(enumMonitor)
)

const monitorInfoPrimary = 0x00000001

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfoEx struct {
	Size    uint32
	Monitor rect
	Work    rect
	Flags   uint32
	Device  [32]uint16
}

type windowsProvider struct{}

// NewProvider returns the platform display provider.
func NewProvider() Provider {
	return windowsProvider{}
}

func (windowsProvider) Displays() ([]geometry.Display, error) {
	var displays []geometry.Display
	ret, _, err := procEnumDisplayMonitors.Call(0, 0, enumCallback, uintptr(unsafe.Pointer(&displays)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %v", err)
	}
	if len(displays) == 0 {
		return nil, ErrNoDisplays
	}
	return displays, nil
}

func enumMonitor(hMonitor, hdc, lprc, data uintptr) uintptr {
	displays := (*[]geometry.Display)(unsafe.Pointer(data))

	var mi monitorInfoEx
	mi.Size = uint32(unsafe.Sizeof(mi))
	ret, _, _ := procGetMonitorInfo.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
	if ret != 0 {
		*displays = append(*displays, geometry.Display{
			Name:     windows.UTF16ToString(mi.Device[:]),
			Bounds:   toRect(mi.Monitor),
			WorkArea: toRect(mi.Work),
			Primary:  mi.Flags&monitorInfoPrimary != 0,
		})
	}
	return 1 // continue enumeration
}

func (windowsProvider) CursorPos() (geometry.Point, error) {
	var pt struct{ X, Y int32 }
	ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return geometry.Point{}, ErrCursorUnavailable
	}
	return geometry.Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

func toRect(r rect) geometry.Rect {
	return geometry.Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}
