//go:build windows

package win32

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procRegisterClassEx            = user32.NewProc("RegisterClassExW")
	procCreateWindowEx             = user32.NewProc("CreateWindowExW")
	procDestroyWindow              = user32.NewProc("DestroyWindow")
	procDefWindowProc              = user32.NewProc("DefWindowProcW")
	procGetMessage                 = user32.NewProc("GetMessageW")
	procTranslateMessage           = user32.NewProc("TranslateMessage")
	procDispatchMessage            = user32.NewProc("DispatchMessageW")
	procPostThreadMessage          = user32.NewProc("PostThreadMessageW")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procSetWindowPos               = user32.NewProc("SetWindowPos")
	procGetWindowLong              = user32.NewProc("GetWindowLongW")
	procSetWindowLong              = user32.NewProc("SetWindowLongW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procInvalidateRect             = user32.NewProc("InvalidateRect")
	procBeginPaint                 = user32.NewProc("BeginPaint")
	procEndPaint                   = user32.NewProc("EndPaint")
	procFillRect                   = user32.NewProc("FillRect")
	procDrawText                   = user32.NewProc("DrawTextW")
	procGetClientRect              = user32.NewProc("GetClientRect")
	procSetWindowRgn               = user32.NewProc("SetWindowRgn")
	procShowCursor                 = user32.NewProc("ShowCursor")
	procLoadCursor                 = user32.NewProc("LoadCursorW")

	gdi32                 = windows.NewLazySystemDLL("gdi32.dll")
	procCreateSolidBrush  = gdi32.NewProc("CreateSolidBrush")
	procCreateFont        = gdi32.NewProc("CreateFontW")
	procCreateEllipticRgn = gdi32.NewProc("CreateEllipticRgn")
	procDeleteObject      = gdi32.NewProc("DeleteObject")
	procSelectObject      = gdi32.NewProc("SelectObject")
	procSetTextColor      = gdi32.NewProc("SetTextColor")
	procSetBkMode         = gdi32.NewProc("SetBkMode")

	kernel32            = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")

	magnification              = windows.NewLazySystemDLL("Magnification.dll")
	procMagInitialize          = magnification.NewProc("MagInitialize")
	procMagUninitialize        = magnification.NewProc("MagUninitialize")
	procMagSetWindowSource     = magnification.NewProc("MagSetWindowSource")
	procMagSetWindowTransform  = magnification.NewProc("MagSetWindowTransform")
	procMagSetWindowFilterList = magnification.NewProc("MagSetWindowFilterList")

	dwmapi       = windows.NewLazySystemDLL("dwmapi.dll")
	procDwmFlush = dwmapi.NewProc("DwmFlush")
)

const (
	wsPopup   = 0x80000000
	wsChild   = 0x40000000
	wsVisible = 0x10000000

	wsExTopmost     = 0x00000008
	wsExTransparent = 0x00000020
	wsExToolWindow  = 0x00000080
	wsExLayered     = 0x00080000
	wsExNoActivate  = 0x08000000

	gwlExStyle = -20

	swHide           = 0
	swShowNoActivate = 4

	swpNoSize       = 0x0001
	swpNoMove       = 0x0002
	swpNoZOrder     = 0x0004
	swpNoActivate   = 0x0010
	swpFrameChanged = 0x0020

	hwndTopmost = ^uintptr(0)

	lwaColorKey = 0x1
	lwaAlpha    = 0x2

	wmDestroy       = 0x0002
	wmPaint         = 0x000F
	wmEraseBkgnd    = 0x0014
	wmMouseActivate = 0x0021
	wmQuit          = 0x0012
	wmApp           = 0x8000

	maNoActivate = 3

	dtSingleLine  = 0x0020
	dtVCenter     = 0x0004
	dtNoPrefix    = 0x0800
	dtEndEllipsis = 0x8000

	bkTransparent = 1
	idcArrow      = 32512

	msShowMagnifiedCursor = 0x0001
	mwFilterModeExclude   = 0

	fwSemibold = 600
)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type msg struct {
	Hwnd    windows.Handle
	Message uint32
	Wparam  uintptr
	Lparam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type paintStruct struct {
	Hdc       windows.Handle
	Erase     int32
	RcPaint   rect
	Restore   int32
	IncUpdate int32
	Reserved  [32]byte
}

type magTransform struct {
	V [3][3]float32
}

// rgb packs a COLORREF.
func rgb(r, g, b byte) uintptr {
	return uintptr(r) | uintptr(g)<<8 | uintptr(b)<<16
}

func createWindow(exStyle uint32, class *uint16, title string, style uint32, x, y, w, h int, parent windows.Handle) (windows.Handle, error) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	hMod, _, _ := procGetModuleHandle.Call(0)
	hwnd, _, callErr := procCreateWindowEx.Call(
		uintptr(exStyle),
		uintptr(unsafe.Pointer(class)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(style),
		uintptr(x), uintptr(y), uintptr(w), uintptr(h),
		uintptr(parent),
		0,
		hMod,
		0,
	)
	if hwnd == 0 {
		return 0, &callError{op: "CreateWindowEx", err: callErr}
	}
	return windows.Handle(hwnd), nil
}

func destroyWindow(hwnd windows.Handle) {
	if hwnd != 0 {
		procDestroyWindow.Call(uintptr(hwnd))
	}
}

func setAlpha(hwnd windows.Handle, alpha byte) error {
	ret, _, err := procSetLayeredWindowAttributes.Call(uintptr(hwnd), 0, uintptr(alpha), lwaAlpha)
	if ret == 0 {
		return &callError{op: "SetLayeredWindowAttributes", err: err}
	}
	return nil
}

func setExStyleBit(hwnd windows.Handle, bit uint32, on bool) error {
	style, _, _ := procGetWindowLong.Call(uintptr(hwnd), int32ToUintptr(gwlExStyle))
	next := uint32(style)
	if on {
		next |= bit
	} else {
		next &^= bit
	}
	if next == uint32(style) {
		return nil
	}
	procSetWindowLong.Call(uintptr(hwnd), int32ToUintptr(gwlExStyle), uintptr(next))
	ret, _, err := procSetWindowPos.Call(uintptr(hwnd), 0, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoZOrder|swpNoActivate|swpFrameChanged)
	if ret == 0 {
		return &callError{op: "SetWindowPos", err: err}
	}
	return nil
}

func placeWindow(hwnd windows.Handle, x, y, w, h int, flags uintptr) error {
	ret, _, err := procSetWindowPos.Call(uintptr(hwnd), hwndTopmost,
		uintptr(x), uintptr(y), uintptr(w), uintptr(h), flags|swpNoActivate)
	if ret == 0 {
		return &callError{op: "SetWindowPos", err: err}
	}
	return nil
}

func showWindow(hwnd windows.Handle, visible bool) {
	cmd := uintptr(swHide)
	if visible {
		cmd = swShowNoActivate
	}
	procShowWindow.Call(uintptr(hwnd), cmd)
}

func invalidate(hwnd windows.Handle) {
	procInvalidateRect.Call(uintptr(hwnd), 0, 1)
}

func int32ToUintptr(v int32) uintptr {
	return uintptr(v)
}

// callError carries the failing Win32 call and its last error.
type callError struct {
	op  string
	err error
}

func (e *callError) Error() string { return e.op + " failed: " + e.err.Error() }
func (e *callError) Unwrap() error { return e.err }
