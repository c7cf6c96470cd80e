//go:build windows

package input

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputoverlay/internal/geometry"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
)

const (
	WH_KEYBOARD_LL = 13
	WH_MOUSE_LL    = 14
	WM_QUIT        = 0x0012
	WM_KEYDOWN     = 0x0100
	WM_KEYUP       = 0x0101
	WM_SYSKEYDOWN  = 0x0104
	WM_SYSKEYUP    = 0x0105

	WM_MOUSEMOVE   = 0x0200
	WM_LBUTTONDOWN = 0x0201
	WM_LBUTTONUP   = 0x0202
	WM_RBUTTONDOWN = 0x0204
	WM_RBUTTONUP   = 0x0205
	WM_MBUTTONDOWN = 0x0207
	WM_MBUTTONUP   = 0x0208
	WM_MOUSEWHEEL  = 0x020A

	VK_SHIFT   = 0x10
	VK_CONTROL = 0x11
	VK_MENU    = 0x12
)

type KBDLLHOOKSTRUCT struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type MSLLHOOKSTRUCT struct {
	Point       struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    windows.Handle
	Message uint32
	Wparam  uintptr
	Lparam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// Hook owns one low-level keyboard hook and one low-level mouse hook, both
// serviced by a dedicated OS thread. Callbacks are bound to this value, so
// several hooks never share state.
type Hook struct {
	handler Handler
	guard   *Guard

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	threadID uint32
	keyboard uintptr
	mouse    uintptr
	done     chan struct{}
}

// NewHook creates a hook that delivers events to h through g.
func NewHook(h Handler, g *Guard) *Hook {
	if g == nil {
		g = &Guard{}
	}
	return &Hook{handler: h, guard: g, done: make(chan struct{})}
}

// Install registers both hooks and starts the hook thread. It returns once
// the hooks are in place or failed.
func (h *Hook) Install() error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return ErrAlreadyInstalled
	}
	h.started = true
	h.mu.Unlock()

	ready := make(chan error, 1)

	// Hooks must be registered in the same thread that runs the message loop
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(h.done)

		h.threadID = windows.GetCurrentThreadId()
		hMod, _, _ := procGetModuleHandle.Call(0)

		var err error
		h.keyboard, _, err = procSetWindowsHookEx.Call(
			WH_KEYBOARD_LL,
			windows.NewCallback(h.keyboardProc),
			hMod,
			0,
		)
		if h.keyboard == 0 {
			ready <- fmt.Errorf("%w: keyboard: %v", ErrHookInstall, err)
			return
		}

		h.mouse, _, err = procSetWindowsHookEx.Call(
			WH_MOUSE_LL,
			windows.NewCallback(h.mouseProc),
			hMod,
			0,
		)
		if h.mouse == 0 {
			procUnhookWindowsHookEx.Call(h.keyboard)
			ready <- fmt.Errorf("%w: mouse: %v", ErrHookInstall, err)
			return
		}

		log.Println("Hook: Windows low-level keyboard and mouse hooks installed.")
		ready <- nil

		var m msg
		for {
			ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
			procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
		}

		procUnhookWindowsHookEx.Call(h.keyboard)
		procUnhookWindowsHookEx.Call(h.mouse)
		log.Println("Hook: Hooks removed.")
	}()

	return <-ready
}

// Uninstall removes the hooks and stops the hook thread. Only the first call
// has an effect.
func (h *Hook) Uninstall() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		started := h.started
		h.mu.Unlock()
		if !started {
			return
		}
		select {
		case <-h.done:
			return
		default:
		}
		procPostThreadMessage.Call(uintptr(h.threadID), WM_QUIT, 0, 0)
		<-h.done
	})
}

func (h *Hook) keyboardProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	next := func() uintptr {
		ret, _, _ := procCallNextHookEx.Call(h.keyboard, uintptr(nCode), wParam, lParam)
		return ret
	}
	if nCode < 0 {
		return next()
	}

	return h.guard.Dispatch("keyboard", func() Decision {
		kbd := (*KBDLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		ev := KeyEvent{
			VK:   kbd.VkCode,
			Down: wParam == WM_KEYDOWN || wParam == WM_SYSKEYDOWN,
			Mods: liveModifiers(),
		}
		return h.handler.HandleKey(ev)
	}, next)
}

func (h *Hook) mouseProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	next := func() uintptr {
		ret, _, _ := procCallNextHookEx.Call(h.mouse, uintptr(nCode), wParam, lParam)
		return ret
	}
	if nCode < 0 {
		return next()
	}

	return h.guard.Dispatch("mouse", func() Decision {
		ms := (*MSLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		ev := MouseEvent{Pt: geometry.Point{X: int(ms.Point.X), Y: int(ms.Point.Y)}}

		switch wParam {
		case WM_MOUSEMOVE:
			ev.Kind = MouseMove
		case WM_LBUTTONDOWN:
			ev.Kind, ev.Button = MouseDown, ButtonLeft
		case WM_LBUTTONUP:
			ev.Kind, ev.Button = MouseUp, ButtonLeft
		case WM_RBUTTONDOWN:
			ev.Kind, ev.Button = MouseDown, ButtonRight
		case WM_RBUTTONUP:
			ev.Kind, ev.Button = MouseUp, ButtonRight
		case WM_MBUTTONDOWN:
			ev.Kind, ev.Button = MouseDown, ButtonMiddle
		case WM_MBUTTONUP:
			ev.Kind, ev.Button = MouseUp, ButtonMiddle
		case WM_MOUSEWHEEL:
			ev.Kind = MouseWheel
			ev.Wheel = int(int16(ms.MouseData >> 16))
		default:
			return Forward
		}
		return h.handler.HandleMouse(ev)
	}, next)
}

func liveModifiers() Modifiers {
	var m Modifiers
	if keyDown(VK_SHIFT) {
		m |= ModShift
	}
	if keyDown(VK_CONTROL) {
		m |= ModCtrl
	}
	if keyDown(VK_MENU) {
		m |= ModAlt
	}
	return m
}

func keyDown(vk uintptr) bool {
	ret, _, _ := procGetAsyncKeyState.Call(vk)
	return ret&0x8000 != 0
}
