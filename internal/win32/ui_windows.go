//go:build windows

package win32

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputoverlay/internal/eventloop"
)

// messageHandler handles the messages of one window. handled=false falls
// through to DefWindowProc.
type messageHandler interface {
	handleMessage(msg uint32, wparam, lparam uintptr) (ret uintptr, handled bool)
}

var (
	wndProcCallback = windows.NewCallback(dispatchWndProc)

	// UI thread only
	handlers = map[windows.Handle]messageHandler{}
)

func dispatchWndProc(hwnd, msg, wparam, lparam uintptr) uintptr {
	if h, ok := handlers[windows.Handle(hwnd)]; ok {
		if ret, handled := h.handleMessage(uint32(msg), wparam, lparam); handled {
			return ret
		}
	}
	if uint32(msg) == wmMouseActivate {
		return maNoActivate
	}
	ret, _, _ := procDefWindowProc.Call(hwnd, msg, wparam, lparam)
	return ret
}

// UI is the window thread. Work posted to the loop runs on this thread
// between window messages.
type UI struct {
	opts Options
	loop *eventloop.Loop

	threadID    uint32
	wakePending atomic.Bool
	stopOnce    sync.Once
	done        chan struct{}

	// UI thread only
	classes map[string]*uint16
	magRefs int
	host    *Host
}

// Start creates the UI thread and the persistent windows. It returns once
// the windows exist and the loop is wired to the thread's message pump.
func Start(opts Options) (*UI, error) {
	u := &UI{
		opts:    opts,
		loop:    opts.Loop,
		done:    make(chan struct{}),
		classes: make(map[string]*uint16),
	}

	ready := make(chan error, 1)
	go u.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return u, nil
}

// Host returns the window host. Its methods must run on the loop.
func (u *UI) Host() *Host { return u.host }

// Done is closed when the UI thread has exited.
func (u *UI) Done() <-chan struct{} { return u.done }

// Stop drains the loop one last time, destroys every window and ends the
// thread. Only the first call has an effect.
func (u *UI) Stop() {
	u.stopOnce.Do(func() {
		select {
		case <-u.done:
			return
		default:
		}
		procPostThreadMessage.Call(uintptr(u.threadID), wmQuit, 0, 0)
		<-u.done
	})
}

func (u *UI) wake() {
	if !u.wakePending.CompareAndSwap(false, true) {
		return
	}
	ret, _, err := procPostThreadMessage.Call(uintptr(u.threadID), wmApp, 0, 0)
	if ret == 0 {
		u.wakePending.Store(false)
		log.Printf("UI: Failed to wake UI thread: %v", err)
	}
}

func (u *UI) run(ready chan<- error) {
	// Windows belong to the thread that created them
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(u.done)

	u.threadID = windows.GetCurrentThreadId()

	host, err := newHost(u)
	if err != nil {
		ready <- err
		return
	}
	u.host = host
	u.loop.SetWaker(u.wake)
	ready <- nil
	u.wake()

	var m msg
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
		if m.Hwnd == 0 && m.Message == wmApp {
			u.wakePending.Store(false)
			u.loop.Drain()
			continue
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}

	u.loop.SetWaker(nil)
	u.loop.Drain()
	host.destroy()
	log.Println("UI: Thread stopped")
}

// registerClass registers a window class once per thread.
func (u *UI) registerClass(name string, background uintptr) (*uint16, error) {
	if cls, ok := u.classes[name]; ok {
		return cls, nil
	}
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	hMod, _, _ := procGetModuleHandle.Call(0)
	cursor, _, _ := procLoadCursor.Call(0, idcArrow)

	wc := wndClassEx{
		WndProc:    wndProcCallback,
		Instance:   windows.Handle(hMod),
		Cursor:     windows.Handle(cursor),
		Background: windows.Handle(background),
		ClassName:  namePtr,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if ret, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc))); ret == 0 {
		return nil, fmt.Errorf("%w: RegisterClassEx %s: %v", ErrWindowCreate, name, err)
	}
	u.classes[name] = namePtr
	return namePtr, nil
}

// magInit initializes the magnification runtime on first use.
func (u *UI) magInit() error {
	if u.magRefs == 0 {
		if err := procMagInitialize.Find(); err != nil {
			return err
		}
		if ret, _, err := procMagInitialize.Call(); ret == 0 {
			return &callError{op: "MagInitialize", err: err}
		}
	}
	u.magRefs++
	return nil
}

func (u *UI) magRelease() {
	if u.magRefs == 0 {
		return
	}
	u.magRefs--
	if u.magRefs == 0 {
		procMagUninitialize.Call()
	}
}
