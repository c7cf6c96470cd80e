//go:build windows

package win32

import "fmt"

// WaitForVBlank blocks until the compositor's next frame. It fails when
// desktop composition is off, and the frame source then falls back to a
// timer.
func WaitForVBlank() error {
	if err := procDwmFlush.Find(); err != nil {
		return err
	}
	if hr, _, _ := procDwmFlush.Call(); hr != 0 {
		return fmt.Errorf("DwmFlush failed: HRESULT 0x%08x", uint32(hr))
	}
	return nil
}
