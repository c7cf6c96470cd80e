package hotkey

import (
	"fmt"
	"strings"
)

// Virtual-key codes used by the overlay itself.
const (
	VKBack    = 0x08
	VKTab     = 0x09
	VKReturn  = 0x0D
	VKShift   = 0x10
	VKControl = 0x11
	VKMenu    = 0x12
	VKPause   = 0x13
	VKCapital = 0x14
	VKEscape  = 0x1B
	VKSpace   = 0x20
	VKF1      = 0x70
	VKF24     = 0x87
	VKLShift  = 0xA0
	VKRShift  = 0xA1
	VKLCtrl   = 0xA2
	VKRCtrl   = 0xA3
	VKLMenu   = 0xA4
	VKRMenu   = 0xA5
)

var namedKeys = map[uint32]string{
	VKBack:    "Backspace",
	VKTab:     "Tab",
	VKReturn:  "Enter",
	VKPause:   "Pause",
	VKCapital: "CapsLock",
	VKEscape:  "Esc",
	VKSpace:   "Space",
	0x21:      "PageUp",
	0x22:      "PageDown",
	0x23:      "End",
	0x24:      "Home",
	0x25:      "Left",
	0x26:      "Up",
	0x27:      "Right",
	0x28:      "Down",
	0x2C:      "PrintScreen",
	0x2D:      "Insert",
	0x2E:      "Delete",
	0x5B:      "Win",
	0x5C:      "Win",
	0x5D:      "Apps",
	0x90:      "NumLock",
	0x91:      "ScrollLock",
}

// KeyName returns the display name of a virtual-key code, e.g. "A", "7",
// "F5", "Enter", "Ctrl".
func KeyName(vk uint32) string {
	switch vk {
	case VKControl, VKLCtrl, VKRCtrl:
		return "Ctrl"
	case VKMenu, VKLMenu, VKRMenu:
		return "Alt"
	case VKShift, VKLShift, VKRShift:
		return "Shift"
	}
	if name, ok := namedKeys[vk]; ok {
		return name
	}

	// Letters A-Z
	if vk >= 0x41 && vk <= 0x5A {
		return string(rune(vk))
	}

	// Numbers 0-9
	if vk >= 0x30 && vk <= 0x39 {
		return string(rune(vk))
	}

	// Numpad 0-9
	if vk >= 0x60 && vk <= 0x69 {
		return fmt.Sprintf("Num%d", vk-0x60)
	}

	// F1-F24
	if vk >= VKF1 && vk <= VKF24 {
		return fmt.Sprintf("F%d", vk-VKF1+1)
	}

	return fmt.Sprintf("VK%02X", vk)
}

// IsModifier reports whether vk is a Shift, Ctrl or Alt key.
func IsModifier(vk uint32) bool {
	switch vk {
	case VKShift, VKLShift, VKRShift, VKControl, VKLCtrl, VKRCtrl, VKMenu, VKLMenu, VKRMenu:
		return true
	}
	return false
}

// KeyCode parses a key name as produced by KeyName. Matching is
// case-insensitive.
func KeyCode(name string) (uint32, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	upper := strings.ToUpper(name)

	switch upper {
	case "CTRL", "CONTROL":
		return VKControl, true
	case "ALT":
		return VKMenu, true
	case "SHIFT":
		return VKShift, true
	case "ESCAPE":
		return VKEscape, true
	case "RETURN":
		return VKReturn, true
	}
	for vk, n := range namedKeys {
		if strings.ToUpper(n) == upper {
			return vk, true
		}
	}

	if len(upper) == 1 {
		c := upper[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return uint32(c), true
		}
	}

	var n int
	if _, err := fmt.Sscanf(upper, "F%d", &n); err == nil && n >= 1 && n <= 24 && upper == fmt.Sprintf("F%d", n) {
		return uint32(VKF1 + n - 1), true
	}
	if _, err := fmt.Sscanf(upper, "NUM%d", &n); err == nil && n >= 0 && n <= 9 && upper == fmt.Sprintf("NUM%d", n) {
		return uint32(0x60 + n), true
	}
	var code uint32
	if _, err := fmt.Sscanf(upper, "VK%X", &code); err == nil && code > 0 && code < 0xFF {
		return code, true
	}
	return 0, false
}
