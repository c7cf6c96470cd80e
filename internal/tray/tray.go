// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"encoding/binary"
	"sync"

	"github.com/getlantern/systray"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID        int
	Title     string
	Checkable bool
	Callback  func()

	checked bool
	item    *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	mu      sync.Mutex
	title   string
	items   []*MenuItem
	onReady func()
	onExit  func()
	readyCh chan struct{}
	quitCh  chan struct{}
}

// New creates a new system tray
func New(title, tooltip string) *Tray {
	t := &Tray{
		title:   title,
		items:   make([]*MenuItem, 0),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}

	t.onReady = func() {
		systray.SetTitle(t.title)
		systray.SetTooltip(tooltip)
		systray.SetIcon(getIcon())
		close(t.readyCh)
	}

	t.onExit = func() {
		close(t.quitCh)
	}

	return t
}

// AddMenuItem adds a menu item to the tray
func (t *Tray) AddMenuItem(title string, callback func()) int {
	return t.add(&MenuItem{Title: title, Callback: callback})
}

// AddCheckboxItem adds a menu item that shows a check mark
func (t *Tray) AddCheckboxItem(title string, checked bool, callback func()) int {
	return t.add(&MenuItem{Title: title, Checkable: true, checked: checked, Callback: callback})
}

func (t *Tray) add(mi *MenuItem) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	mi.ID = len(t.items)
	t.items = append(t.items, mi)
	return mi.ID
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, nil) // nil indicates separator
}

// SetItemChecked sets the checked state of a menu item. It may be called
// before the menu exists; the state is applied when the item is created.
func (t *Tray) SetItemChecked(id int, checked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	mi := t.items[id]
	mi.checked = checked
	if mi.item != nil {
		if checked {
			mi.item.Check()
		} else {
			mi.item.Uncheck()
		}
	}
}

// SetItemTitle changes the label of a menu item
func (t *Tray) SetItemTitle(id int, title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	mi := t.items[id]
	mi.Title = title
	if mi.item != nil {
		mi.item.SetTitle(title)
	}
}

// Run starts the tray event loop (blocks)
func (t *Tray) Run() {
	systray.Run(t.setupMenu, t.onExit)
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	t.onReady()

	// Wait for ready signal
	<-t.readyCh

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, menuItem := range t.items {
		if menuItem == nil {
			systray.AddSeparator()
			continue
		}

		if menuItem.Checkable {
			menuItem.item = systray.AddMenuItemCheckbox(menuItem.Title, "", menuItem.checked)
		} else {
			menuItem.item = systray.AddMenuItem(menuItem.Title, "")
		}

		// Handle clicks in goroutine
		if menuItem.Callback != nil {
			go func(mi *MenuItem) {
				for {
					select {
					case <-mi.item.ClickedCh:
						mi.Callback()
					case <-t.quitCh:
						return
					}
				}
			}(menuItem)
		}
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

// getIcon returns a 16x16 32-bit ICO: a light key cap on a transparent
// background.
func getIcon() []byte {
	const (
		size      = 16
		pixelSize = size * size * 4
		maskSize  = size * 4 // 1 bpp rows padded to 32 bits
		dibSize   = 40
		offset    = 6 + 16
	)
	icon := make([]byte, offset+dibSize+pixelSize+maskSize)

	// ICO header and directory entry
	binary.LittleEndian.PutUint16(icon[2:], 1) // type: icon
	binary.LittleEndian.PutUint16(icon[4:], 1) // count
	icon[6], icon[7] = size, size
	binary.LittleEndian.PutUint16(icon[10:], 1)  // planes
	binary.LittleEndian.PutUint16(icon[12:], 32) // bpp
	binary.LittleEndian.PutUint32(icon[14:], dibSize+pixelSize+maskSize)
	binary.LittleEndian.PutUint32(icon[18:], offset)

	// DIB header; height counts the XOR and AND planes
	dib := icon[offset:]
	binary.LittleEndian.PutUint32(dib[0:], dibSize)
	binary.LittleEndian.PutUint32(dib[4:], size)
	binary.LittleEndian.PutUint32(dib[8:], size*2)
	binary.LittleEndian.PutUint16(dib[12:], 1)
	binary.LittleEndian.PutUint16(dib[14:], 32)
	binary.LittleEndian.PutUint32(dib[20:], pixelSize)

	// BGRA pixels, bottom-up
	px := dib[dibSize:]
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			border := x == 1 || x == size-2 || y == 2 || y == size-3
			inside := x >= 1 && x <= size-2 && y >= 2 && y <= size-3
			if !inside {
				continue
			}
			i := (y*size + x) * 4
			if border {
				px[i], px[i+1], px[i+2] = 0x40, 0x40, 0x40
			} else {
				px[i], px[i+1], px[i+2] = 0xf0, 0xf0, 0xf0
			}
			px[i+3] = 0xff
		}
	}
	return icon
}
