package overlay

import (
	"strings"
	"time"

	"inputoverlay/internal/eventloop"
	"inputoverlay/internal/hotkey"
	"inputoverlay/internal/input"
)

// DefaultClearDelays clears the three labels slightly apart so they do not
// vanish at once.
var DefaultClearDelays = [HistorySize]time.Duration{
	5000 * time.Millisecond,
	4800 * time.Millisecond,
	4700 * time.Millisecond,
}

// FormatLabel renders a key press as "Ctrl+Shift+Alt+Key" using the live
// modifier state. A modifier is not repeated as its own prefix.
func FormatLabel(vk uint32, mods input.Modifiers) string {
	name := hotkey.KeyName(vk)
	var b strings.Builder
	if mods.Has(input.ModCtrl) && name != "Ctrl" {
		b.WriteString("Ctrl+")
	}
	if mods.Has(input.ModShift) && name != "Shift" {
		b.WriteString("Shift+")
	}
	if mods.Has(input.ModAlt) && name != "Alt" {
		b.WriteString("Alt+")
	}
	b.WriteString(name)
	return b.String()
}

// KeyHistory is the rolling list of recent key labels. Each slot clears after
// its own delay, restarted on every push. It runs on the control loop.
type KeyHistory struct {
	clock    eventloop.Clock
	delays   [HistorySize]time.Duration
	labels   Labels
	timers   [HistorySize]eventloop.Timer
	onChange func(Labels)
}

// NewKeyHistory creates an empty history. onChange may be nil.
func NewKeyHistory(clock eventloop.Clock, delays [HistorySize]time.Duration, onChange func(Labels)) *KeyHistory {
	return &KeyHistory{clock: clock, delays: delays, onChange: onChange}
}

// Seed shows labels without scheduling a clear, e.g. startup hints.
func (h *KeyHistory) Seed(labels ...string) {
	h.stopTimers()
	h.labels = Labels{}
	copy(h.labels[:], labels)
	h.changed()
}

// Push shifts the history down and shows label as the most recent entry.
func (h *KeyHistory) Push(label string) {
	copy(h.labels[1:], h.labels[:HistorySize-1])
	h.labels[0] = label

	h.stopTimers()
	for i := range h.labels {
		if h.labels[i] == "" {
			continue
		}
		i := i
		h.timers[i] = h.clock.AfterFunc(h.delays[i], func() {
			h.timers[i] = nil
			h.labels[i] = ""
			h.changed()
		})
	}
	h.changed()
}

// SetDelays changes the clear delays for later pushes.
func (h *KeyHistory) SetDelays(delays [HistorySize]time.Duration) {
	h.delays = delays
}

// Labels returns the current labels.
func (h *KeyHistory) Labels() Labels { return h.labels }

// Stop cancels pending clears.
func (h *KeyHistory) Stop() { h.stopTimers() }

func (h *KeyHistory) stopTimers() {
	for i, t := range h.timers {
		if t != nil {
			t.Stop()
			h.timers[i] = nil
		}
	}
}

func (h *KeyHistory) changed() {
	if h.onChange != nil {
		h.onChange(h.labels)
	}
}
