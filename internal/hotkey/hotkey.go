// Package hotkey holds the global hotkey bindings. Bindings are published as
// immutable snapshots so the hook thread can match keys without locking while
// the settings side rebinds them.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var ErrUnknownKey = errors.New("unknown key")

// Action is a hotkey-triggered overlay action.
type Action int

const (
	ActionNone Action = iota
	ActionSettings
	ActionVisibility
	ActionAnnotation
	ActionMagnifier
	ActionFollowViewport
	ActionPointer
)

// Actions lists every bindable action in match priority order.
var Actions = []Action{
	ActionSettings,
	ActionVisibility,
	ActionAnnotation,
	ActionMagnifier,
	ActionFollowViewport,
	ActionPointer,
}

func (a Action) String() string {
	switch a {
	case ActionSettings:
		return "settings"
	case ActionVisibility:
		return "visibility"
	case ActionAnnotation:
		return "annotation"
	case ActionMagnifier:
		return "magnifier"
	case ActionFollowViewport:
		return "follow_viewport"
	case ActionPointer:
		return "pointer"
	default:
		return "none"
	}
}

// Binding is a key with an optional Shift requirement. Other modifiers are
// ignored when matching.
type Binding struct {
	Key          uint32
	RequireShift bool
}

// Parse reads a binding such as "F3" or "Shift+F1".
func Parse(s string) (Binding, error) {
	parts := strings.Split(s, "+")
	var b Binding
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i < len(parts)-1 {
			if !strings.EqualFold(p, "shift") {
				return Binding{}, fmt.Errorf("%w: unsupported modifier %q in %q", ErrUnknownKey, p, s)
			}
			b.RequireShift = true
			continue
		}
		vk, ok := KeyCode(p)
		if !ok {
			return Binding{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
		}
		b.Key = vk
	}
	return b, nil
}

// String formats b the way Parse reads it.
func (b Binding) String() string {
	if b.Key == 0 {
		return ""
	}
	if b.RequireShift {
		return "Shift+" + KeyName(b.Key)
	}
	return KeyName(b.Key)
}

// Matches reports whether a key-down of vk with the given Shift state
// triggers b.
func (b Binding) Matches(vk uint32, shift bool) bool {
	return b.Key != 0 && b.Key == vk && (!b.RequireShift || shift)
}

type entry struct {
	action  Action
	binding Binding
}

// Table maps actions to bindings. Reads are lock-free.
type Table struct {
	snap atomic.Pointer[[]entry]
}

// NewTable creates a table from bindings.
func NewTable(bindings map[Action]Binding) *Table {
	t := &Table{}
	t.Set(bindings)
	return t
}

// Set replaces all bindings at once. Readers see either the old or the new
// table, never a mix.
func (t *Table) Set(bindings map[Action]Binding) {
	entries := make([]entry, 0, len(bindings))
	for _, a := range Actions {
		if b, ok := bindings[a]; ok && b.Key != 0 {
			entries = append(entries, entry{action: a, binding: b})
		}
	}
	t.snap.Store(&entries)
}

// Match returns the first action bound to a key-down of vk.
func (t *Table) Match(vk uint32, shift bool) (Action, bool) {
	p := t.snap.Load()
	if p == nil {
		return ActionNone, false
	}
	for _, e := range *p {
		if e.binding.Matches(vk, shift) {
			return e.action, true
		}
	}
	return ActionNone, false
}

// Len returns the number of bound actions.
func (t *Table) Len() int {
	p := t.snap.Load()
	if p == nil {
		return 0
	}
	return len(*p)
}

// Binding returns the binding of a.
func (t *Table) Binding(a Action) (Binding, bool) {
	p := t.snap.Load()
	if p == nil {
		return Binding{}, false
	}
	for _, e := range *p {
		if e.action == a {
			return e.binding, true
		}
	}
	return Binding{}, false
}

// ParseAll parses a config map keyed by action name. Unknown actions and
// unparsable keys are reported together; valid entries are still returned.
func ParseAll(cfg map[string]string) (map[Action]Binding, error) {
	out := make(map[Action]Binding, len(cfg))
	var errs []error
	for _, a := range Actions {
		s, ok := cfg[a.String()]
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		b, err := Parse(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a, err))
			continue
		}
		out[a] = b
	}
	return out, errors.Join(errs...)
}
