package hotkey

import (
	"errors"
	"sync"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Binding
	}{
		{"F3", Binding{Key: VKF1 + 2}},
		{"Shift+F1", Binding{Key: VKF1, RequireShift: true}},
		{"shift + f12", Binding{Key: VKF1 + 11, RequireShift: true}},
		{"A", Binding{Key: 'A'}},
		{"7", Binding{Key: '7'}},
		{"Esc", Binding{Key: VKEscape}},
		{"Space", Binding{Key: VKSpace}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "Ctrl+F1", "F25", "Shift+", "Hyper"} {
		if _, err := Parse(in); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("Parse(%q): expected ErrUnknownKey, got %v", in, err)
		}
	}
}

func TestBindingRoundTrip(t *testing.T) {
	for _, s := range []string{"Shift+F1", "F8", "Enter", "Num5", "Shift+Q"} {
		b, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", s, err)
		}
		if b.String() != s {
			t.Errorf("Expected %q, got %q", s, b.String())
		}
	}
}

func TestBindingMatches(t *testing.T) {
	shifted := Binding{Key: VKF1, RequireShift: true}
	plain := Binding{Key: VKF1 + 2}

	if shifted.Matches(VKF1, false) {
		t.Error("Expected Shift+F1 not to match without Shift")
	}
	if !shifted.Matches(VKF1, true) {
		t.Error("Expected Shift+F1 to match with Shift")
	}
	if !plain.Matches(VKF1+2, true) || !plain.Matches(VKF1+2, false) {
		t.Error("Expected F3 to match regardless of Shift")
	}
	if (Binding{}).Matches(0, false) {
		t.Error("Expected empty binding never to match")
	}
}

func TestTableMatch(t *testing.T) {
	table := NewTable(map[Action]Binding{
		ActionSettings:   {Key: VKF1, RequireShift: true},
		ActionVisibility: {Key: VKF1 + 1, RequireShift: true},
		ActionAnnotation: {Key: VKF1 + 2},
		ActionMagnifier:  {Key: VKF1 + 3},
	})

	if a, ok := table.Match(VKF1, true); !ok || a != ActionSettings {
		t.Errorf("Expected settings, got %v %v", a, ok)
	}
	if _, ok := table.Match(VKF1, false); ok {
		t.Error("Expected unshifted F1 not to match")
	}
	if a, ok := table.Match(VKF1+3, true); !ok || a != ActionMagnifier {
		t.Errorf("Expected magnifier, got %v %v", a, ok)
	}
	if _, ok := table.Match('A', false); ok {
		t.Error("Expected A not to match")
	}
	if _, ok := table.Binding(ActionPointer); ok {
		t.Error("Expected pointer unbound")
	}
}

// TestTablePriority tests that the first action in priority order wins a shared key
func TestTablePriority(t *testing.T) {
	table := NewTable(map[Action]Binding{
		ActionPointer:    {Key: VKF1 + 7},
		ActionAnnotation: {Key: VKF1 + 7},
	})
	if a, _ := table.Match(VKF1+7, false); a != ActionAnnotation {
		t.Errorf("Expected annotation to take priority, got %v", a)
	}
}

func TestTableConcurrentSet(t *testing.T) {
	a := map[Action]Binding{ActionSettings: {Key: VKF1}, ActionVisibility: {Key: VKF1 + 1}}
	b := map[Action]Binding{ActionSettings: {Key: 'X'}, ActionVisibility: {Key: 'Y'}}
	table := NewTable(a)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				table.Set(b)
			} else {
				table.Set(a)
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		s, _ := table.Binding(ActionSettings)
		v, _ := table.Binding(ActionVisibility)
		_ = s
		_ = v
		act, ok := table.Match('X', false)
		if ok && act != ActionSettings {
			t.Fatalf("Unexpected action %v", act)
		}
	}
	wg.Wait()
}

func TestParseAll(t *testing.T) {
	got, err := ParseAll(map[string]string{
		"settings":        "Shift+F1",
		"magnifier":       "F4",
		"follow_viewport": "Nope",
		"pointer":         "",
	})

	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey for the bad entry, got %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 valid bindings, got %v", got)
	}
	if got[ActionMagnifier] != (Binding{Key: VKF1 + 3}) {
		t.Errorf("Unexpected magnifier binding %+v", got[ActionMagnifier])
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		vk   uint32
		want string
	}{
		{VKReturn, "Enter"},
		{VKEscape, "Esc"},
		{VKCapital, "CapsLock"},
		{VKLMenu, "Alt"},
		{VKRCtrl, "Ctrl"},
		{VKLShift, "Shift"},
		{'Q', "Q"},
		{'4', "4"},
		{VKF1 + 4, "F5"},
		{0x63, "Num3"},
		{0xBA, "VKBA"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.vk); got != tt.want {
			t.Errorf("KeyName(0x%X) = %q, want %q", tt.vk, got, tt.want)
		}
	}
}

func TestKeyCodeUnknownHex(t *testing.T) {
	vk, ok := KeyCode("VKBA")
	if !ok || vk != 0xBA {
		t.Errorf("Expected VKBA to parse as 0xBA, got 0x%X %v", vk, ok)
	}
}
