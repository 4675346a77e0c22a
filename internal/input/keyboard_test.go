package input

import (
	"sync"
	"testing"

	"keyboim/internal/keys"
)

var testLayout = layoutFunc(func(c keys.Code) (string, bool) {
	if c >= keys.A && c <= 0x5A {
		return string(rune(c + 0x20)), true
	}
	return "", false
})

type layoutFunc func(keys.Code) (string, bool)

func (f layoutFunc) Translate(c keys.Code) (string, bool) { return f(c) }

func TestKeySetDuplicateInsert(t *testing.T) {
	var s KeySet
	s.Insert(keys.A)
	s.Insert(keys.LeftCtrl)
	s.Insert(keys.Q)

	if s.Insert(keys.LeftCtrl) {
		t.Error("expected duplicate insert to report no change")
	}
	got := s.Snapshot(nil)
	want := []keys.Code{keys.A, keys.LeftCtrl, keys.Q}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected 0x%X, got 0x%X", i, want[i], got[i])
		}
	}
}

func TestKeySetRemovePreservesOrder(t *testing.T) {
	var s KeySet
	for _, c := range []keys.Code{keys.A, keys.E, keys.Q, keys.LeftAlt} {
		s.Insert(c)
	}
	if !s.Remove(keys.E) {
		t.Fatal("expected removal of held key")
	}
	if s.Remove(keys.E) {
		t.Error("expected second removal to report no change")
	}
	got := s.Snapshot(nil)
	want := []keys.Code{keys.A, keys.Q, keys.LeftAlt}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected 0x%X, got 0x%X", i, want[i], got[i])
		}
	}
}

func TestKeySetCapacity(t *testing.T) {
	var s KeySet
	for i := 0; i < MaxPressed+8; i++ {
		s.Insert(keys.Code(0x100 + i))
	}
	if s.Len() != MaxPressed {
		t.Errorf("expected set to stop at %d keys, got %d", MaxPressed, s.Len())
	}
}

func TestKeyboardPresenceLaw(t *testing.T) {
	type step struct {
		msg  KeyMessage
		held bool
	}
	sequences := [][]step{
		{{KeyDown, true}, {KeyUp, false}},
		{{KeyUp, false}, {KeyDown, true}, {KeyUp, false}},
		{{KeyDown, true}, {KeyDown, true}, {KeyUp, false}},
		{{SysKeyDown, true}, {SysKeyUp, false}, {KeyDown, true}},
		{{KeyUp, false}, {KeyUp, false}, {SysKeyDown, true}},
	}

	for i, seq := range sequences {
		kb := NewKeyboard(keys.NewResolver(testLayout))
		for j, st := range seq {
			kb.HandleKey(keys.A, st.msg)
			held := kb.Len() == 1
			if held != st.held {
				t.Errorf("sequence %d step %d (%s): expected held=%v", i, j, st.msg, st.held)
			}
		}
	}
}

func TestKeyboardIgnoresUnknownMessages(t *testing.T) {
	kb := NewKeyboard(keys.NewResolver(testLayout))
	kb.HandleKey(keys.A, KeyMessage(0x0102)) // WM_CHAR
	if kb.Len() != 0 {
		t.Error("expected unknown message to leave the set untouched")
	}
}

func TestCurrentCombinationLabel(t *testing.T) {
	kb := NewKeyboard(keys.NewResolver(testLayout))
	kb.HandleKey(keys.RightShift, KeyDown)
	kb.HandleKey(keys.LeftCtrl, KeyDown)
	kb.HandleKey(keys.A, KeyDown)

	if got := kb.CurrentCombinationLabel(); got != "Ctrl + Shift + A" {
		t.Errorf("expected 'Ctrl + Shift + A', got %q", got)
	}

	kb.HandleKey(keys.LeftCtrl, KeyUp)
	if got := kb.CurrentCombinationLabel(); got != "Shift + A" {
		t.Errorf("expected 'Shift + A', got %q", got)
	}
}

func TestIsHotkeyPressed(t *testing.T) {
	kb := NewKeyboard(keys.NewResolver(testLayout))
	for _, c := range keys.DisableOverlayChord {
		if kb.IsHotkeyPressed() {
			t.Fatal("hotkey reported before the chord was complete")
		}
		kb.HandleKey(c, KeyDown)
	}
	if !kb.IsHotkeyPressed() {
		t.Fatal("expected hotkey with the full chord held")
	}

	for _, c := range keys.DisableOverlayChord {
		kb.HandleKey(c, KeyUp)
		if kb.IsHotkeyPressed() {
			t.Errorf("hotkey still reported after releasing 0x%X", c)
		}
		kb.HandleKey(c, KeyDown)
	}
}

func TestKeyboardConcurrentAccess(t *testing.T) {
	kb := NewKeyboard(keys.NewResolver(testLayout))
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			kb.HandleKey(keys.A, KeyDown)
			kb.HandleKey(keys.LeftCtrl, KeyDown)
			kb.HandleKey(keys.A, KeyUp)
			kb.HandleKey(keys.LeftCtrl, KeyUp)
		}
	}()
	go func() {
		defer wg.Done()
		var buf []keys.Code
		for i := 0; i < 1000; i++ {
			buf = kb.Snapshot(buf)
			if len(buf) > 2 {
				t.Errorf("snapshot tore: %v", buf)
				return
			}
			_ = kb.CurrentCombinationLabel()
		}
	}()

	wg.Wait()
	if kb.Len() != 0 {
		t.Errorf("expected all keys released, got %d", kb.Len())
	}
}
