package input

import "testing"

func TestMouseBasicButtons(t *testing.T) {
	tests := []struct {
		down, up MouseMessage
		slot     int
	}{
		{LButtonDown, LButtonUp, ButtonLeft},
		{RButtonDown, RButtonUp, ButtonRight},
		{MButtonDown, MButtonUp, ButtonMiddle},
	}

	for _, tt := range tests {
		m := NewMouse()
		m.HandleMouse(tt.down, 10, 20, 0)
		b := m.Buttons()
		for i := range b {
			if b[i] != (i == tt.slot) {
				t.Errorf("%s: slot %d = %v", tt.down, i, b[i])
			}
		}
		m.HandleMouse(tt.up, 10, 20, 0)
		if m.Buttons() != (Buttons{}) {
			t.Errorf("%s: expected all slots released", tt.up)
		}
	}
}

func TestMouseExtendedButtons(t *testing.T) {
	m := NewMouse()
	m.HandleMouse(LButtonDown, 0, 0, 0)
	m.HandleMouse(XButtonDown, 0, 0, 1<<16)

	m.HandleMouse(XButtonDown, 0, 0, 2<<16)
	got := m.Buttons()
	want := Buttons{true, false, false, true, true}
	if got != want {
		t.Fatalf("after X2 down: expected %v, got %v", want, got)
	}

	m.HandleMouse(XButtonUp, 0, 0, 2<<16)
	got = m.Buttons()
	want = Buttons{true, false, false, true, false}
	if got != want {
		t.Errorf("after X2 up: expected %v, got %v", want, got)
	}
}

func TestMouseIgnoresUnrelatedEvents(t *testing.T) {
	m := NewMouse()
	m.HandleMouse(MouseMove, 100, 100, 0)
	m.HandleMouse(MouseWheel, 0, 0, 120<<16)
	m.HandleMouse(XButtonDown, 0, 0, 3<<16)
	if m.Buttons() != (Buttons{}) {
		t.Errorf("expected no button state, got %v", m.Buttons())
	}
}

func TestMouseLastEventWins(t *testing.T) {
	m := NewMouse()
	m.HandleMouse(RButtonUp, 0, 0, 0)
	m.HandleMouse(RButtonDown, 0, 0, 0)
	m.HandleMouse(RButtonDown, 0, 0, 0)
	if !m.Buttons()[ButtonRight] {
		t.Error("expected right button held")
	}
	m.HandleMouse(RButtonUp, 0, 0, 0)
	if m.Buttons()[ButtonRight] {
		t.Error("expected a single up to release the button")
	}
}
