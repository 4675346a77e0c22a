package input

import "sync"

// Mouse tracks which mouse buttons are held. The last event for a button wins.
type Mouse struct {
	mu      sync.Mutex
	buttons Buttons
}

// NewMouse creates a tracker with every button released.
func NewMouse() *Mouse {
	return &Mouse{}
}

// HandleMouse is the mouse hook handler.
func (m *Mouse) HandleMouse(msg MouseMessage, _, _ int32, data uint32) {
	slot, down, ok := buttonTransition(msg, data)
	if !ok {
		return
	}
	m.mu.Lock()
	m.buttons[slot] = down
	m.mu.Unlock()
}

// Buttons returns a copy of the button states.
func (m *Mouse) Buttons() Buttons {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons
}

// buttonTransition decodes msg into the slot it changes and its new state.
func buttonTransition(msg MouseMessage, data uint32) (slot int, down bool, ok bool) {
	switch msg {
	case LButtonDown:
		return ButtonLeft, true, true
	case LButtonUp:
		return ButtonLeft, false, true
	case RButtonDown:
		return ButtonRight, true, true
	case RButtonUp:
		return ButtonRight, false, true
	case MButtonDown:
		return ButtonMiddle, true, true
	case MButtonUp:
		return ButtonMiddle, false, true
	case XButtonDown, XButtonUp:
		down = msg == XButtonDown
		switch (data >> 16) & 0xFFFF {
		case 1:
			return ButtonX1, down, true
		case 2:
			return ButtonX2, down, true
		}
	}
	return 0, false, false
}
