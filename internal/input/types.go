// Package input captures global keyboard and mouse input and keeps the set of
// keys and buttons currently held.
package input

import "keyboim/internal/keys"

// KeyMessage is the kind of a low-level keyboard event. Values match the
// host window message ids delivered to the hook.
type KeyMessage uint32

const (
	KeyDown    KeyMessage = 0x0100
	KeyUp      KeyMessage = 0x0101
	SysKeyDown KeyMessage = 0x0104
	SysKeyUp   KeyMessage = 0x0105
)

// IsDown reports whether the message presses a key.
func (m KeyMessage) IsDown() bool {
	return m == KeyDown || m == SysKeyDown
}

// IsUp reports whether the message releases a key.
func (m KeyMessage) IsUp() bool {
	return m == KeyUp || m == SysKeyUp
}

func (m KeyMessage) String() string {
	switch m {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case SysKeyDown:
		return "SysKeyDown"
	case SysKeyUp:
		return "SysKeyUp"
	}
	return "Unknown"
}

// MouseMessage is the kind of a low-level mouse event.
type MouseMessage uint32

const (
	MouseMove   MouseMessage = 0x0200
	LButtonDown MouseMessage = 0x0201
	LButtonUp   MouseMessage = 0x0202
	RButtonDown MouseMessage = 0x0204
	RButtonUp   MouseMessage = 0x0205
	MButtonDown MouseMessage = 0x0207
	MButtonUp   MouseMessage = 0x0208
	MouseWheel  MouseMessage = 0x020A
	XButtonDown MouseMessage = 0x020B
	XButtonUp   MouseMessage = 0x020C
	MouseHWheel MouseMessage = 0x020E
)

func (m MouseMessage) String() string {
	switch m {
	case MouseMove:
		return "MouseMove"
	case LButtonDown:
		return "LButtonDown"
	case LButtonUp:
		return "LButtonUp"
	case RButtonDown:
		return "RButtonDown"
	case RButtonUp:
		return "RButtonUp"
	case MButtonDown:
		return "MButtonDown"
	case MButtonUp:
		return "MButtonUp"
	case MouseWheel:
		return "MouseWheel"
	case XButtonDown:
		return "XButtonDown"
	case XButtonUp:
		return "XButtonUp"
	case MouseHWheel:
		return "MouseHWheel"
	}
	return "Unknown"
}

// Mouse button slots.
const (
	ButtonLeft = iota
	ButtonRight
	ButtonMiddle
	ButtonX1
	ButtonX2
	NumButtons
)

// Buttons holds the pressed state of each mouse button slot.
type Buttons [NumButtons]bool

// KeyboardHandler receives every low-level keyboard event. It runs on the
// capture thread and must return quickly.
type KeyboardHandler func(code keys.Code, msg KeyMessage)

// MouseHandler receives every low-level mouse event. data carries the
// extended button index in its high word for X button messages.
type MouseHandler func(msg MouseMessage, x, y int32, data uint32)
