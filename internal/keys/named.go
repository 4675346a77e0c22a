package keys

// Named enumerates keys whose label does not depend on the keyboard layout.
type Named uint8

const (
	NamedBackspace Named = iota + 1
	NamedTab
	NamedEnter
	NamedPause
	NamedCapsLock
	NamedEsc
	NamedSpace
	NamedPageUp
	NamedPageDown
	NamedEnd
	NamedHome
	NamedLeft
	NamedUp
	NamedRight
	NamedDown
	NamedPrintScreen
	NamedInsert
	NamedDelete
	NamedNumLock
	NamedScrollLock
	NamedShift
	NamedCtrl
	NamedAlt
	NamedWin
	NamedApps
	NamedKana
	NamedKanji
)

var namedLabels = [...]string{
	NamedBackspace:   "Backspace",
	NamedTab:         "Tab",
	NamedEnter:       "Enter",
	NamedPause:       "Pause",
	NamedCapsLock:    "CapsLock",
	NamedEsc:         "Esc",
	NamedSpace:       "Space",
	NamedPageUp:      "PageUp",
	NamedPageDown:    "PageDown",
	NamedEnd:         "End",
	NamedHome:        "Home",
	NamedLeft:        "←",
	NamedUp:          "↑",
	NamedRight:       "→",
	NamedDown:        "↓",
	NamedPrintScreen: "PrintScreen",
	NamedInsert:      "Insert",
	NamedDelete:      "Delete",
	NamedNumLock:     "NumLock",
	NamedScrollLock:  "ScrollLock",
	NamedShift:       "Shift",
	NamedCtrl:        "Ctrl",
	NamedAlt:         "Alt",
	NamedWin:         "Win",
	NamedApps:        "Apps",
	NamedKana:        "Kana",
	NamedKanji:       "Kanji",
}

func (n Named) String() string {
	if int(n) < len(namedLabels) && namedLabels[n] != "" {
		return namedLabels[n]
	}
	return "Unknown"
}

// NamedKey looks up the layout-independent name of c.
func NamedKey(c Code) (Named, bool) {
	switch c {
	case Backspace:
		return NamedBackspace, true
	case Tab:
		return NamedTab, true
	case Enter:
		return NamedEnter, true
	case Pause:
		return NamedPause, true
	case CapsLock:
		return NamedCapsLock, true
	case Escape:
		return NamedEsc, true
	case Space:
		return NamedSpace, true
	case PageUp:
		return NamedPageUp, true
	case PageDown:
		return NamedPageDown, true
	case End:
		return NamedEnd, true
	case Home:
		return NamedHome, true
	case Left:
		return NamedLeft, true
	case Up:
		return NamedUp, true
	case Right:
		return NamedRight, true
	case Down:
		return NamedDown, true
	case PrintScreen:
		return NamedPrintScreen, true
	case Insert:
		return NamedInsert, true
	case Delete:
		return NamedDelete, true
	case NumLock:
		return NamedNumLock, true
	case ScrollLock:
		return NamedScrollLock, true
	case Shift, LeftShift, RightShift:
		return NamedShift, true
	case Control, LeftCtrl, RightCtrl:
		return NamedCtrl, true
	case Menu, LeftAlt, RightAlt:
		return NamedAlt, true
	case LeftWin, RightWin:
		return NamedWin, true
	case Apps:
		return NamedApps, true
	case Kana:
		return NamedKana, true
	case Kanji:
		return NamedKanji, true
	}
	return 0, false
}
