package input

import "keyboim/internal/keys"

// Keyboard aggregates low-level keyboard events into the set of held keys.
type Keyboard struct {
	pressed  KeySet
	resolver *keys.Resolver
}

// NewKeyboard creates an empty aggregator that labels chords with resolver.
func NewKeyboard(resolver *keys.Resolver) *Keyboard {
	return &Keyboard{resolver: resolver}
}

// HandleKey is the keyboard hook handler. It only touches the locked set.
func (k *Keyboard) HandleKey(code keys.Code, msg KeyMessage) {
	switch {
	case msg.IsDown():
		k.pressed.Insert(code)
	case msg.IsUp():
		k.pressed.Remove(code)
	}
}

// Snapshot copies the held keys, in press order, into dst.
func (k *Keyboard) Snapshot(dst []keys.Code) []keys.Code {
	return k.pressed.Snapshot(dst)
}

// Len returns the number of held keys.
func (k *Keyboard) Len() int {
	return k.pressed.Len()
}

// CurrentCombinationLabel returns the canonical label of the held keys.
func (k *Keyboard) CurrentCombinationLabel() string {
	var buf [MaxPressed]keys.Code
	return k.resolver.Combination(k.pressed.Snapshot(buf[:0]))
}

// IsHotkeyPressed reports whether the disable-overlay chord is fully held.
func (k *Keyboard) IsHotkeyPressed() bool {
	var buf [MaxPressed]keys.Code
	return keys.ContainsAll(k.pressed.Snapshot(buf[:0]), keys.DisableOverlayChord)
}
