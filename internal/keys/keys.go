// Package keys maps virtual key codes to display labels and orders key
// combinations the way people read them ("Ctrl + Shift + A").
package keys

import (
	"fmt"
	"sort"
	"strings"
)

// Code is a virtual key code as reported by the low-level keyboard hook.
type Code uint32

// Virtual key codes referenced by the resolver and the overlay.
const (
	Backspace   Code = 0x08
	Tab         Code = 0x09
	Enter       Code = 0x0D
	Shift       Code = 0x10
	Control     Code = 0x11
	Menu        Code = 0x12
	Pause       Code = 0x13
	CapsLock    Code = 0x14
	Kana        Code = 0x15
	Kanji       Code = 0x19
	Escape      Code = 0x1B
	Space       Code = 0x20
	PageUp      Code = 0x21
	PageDown    Code = 0x22
	End         Code = 0x23
	Home        Code = 0x24
	Left        Code = 0x25
	Up          Code = 0x26
	Right       Code = 0x27
	Down        Code = 0x28
	PrintScreen Code = 0x2C
	Insert      Code = 0x2D
	Delete      Code = 0x2E
	A           Code = 0x41
	E           Code = 0x45
	Q           Code = 0x51
	LeftWin     Code = 0x5B
	RightWin    Code = 0x5C
	Apps        Code = 0x5D
	F1          Code = 0x70
	F12         Code = 0x7B
	NumLock     Code = 0x90
	ScrollLock  Code = 0x91
	LeftShift   Code = 0xA0
	RightShift  Code = 0xA1
	LeftCtrl    Code = 0xA2
	RightCtrl   Code = 0xA3
	LeftAlt     Code = 0xA4
	RightAlt    Code = 0xA5
)

// Separator joins the labels of a combination.
const Separator = " + "

// DisableOverlayChord is the fixed chord that leaves click-through mode.
var DisableOverlayChord = []Code{LeftCtrl, LeftShift, LeftAlt, Q, E}

// Priority ranks a code for display: Ctrl, Shift, Alt, Win, then everything else.
func Priority(c Code) int {
	switch c {
	case Control, LeftCtrl, RightCtrl:
		return 0
	case Shift, LeftShift, RightShift:
		return 1
	case Menu, LeftAlt, RightAlt:
		return 2
	case LeftWin, RightWin:
		return 3
	default:
		return 10
	}
}

// Canonical returns a copy of codes sorted by Priority. Codes of equal rank
// keep their relative order, so ordinary keys stay in press order.
func Canonical(codes []Code) []Code {
	out := make([]Code, len(codes))
	copy(out, codes)
	sort.SliceStable(out, func(i, j int) bool {
		return Priority(out[i]) < Priority(out[j])
	})
	return out
}

// ContainsAll reports whether every code of chord is present in codes.
func ContainsAll(codes, chord []Code) bool {
	for _, want := range chord {
		found := false
		for _, c := range codes {
			if c == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Layout translates a code into the characters the active keyboard layout
// produces for it with no modifiers held.
type Layout interface {
	Translate(c Code) (string, bool)
}

// Resolver turns codes into labels.
type Resolver struct {
	layout Layout
}

// NewResolver creates a resolver that falls back to layout for printable
// keys. A nil layout resolves every printable key to its hex placeholder.
func NewResolver(layout Layout) *Resolver {
	return &Resolver{layout: layout}
}

// Label returns the display label for a single code.
func (r *Resolver) Label(c Code) string {
	if n, ok := NamedKey(c); ok {
		return n.String()
	}
	if c >= F1 && c <= F12 {
		return fmt.Sprintf("F%d", c-F1+1)
	}
	if r.layout != nil {
		if text, ok := r.layout.Translate(c); ok && text != "" {
			return strings.ToUpper(text)
		}
	}
	return Placeholder(c)
}

// Combination returns the canonical label of a chord, e.g. "Ctrl + Shift + A".
func (r *Resolver) Combination(codes []Code) string {
	ordered := Canonical(codes)
	labels := make([]string, len(ordered))
	for i, c := range ordered {
		labels[i] = r.Label(c)
	}
	return strings.Join(labels, Separator)
}

// Placeholder is the label of a code nothing else could name.
func Placeholder(c Code) string {
	return fmt.Sprintf("VK_%02X", uint32(c))
}
