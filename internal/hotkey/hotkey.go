// Package hotkey matches held key chords against registered shortcuts.
package hotkey

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"keyboim/internal/keys"
)

// ErrEmptyChord is returned when registering a hotkey with no keys.
var ErrEmptyChord = errors.New("hotkey chord has no keys")

// Manager holds registered chords and fires them when a chord is held.
type Manager struct {
	mu      sync.RWMutex
	hotkeys []*registeredHotkey
	logger  *zap.Logger
}

type registeredHotkey struct {
	name     string
	chord    []keys.Code
	callback func()
}

// NewManager creates a new hotkey manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger.Named("hotkey")}
}

// Register adds a chord and the callback to run when it is held.
func (m *Manager) Register(name string, chord []keys.Code, callback func()) (int, error) {
	if len(chord) == 0 {
		return 0, ErrEmptyChord
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.hotkeys = append(m.hotkeys, &registeredHotkey{
		name:     name,
		chord:    append([]keys.Code(nil), chord...),
		callback: callback,
	})
	return len(m.hotkeys) - 1, nil
}

// Check fires every hotkey whose chord is fully contained in held and
// returns how many fired. Callbacks run on the caller's goroutine, so the
// render loop can act on its own window directly.
func (m *Manager) Check(held []keys.Code) int {
	m.mu.RLock()
	var matched []*registeredHotkey
	for _, hk := range m.hotkeys {
		if keys.ContainsAll(held, hk.chord) {
			matched = append(matched, hk)
		}
	}
	m.mu.RUnlock()

	for _, hk := range matched {
		m.logger.Info("Hotkey triggered", zap.String("name", hk.name))
		if hk.callback != nil {
			hk.callback()
		}
	}
	return len(matched)
}
