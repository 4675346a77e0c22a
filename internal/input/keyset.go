package input

import (
	"sync"

	"keyboim/internal/keys"
)

// MaxPressed is the number of simultaneously held keys a KeySet tracks.
// Keys pressed beyond it are ignored so that mutations never allocate.
const MaxPressed = 32

// KeySet is an insertion-ordered set of held key codes, safe for one writer
// and any number of readers.
type KeySet struct {
	mu    sync.Mutex
	codes [MaxPressed]keys.Code
	n     int
}

// Insert adds c if absent. It reports whether the set changed.
func (s *KeySet) Insert(c keys.Code) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(c) >= 0 || s.n == MaxPressed {
		return false
	}
	s.codes[s.n] = c
	s.n++
	return true
}

// Remove deletes c, keeping the remaining codes in press order. It reports
// whether the set changed.
func (s *KeySet) Remove(c keys.Code) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(c)
	if i < 0 {
		return false
	}
	copy(s.codes[i:s.n], s.codes[i+1:s.n])
	s.n--
	s.codes[s.n] = 0
	return true
}

// Contains reports whether c is held.
func (s *KeySet) Contains(c keys.Code) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(c) >= 0
}

// Len returns the number of held keys.
func (s *KeySet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Snapshot appends the held codes to dst[:0] in press order and returns it.
func (s *KeySet) Snapshot(dst []keys.Code) []keys.Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(dst[:0], s.codes[:s.n]...)
}

func (s *KeySet) indexLocked(c keys.Code) int {
	for i := 0; i < s.n; i++ {
		if s.codes[i] == c {
			return i
		}
	}
	return -1
}
