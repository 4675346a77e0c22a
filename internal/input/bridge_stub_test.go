//go:build !windows

package input

import (
	"errors"
	"testing"

	"keyboim/internal/keys"
)

func TestStartCaptureUnsupported(t *testing.T) {
	kb := NewKeyboard(keys.NewResolver(nil))
	m := NewMouse()

	var errs []error
	for err := range StartCapture(kb.HandleKey, m.HandleMouse) {
		errs = append(errs, err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected one error per class, got %v", errs)
	}
	for _, err := range errs {
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
		}
	}

	// Each class is spawned at most once per process.
	for err := range StartCapture(kb.HandleKey, nil) {
		if !errors.Is(err, ErrAlreadyRegistered) {
			t.Errorf("expected ErrAlreadyRegistered, got %v", err)
		}
	}

	if err := RegisterKeyboard(kb.HandleKey); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
	if err := RegisterMouse(m.HandleMouse); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
}
