//go:build !windows

package window

import "image"

// Window is unavailable on this platform.
type Window struct{}

// Open always fails with ErrUnsupportedPlatform.
func Open(Options) (*Window, error) {
	return nil, ErrUnsupportedPlatform
}

func (w *Window) Pump() bool                 { return false }
func (w *Window) Present(*image.RGBA) error  { return ErrUnsupportedPlatform }
func (w *Window) SetClickThrough(bool) error { return ErrUnsupportedPlatform }
func (w *Window) ClickThrough() bool         { return false }
func (w *Window) Position() (int, int)       { return 0, 0 }
func (w *Window) Close() error               { return nil }
