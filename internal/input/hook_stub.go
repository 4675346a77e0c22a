//go:build !windows

package input

func runKeyboardHook(_ KeyboardHandler, started func(error)) error {
	started(ErrUnsupportedPlatform)
	return ErrUnsupportedPlatform
}

func runMouseHook(_ MouseHandler, started func(error)) error {
	started(ErrUnsupportedPlatform)
	return ErrUnsupportedPlatform
}
