package input

import "errors"

var (
	// ErrUnsupportedPlatform is returned when global hooks are unavailable on this OS
	ErrUnsupportedPlatform = errors.New("global input hooks not supported on this platform")

	// ErrHookInstall is returned when the host refuses the hook subscription
	ErrHookInstall = errors.New("failed to install input hook")

	// ErrAlreadyRegistered is returned when a hook class already has an active installation
	ErrAlreadyRegistered = errors.New("input hook already registered")
)
