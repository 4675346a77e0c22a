package input

import (
	"sync"

	"keyboim/internal/keys"
)

var (
	keyboardOnce sync.Once
	mouseOnce    sync.Once
)

// RegisterKeyboard installs the global keyboard hook and services it on the
// calling goroutine, locked to its OS thread, until the message loop ends.
// Only one keyboard hook may be active per process.
func RegisterKeyboard(h KeyboardHandler) error {
	return runKeyboardHook(h, func(error) {})
}

// RegisterMouse installs the global mouse hook and services it on the
// calling goroutine until the message loop ends.
func RegisterMouse(h MouseHandler) error {
	return runMouseHook(h, func(error) {})
}

// StartCapture spawns the capture thread of each non-nil handler's class, at
// most once per process. Installation failures are sent on the returned
// channel, which is closed once every requested class has either started or
// failed.
func StartCapture(kb KeyboardHandler, ms MouseHandler) <-chan error {
	errs := make(chan error, 2)
	var wg sync.WaitGroup

	start := func(once *sync.Once, run func(started func(error)) error) {
		wg.Add(1)
		spawned := false
		once.Do(func() {
			spawned = true
			go run(func(err error) {
				if err != nil {
					errs <- err
				}
				wg.Done()
			})
		})
		if !spawned {
			errs <- ErrAlreadyRegistered
			wg.Done()
		}
	}

	if kb != nil {
		start(&keyboardOnce, func(started func(error)) error {
			return runKeyboardHook(kb, started)
		})
	}
	if ms != nil {
		start(&mouseOnce, func(started func(error)) error {
			return runMouseHook(ms, started)
		})
	}

	go func() {
		wg.Wait()
		close(errs)
	}()
	return errs
}

// dispatchKey invokes h without letting a panic escape into host frames.
func dispatchKey(h KeyboardHandler, code keys.Code, msg KeyMessage) {
	if h == nil {
		return
	}
	defer func() { _ = recover() }()
	h(code, msg)
}

// dispatchMouse invokes h without letting a panic escape into host frames.
func dispatchMouse(h MouseHandler, msg MouseMessage, x, y int32, data uint32) {
	if h == nil {
		return
	}
	defer func() { _ = recover() }()
	h(msg, x, y, data)
}
