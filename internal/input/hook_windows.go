//go:build windows

package input

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"keyboim/internal/keys"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
)

const (
	WH_KEYBOARD_LL = 13
	WH_MOUSE_LL    = 14
	HC_ACTION      = 0
)

type KBDLLHOOKSTRUCT struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type MSLLHOOKSTRUCT struct {
	Pt          struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type MSG struct {
	Hwnd    windows.HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// hookSlot owns the single hook installation of one event class. The host
// calls the hook procedure on the installing thread, so handler and handle
// are only written before installation and read from that same thread.
type hookSlot struct {
	mu       sync.Mutex
	active   bool
	handle   uintptr
	keyboard KeyboardHandler
	mouse    MouseHandler
}

var (
	keyboardSlot hookSlot
	mouseSlot    hookSlot

	// Callback trampolines are a finite resource; create exactly one per class.
	keyboardCallback = windows.NewCallback(keyboardHookProc)
	mouseCallback    = windows.NewCallback(mouseHookProc)
)

func (s *hookSlot) claim() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return ErrAlreadyRegistered
	}
	s.active = true
	return nil
}

func (s *hookSlot) release() {
	s.mu.Lock()
	s.active = false
	s.handle = 0
	s.mu.Unlock()
}

func runKeyboardHook(h KeyboardHandler, started func(error)) error {
	if err := keyboardSlot.claim(); err != nil {
		started(err)
		return err
	}
	keyboardSlot.keyboard = h
	return keyboardSlot.serve(WH_KEYBOARD_LL, keyboardCallback, "keyboard", started)
}

func runMouseHook(h MouseHandler, started func(error)) error {
	if err := mouseSlot.claim(); err != nil {
		started(err)
		return err
	}
	mouseSlot.mouse = h
	return mouseSlot.serve(WH_MOUSE_LL, mouseCallback, "mouse", started)
}

// serve installs the hook and pumps messages on the current OS thread. The
// low-level hook is delivered through this thread's message loop.
func (s *hookSlot) serve(idHook, callback uintptr, class string, started func(error)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer s.release()

	hMod, _, _ := procGetModuleHandle.Call(0)
	handle, _, err := procSetWindowsHookEx.Call(idHook, callback, hMod, 0)
	if handle == 0 {
		installErr := fmt.Errorf("%w (%s): %v", ErrHookInstall, class, err)
		started(installErr)
		return installErr
	}
	s.handle = handle
	started(nil)

	var msg MSG
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
	}

	procUnhookWindowsHookEx.Call(handle)
	return nil
}

// keyboardHookProc observes the event and always passes it down the chain.
func keyboardHookProc(nCode int32, wParam, lParam uintptr) uintptr {
	if nCode == HC_ACTION {
		kbd := (*KBDLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		dispatchKey(keyboardSlot.keyboard, keys.Code(kbd.VkCode), KeyMessage(wParam))
	}
	ret, _, _ := procCallNextHookEx.Call(keyboardSlot.handle, uintptr(nCode), wParam, lParam)
	return ret
}

// mouseHookProc observes the event and always passes it down the chain.
func mouseHookProc(nCode int32, wParam, lParam uintptr) uintptr {
	if nCode == HC_ACTION {
		ms := (*MSLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		dispatchMouse(mouseSlot.mouse, MouseMessage(wParam), ms.Pt.X, ms.Pt.Y, ms.MouseData)
	}
	ret, _, _ := procCallNextHookEx.Call(mouseSlot.handle, uintptr(nCode), wParam, lParam)
	return ret
}
