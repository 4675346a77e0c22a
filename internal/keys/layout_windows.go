//go:build windows

package keys

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procGetKeyboardLayout = user32.NewProc("GetKeyboardLayout")
	procMapVirtualKeyEx   = user32.NewProc("MapVirtualKeyExW")
	procToUnicodeEx       = user32.NewProc("ToUnicodeEx")
)

const (
	mapvkVKToVSC = 0
	// Leave the kernel-mode keyboard state (dead keys) untouched.
	toUnicodeNoStateChange = 0x4
)

// SystemLayout translates codes with the keyboard layout of the foreground
// window, queried on every call so layout switches apply immediately.
type SystemLayout struct{}

// Translate implements Layout.
func (SystemLayout) Translate(c Code) (string, bool) {
	hkl := foregroundLayout()

	scan, _, _ := procMapVirtualKeyEx.Call(uintptr(c), mapvkVKToVSC, hkl)

	var state [256]byte
	var buf [8]uint16
	rc, _, _ := procToUnicodeEx.Call(
		uintptr(c),
		scan,
		uintptr(unsafe.Pointer(&state[0])),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		toUnicodeNoStateChange,
		hkl,
	)
	n := int32(rc)
	if n <= 0 {
		return "", false
	}
	if int(n) > len(buf) {
		n = int32(len(buf))
	}
	text := windows.UTF16ToString(buf[:n])
	for _, r := range text {
		if r < 0x20 || r == 0x7F {
			return "", false
		}
	}
	return text, text != ""
}

func foregroundLayout() uintptr {
	var tid uint32
	if hwnd := windows.GetForegroundWindow(); hwnd != 0 {
		tid, _ = windows.GetWindowThreadProcessId(hwnd, nil)
	}
	hkl, _, _ := procGetKeyboardLayout.Call(uintptr(tid))
	return hkl
}
