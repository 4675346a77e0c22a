//go:build windows

package osutils

import (
	"golang.org/x/sys/windows"
)

// IsAdmin checks if the current process runs with an elevated token. Under
// UAC, membership in the administrators group is not enough to observe
// input sent to elevated windows.
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	return token.IsElevated()
}

// ElevationNote explains what an unelevated overlay cannot see, or returns
// "" when running elevated.
func ElevationNote() string {
	if IsAdmin() {
		return ""
	}
	return "not running elevated: keys pressed in elevated windows are not captured"
}
