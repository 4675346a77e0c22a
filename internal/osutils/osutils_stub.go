//go:build !windows

package osutils

import "os"

// IsAdmin reports whether the process runs as root.
func IsAdmin() bool {
	return os.Geteuid() == 0
}

// ElevationNote is empty where input capture does not depend on elevation.
func ElevationNote() string {
	return ""
}
