// Package window hosts the overlay in a borderless, topmost, per-pixel
// alpha window that can let pointer input pass through.
package window

import "errors"

// Extended window styles.
const (
	WS_EX_TOPMOST     = 0x00000008
	WS_EX_TRANSPARENT = 0x00000020
	WS_EX_TOOLWINDOW  = 0x00000080
	WS_EX_LAYERED     = 0x00080000
)

const clickThroughBits = WS_EX_LAYERED | WS_EX_TRANSPARENT

// ErrUnsupportedPlatform is returned when no overlay window can be created.
var ErrUnsupportedPlatform = errors.New("overlay window is only supported on Windows")

// ErrClosed is returned when using a window that has been destroyed.
var ErrClosed = errors.New("window closed")

// Options describes the window to open.
type Options struct {
	Title  string
	X      int
	Y      int
	Width  int
	Height int
}

// EnableClickThrough returns style with the layered and input-transparent
// bits set. Applying it twice is the same as applying it once.
func EnableClickThrough(style uint32) uint32 {
	return style | clickThroughBits
}

// DisableClickThrough clears the input-transparent bit. The layered bit is
// kept because per-pixel alpha presentation depends on it.
func DisableClickThrough(style uint32) uint32 {
	return style &^ WS_EX_TRANSPARENT
}

// IsClickThrough reports whether style lets pointer input pass through.
func IsClickThrough(style uint32) bool {
	return style&clickThroughBits == clickThroughBits
}

// toBGRA converts premultiplied RGBA pixels into the premultiplied BGRA
// layout of a 32-bit DIB section.
func toBGRA(dst, src []byte) {
	n := min(len(dst), len(src))
	for i := 0; i+3 < n; i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
}
