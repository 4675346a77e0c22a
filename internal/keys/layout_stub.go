//go:build !windows

package keys

// SystemLayout has no layout source on this platform; every printable key
// falls back to its placeholder label.
type SystemLayout struct{}

// Translate implements Layout.
func (SystemLayout) Translate(Code) (string, bool) {
	return "", false
}
