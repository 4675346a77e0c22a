// Package autostart registers the overlay to start when the user logs in.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"text/template"
)

// AppName identifies the login item on every platform.
const AppName = "Keyboim"

// ErrUnsupportedPlatform is returned where no login item mechanism exists.
var ErrUnsupportedPlatform = errors.New("auto-start is not supported on this platform")

// Overridable for tests.
var (
	homeDir    = os.UserHomeDir
	executable = os.Executable
)

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>com.keyboim.agent</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name={{.Name}}
Exec="{{.ExecutablePath}}"
X-GNOME-Autostart-enabled=true
`

// Enable enables auto-start on login
func Enable() error {
	switch runtime.GOOS {
	case "darwin":
		return enableMac()
	case "windows":
		return enableWindows()
	case "linux", "freebsd", "openbsd", "netbsd":
		return enableXDG()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
	}
}

// Disable disables auto-start on login
func Disable() error {
	switch runtime.GOOS {
	case "darwin":
		return disableMac()
	case "windows":
		return disableWindows()
	case "linux", "freebsd", "openbsd", "netbsd":
		return disableXDG()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
	}
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return isEnabledMac()
	case "windows":
		return isEnabledWindows()
	case "linux", "freebsd", "openbsd", "netbsd":
		return isEnabledXDG()
	default:
		return false
	}
}

// Set enables or disables auto-start.
func Set(enabled bool) error {
	if enabled {
		return Enable()
	}
	return Disable()
}

func macPlistPath() (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents", "com.keyboim.agent.plist"), nil
}

func xdgEntryPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "autostart", "keyboim.desktop"), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "autostart", "keyboim.desktop"), nil
}

// writeTemplate renders text into path, creating its directory.
func writeTemplate(path, text string) error {
	execPath, err := executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpl, err := template.New(filepath.Base(path)).Parse(text)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, struct{ Name, ExecutablePath string }{AppName, execPath})
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// macOS implementation
func enableMac() error {
	path, err := macPlistPath()
	if err != nil {
		return err
	}
	return writeTemplate(path, macLaunchAgentPlist)
}

func disableMac() error {
	path, err := macPlistPath()
	if err != nil {
		return err
	}
	return removeIfExists(path)
}

func isEnabledMac() bool {
	path, err := macPlistPath()
	return err == nil && exists(path)
}

// XDG desktop implementation
func enableXDG() error {
	path, err := xdgEntryPath()
	if err != nil {
		return err
	}
	return writeTemplate(path, xdgDesktopEntry)
}

func disableXDG() error {
	path, err := xdgEntryPath()
	if err != nil {
		return err
	}
	return removeIfExists(path)
}

func isEnabledXDG() bool {
	path, err := xdgEntryPath()
	return err == nil && exists(path)
}
