package autostart

import (
	"os"
	"strings"
	"testing"
)

func withFakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome, oldExe := homeDir, executable
	homeDir = func() (string, error) { return home, nil }
	executable = func() (string, error) { return "/opt/keyboim/keyboim", nil }
	t.Cleanup(func() { homeDir, executable = oldHome, oldExe })
	t.Setenv("XDG_CONFIG_HOME", "")
	return home
}

func TestMacLaunchAgent(t *testing.T) {
	withFakeHome(t)

	if isEnabledMac() {
		t.Fatal("expected disabled before enabling")
	}
	if err := enableMac(); err != nil {
		t.Fatalf("enableMac failed: %v", err)
	}
	if !isEnabledMac() {
		t.Fatal("expected enabled")
	}

	path, _ := macPlistPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<string>/opt/keyboim/keyboim</string>") {
		t.Errorf("plist missing executable path:\n%s", data)
	}
	if !strings.Contains(string(data), "com.keyboim.agent") {
		t.Error("plist missing label")
	}

	if err := disableMac(); err != nil {
		t.Fatalf("disableMac failed: %v", err)
	}
	if isEnabledMac() {
		t.Error("expected disabled")
	}
	if err := disableMac(); err != nil {
		t.Errorf("disabling twice should succeed: %v", err)
	}
}

func TestXDGEntry(t *testing.T) {
	withFakeHome(t)

	if err := enableXDG(); err != nil {
		t.Fatalf("enableXDG failed: %v", err)
	}
	path, _ := xdgEntryPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Name=Keyboim", `Exec="/opt/keyboim/keyboim"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("desktop entry missing %q:\n%s", want, data)
		}
	}
	if !isEnabledXDG() {
		t.Error("expected enabled")
	}
	if err := disableXDG(); err != nil {
		t.Fatal(err)
	}
	if isEnabledXDG() {
		t.Error("expected disabled")
	}
}

func TestXDGConfigHome(t *testing.T) {
	withFakeHome(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := xdgEntryPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("expected entry under %s, got %s", dir, path)
	}
}
