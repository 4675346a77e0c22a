// Package config provides configuration management for the overlay.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Overlay contains what is drawn and how it fades
	Overlay OverlayConfig `mapstructure:"overlay"`

	// Window contains the overlay window geometry
	Window WindowConfig `mapstructure:"window"`

	// General contains general application settings
	General GeneralConfig `mapstructure:"general"`
}

// OverlayConfig controls the overlay contents
type OverlayConfig struct {
	// ShowMouse draws the mouse glyph next to the key label
	ShowMouse bool `mapstructure:"show_mouse"`

	// OutlineText draws a dark outline around the key label
	OutlineText bool `mapstructure:"outline_text"`

	// StartClickThrough starts in overlay mode with pointer input passing through
	StartClickThrough bool `mapstructure:"start_click_through"`

	// FadeWindow is how long a combination takes to fade out
	FadeWindow time.Duration `mapstructure:"fade_window"`

	// FontSize is the label size in pixels
	FontSize float64 `mapstructure:"font_size"`

	// FPS is the render loop rate
	FPS int `mapstructure:"fps"`
}

// WindowConfig is the overlay window placement
type WindowConfig struct {
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	// StartOnBoot determines if app starts on login
	StartOnBoot bool `mapstructure:"start_on_boot"`

	// LogLevel is the zap level name ("debug", "info", "warn", "error")
	LogLevel string `mapstructure:"log_level"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Overlay: OverlayConfig{
			ShowMouse:   true,
			OutlineText: true,
			FadeWindow:  3 * time.Second,
			FontSize:    56,
			FPS:         60,
		},
		Window: WindowConfig{
			X:      100,
			Y:      100,
			Width:  640,
			Height: 160,
		},
		General: GeneralConfig{
			LogLevel: "info",
		},
	}
}

// Validate replaces out-of-range values with their defaults.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Overlay.FadeWindow <= 0 {
		c.Overlay.FadeWindow = def.Overlay.FadeWindow
	}
	if c.Overlay.FontSize <= 0 {
		c.Overlay.FontSize = def.Overlay.FontSize
	}
	if c.Overlay.FPS <= 0 || c.Overlay.FPS > 240 {
		c.Overlay.FPS = def.Overlay.FPS
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = def.General.LogLevel
	}
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	v          *viper.Viper
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a configuration manager for configPath, or for the
// per-user default location when configPath is empty.
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		var err error
		configPath, err = getConfigPath()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("KEYBOIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	return &Manager{
		v:          v,
		configPath: configPath,
		config:     DefaultConfig(),
	}, nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "keyboim")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "keyboim")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "keyboim")
	}

	return filepath.Join(configDir, "keyboim.yaml"), nil
}

func setDefaults(v *viper.Viper, c *Config) {
	for key, value := range flatten(c) {
		v.SetDefault(key, value)
	}
}

func flatten(c *Config) map[string]any {
	return map[string]any{
		"overlay.show_mouse":          c.Overlay.ShowMouse,
		"overlay.outline_text":        c.Overlay.OutlineText,
		"overlay.start_click_through": c.Overlay.StartClickThrough,
		"overlay.fade_window":         c.Overlay.FadeWindow,
		"overlay.font_size":           c.Overlay.FontSize,
		"overlay.fps":                 c.Overlay.FPS,
		"window.x":                    c.Window.X,
		"window.y":                    c.Window.Y,
		"window.width":                c.Window.Width,
		"window.height":               c.Window.Height,
		"general.start_on_boot":       c.General.StartOnBoot,
		"general.log_level":           c.General.LogLevel,
	}
}

// Path returns the configuration file location.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk and the environment. A missing
// file leaves the defaults in place.
func (m *Manager) Load() error {
	m.mu.Lock()

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			m.mu.Unlock()
			return fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := m.v.Unmarshal(cfg); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Validate()
	m.config = cfg
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	for key, value := range flatten(m.config) {
		m.v.Set(key, value)
	}
	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set updates the configuration
func (m *Manager) Set(config Config) {
	config.Validate()
	m.mu.Lock()
	m.config = &config
	onChanged := m.onChanged
	m.mu.Unlock()
	if onChanged != nil {
		onChanged()
	}
}

// Update applies fn to a copy of the configuration and stores the result.
func (m *Manager) Update(fn func(*Config)) {
	cfg := m.Get()
	fn(&cfg)
	m.Set(cfg)
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
