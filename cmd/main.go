// Keyboim - on-screen keyboard and mouse overlay
// Shows the keys and mouse buttons currently held on top of other windows.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"keyboim/internal/autostart"
	"keyboim/internal/config"
	"keyboim/internal/input"
	"keyboim/internal/keys"
	"keyboim/internal/logging"
	"keyboim/internal/osutils"
	"keyboim/internal/overlay"
	"keyboim/internal/tray"
	"keyboim/internal/window"
)

var (
	version = "0.1.0"
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "keyboim",
	Short: "Keyboard and mouse overlay",
	Long:  `Keyboim shows the keys and mouse buttons you are holding in a topmost overlay window`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOverlay()
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("keyboim version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is keyboim.yaml in the user config directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(keysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger from it.
func setup() (*config.Manager, *zap.Logger, error) {
	cfgMgr, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	loadErr := cfgMgr.Load()

	logger, err := logging.New(cfgMgr.Get().General.LogLevel, debug)
	if err != nil {
		return nil, nil, err
	}
	if loadErr != nil {
		logger.Warn("Failed to load config, using defaults", zap.String("path", cfgMgr.Path()), zap.Error(loadErr))
	}
	return cfgMgr, logger, nil
}

func runOverlay() error {
	cfgMgr, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := cfgMgr.Get()
	logger.Info("Keyboim starting", zap.String("version", version), zap.String("config", cfgMgr.Path()))
	if note := osutils.ElevationNote(); note != "" {
		logger.Info(note)
	}

	resolver := keys.NewResolver(keys.SystemLayout{})
	keyboard := input.NewKeyboard(resolver)
	mouse := input.NewMouse()

	tooltip := "Keyboim - keyboard overlay"
	if failed := startInput(keyboard.HandleKey, mouse.HandleMouse, logger); len(failed) > 0 {
		tooltip = "Keyboim - input capture unavailable"
	}

	iconImg, err := overlay.Icon(32)
	if err != nil {
		return err
	}
	icon, err := tray.IconFromImage(iconImg)
	if err != nil {
		logger.Warn("Failed to build tray icon", zap.Error(err))
	}
	t := tray.New("Keyboim", tooltip, icon)

	overlayItem := -1
	app, err := overlay.New(overlay.Options{
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		FontSize:     cfg.Overlay.FontSize,
		FPS:          cfg.Overlay.FPS,
		FadeWindow:   cfg.Overlay.FadeWindow,
		ShowMouse:    cfg.Overlay.ShowMouse,
		Outline:      cfg.Overlay.OutlineText,
		StartOverlay: cfg.Overlay.StartClickThrough,
		OnOverlayChanged: func(on bool) {
			t.SetItemChecked(overlayItem, on)
		},
	}, keyboard, mouse, resolver, func() (overlay.Surface, error) {
		w, err := window.Open(window.Options{
			Title:  "Keyboim",
			X:      cfg.Window.X,
			Y:      cfg.Window.Y,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
		})
		if err != nil {
			return nil, err
		}
		return w, nil
	}, logger)
	if err != nil {
		return err
	}

	save := func() {
		if err := cfgMgr.Save(); err != nil {
			logger.Error("Failed to save config", zap.Error(err))
		}
	}

	cfgMgr.RegisterChangeCallback(func() {
		c := cfgMgr.Get()
		app.SetShowMouse(c.Overlay.ShowMouse)
		app.SetOutline(c.Overlay.OutlineText)
		app.SetFadeWindow(c.Overlay.FadeWindow)
	})

	overlayItem = t.AddCheckbox("Overlay mode", cfg.Overlay.StartClickThrough, app.SetOverlay)
	t.AddCheckbox("Show Mouse", cfg.Overlay.ShowMouse, func(on bool) {
		cfgMgr.Update(func(c *config.Config) { c.Overlay.ShowMouse = on })
		save()
	})
	t.AddCheckbox("Outline Text", cfg.Overlay.OutlineText, func(on bool) {
		cfgMgr.Update(func(c *config.Config) { c.Overlay.OutlineText = on })
		save()
	})
	t.AddSeparator()
	var loginItem int
	loginItem = t.AddCheckbox("Start on login", autostart.IsEnabled(), func(on bool) {
		if err := autostart.Set(on); err != nil {
			logger.Error("Failed to change start on login", zap.Bool("enabled", on), zap.Error(err))
			t.SetItemChecked(loginItem, !on)
			return
		}
		cfgMgr.Update(func(c *config.Config) { c.General.StartOnBoot = on })
		save()
	})
	t.AddSeparator()
	t.AddMenuItem("Quit", func() {
		t.Stop()
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The window lives on the render goroutine; the tray owns the main one.
	done := make(chan error, 1)
	go func() {
		<-t.Ready()
		done <- app.Run(ctx)
		t.Stop()
	}()
	go func() {
		<-ctx.Done()
		t.Stop()
	}()

	t.Run(func() {
		logger.Info("Keyboim running. Use the tray menu or Ctrl+C to stop.",
			zap.Strings("disable_overlay_chord", chordLabels(resolver)))
	})
	logger.Info("Shutting down...")
	cancel()

	runErr := <-done
	if x, y, ok := app.WindowPosition(); ok {
		cfgMgr.Update(func(c *config.Config) {
			c.Window.X = x
			c.Window.Y = y
		})
		save()
	}
	return runErr
}

// startCapture is replaced in tests.
var startCapture = input.StartCapture

// startInput installs the input hooks. A class that fails is logged and the
// overlay keeps running without its live input.
func startInput(kb input.KeyboardHandler, ms input.MouseHandler, logger *zap.Logger) []error {
	var failed []error
	for err := range startCapture(kb, ms) {
		logger.Error("Failed to install input hook, overlay shows no live input", zap.Error(err))
		failed = append(failed, err)
	}
	return failed
}

func chordLabels(r *keys.Resolver) []string {
	out := make([]string, len(keys.DisableOverlayChord))
	for i, c := range keys.DisableOverlayChord {
		out[i] = r.Label(c)
	}
	return out
}
