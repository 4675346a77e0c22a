// Package overlay runs the render loop that shows held keys and mouse
// buttons on top of other windows.
package overlay

import (
	"context"
	"errors"
	"image"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"keyboim/internal/hotkey"
	"keyboim/internal/input"
	"keyboim/internal/keys"
)

// Surface is the window frames are presented on. All methods are called
// from the render goroutine.
type Surface interface {
	// Present shows a premultiplied RGBA frame.
	Present(img *image.RGBA) error
	// Pump handles pending window messages and reports whether the window
	// is still open.
	Pump() bool
	SetClickThrough(on bool) error
	ClickThrough() bool
	Position() (x, y int)
	Close() error
}

// SurfaceFactory opens the surface on the calling OS thread.
type SurfaceFactory func() (Surface, error)

// Options configures an App.
type Options struct {
	Width        int
	Height       int
	FontSize     float64
	FPS          int
	FadeWindow   time.Duration
	ShowMouse    bool
	Outline      bool
	StartOverlay bool

	// OnOverlayChanged runs on the render goroutine after overlay mode
	// changes.
	OnOverlayChanged func(on bool)
}

type commandKind int

const (
	cmdEnableOverlay commandKind = iota
	cmdDisableOverlay
	cmdSetFade
)

type command struct {
	kind commandKind
	fade time.Duration
}

// App owns the display state. Keyboard and mouse are read once per frame;
// everything else is touched only by the render goroutine, except the
// toggles which are atomic.
type App struct {
	logger   *zap.Logger
	keyboard *input.Keyboard
	mouse    *input.Mouse
	resolver *keys.Resolver
	hotkeys  *hotkey.Manager
	display  *Display
	renderer *Renderer
	open     SurfaceFactory
	surface  Surface
	interval time.Duration

	showMouse atomic.Bool
	outline   atomic.Bool
	overlay   atomic.Bool

	onOverlayChanged func(bool)
	commands         chan command

	// held is the live key set seen by the previous Step.
	held []keys.Code

	lastX, lastY int
	positioned   bool
}

// New creates the render loop. open is called from Run on the render
// goroutine's locked OS thread.
func New(opts Options, keyboard *input.Keyboard, mouse *input.Mouse, resolver *keys.Resolver, open SurfaceFactory, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer, err := NewRenderer(opts.Width, opts.Height, opts.FontSize)
	if err != nil {
		return nil, err
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}

	a := &App{
		logger:           logger.Named("overlay"),
		keyboard:         keyboard,
		mouse:            mouse,
		resolver:         resolver,
		display:          NewDisplay(opts.FadeWindow),
		renderer:         renderer,
		open:             open,
		interval:         time.Second / time.Duration(fps),
		onOverlayChanged: opts.OnOverlayChanged,
		commands:         make(chan command, 8),
		held:             make([]keys.Code, 0, input.MaxPressed),
	}
	a.showMouse.Store(opts.ShowMouse)
	a.outline.Store(opts.Outline)
	a.overlay.Store(opts.StartOverlay)

	a.hotkeys = hotkey.NewManager(a.logger)
	if _, err := a.hotkeys.Register("disable-overlay", keys.DisableOverlayChord, func() {
		a.applyOverlay(false)
	}); err != nil {
		return nil, err
	}

	return a, nil
}

// SetShowMouse toggles the mouse glyph.
func (a *App) SetShowMouse(on bool) { a.showMouse.Store(on) }

// SetOutline toggles the label outline.
func (a *App) SetOutline(on bool) { a.outline.Store(on) }

// SetFadeWindow is applied on the next frame.
func (a *App) SetFadeWindow(d time.Duration) {
	a.send(command{kind: cmdSetFade, fade: d})
}

// SetOverlay requests overlay mode. It is safe to call from any goroutine;
// the window is changed by the render goroutine.
func (a *App) SetOverlay(on bool) {
	if on {
		a.send(command{kind: cmdEnableOverlay})
	} else {
		a.send(command{kind: cmdDisableOverlay})
	}
}

// Overlay reports whether overlay mode is on.
func (a *App) Overlay() bool { return a.overlay.Load() }

func (a *App) send(c command) {
	select {
	case a.commands <- c:
	default:
		a.logger.Warn("Overlay command dropped", zap.Int("kind", int(c.kind)))
	}
}

func (a *App) handle(c command) {
	switch c.kind {
	case cmdEnableOverlay:
		a.applyOverlay(true)
	case cmdDisableOverlay:
		a.applyOverlay(false)
	case cmdSetFade:
		a.display.SetFadeWindow(c.fade)
	}
}

func (a *App) drainCommands() {
	for {
		select {
		case c := <-a.commands:
			a.handle(c)
		default:
			return
		}
	}
}

func (a *App) applyOverlay(on bool) {
	if a.surface != nil {
		if err := a.surface.SetClickThrough(on); err != nil {
			a.logger.Error("Failed to change click-through", zap.Bool("on", on), zap.Error(err))
			return
		}
	}
	if a.overlay.Swap(on) == on {
		return
	}
	a.logger.Info("Overlay mode changed", zap.Bool("overlay", on))
	if a.onOverlayChanged != nil {
		a.onOverlayChanged(on)
	}
}

// Step folds the current input state into the display and returns the
// frame to draw at now.
func (a *App) Step(now time.Time) Frame {
	a.drainCommands()

	var buf [input.MaxPressed]keys.Code
	live := a.keyboard.Snapshot(buf[:0])
	a.display.Observe(live, now)
	if !keys.ContainsAll(a.held, live) {
		a.hotkeys.Check(live)
	}
	a.held = append(a.held[:0], live...)

	f := Frame{
		ShowMouse: a.showMouse.Load(),
		Outline:   a.outline.Load(),
		Overlay:   a.overlay.Load(),
		Opacity:   a.display.Opacity(now),
	}
	if !a.display.Empty() {
		f.Label = a.resolver.Combination(a.display.Combination())
	}
	if f.ShowMouse {
		f.Buttons = a.mouse.Buttons()
	}
	return f
}

// Run opens the surface and renders until ctx is done or the window is
// closed. It locks the calling goroutine to its OS thread for the window's
// lifetime.
func (a *App) Run(ctx context.Context) error {
	if a.open == nil {
		return errors.New("overlay: no surface")
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	surface, err := a.open()
	if err != nil {
		return err
	}
	a.surface = surface
	defer func() {
		a.lastX, a.lastY = surface.Position()
		a.positioned = true
		if err := surface.Close(); err != nil {
			a.logger.Warn("Failed to close window", zap.Error(err))
		}
		a.surface = nil
	}()

	if a.overlay.Load() {
		if err := surface.SetClickThrough(true); err != nil {
			a.logger.Error("Failed to enable click-through", zap.Error(err))
			a.overlay.Store(false)
		}
	}

	a.logger.Info("Render loop started", zap.Duration("interval", a.interval))

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if !surface.Pump() {
				a.logger.Info("Overlay window closed")
				return nil
			}
			frame := a.Step(now)
			if err := surface.Present(a.renderer.Render(frame)); err != nil {
				a.logger.Debug("Present failed", zap.Error(err))
			}
		}
	}
}

// WindowPosition returns where the window was when Run returned.
func (a *App) WindowPosition() (x, y int, ok bool) {
	return a.lastX, a.lastY, a.positioned
}
