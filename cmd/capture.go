package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"keyboim/internal/input"
	"keyboim/internal/keys"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Log captured keyboard and mouse events to the console",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCapture()
	},
	SilenceUsage: true,
}

var keysCmd = &cobra.Command{
	Use:   "keys <code>...",
	Short: "Print the labels of virtual key codes, e.g. keys 0xA2 0xA0 0x41",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printKeys(cmd, args)
	},
}

// captureEvent is what the hook handlers hand to the logging goroutine.
type captureEvent struct {
	key      bool
	code     keys.Code
	keyMsg   input.KeyMessage
	mouseMsg input.MouseMessage
	x, y     int32
	data     uint32
}

func runCapture() error {
	_, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	resolver := keys.NewResolver(keys.SystemLayout{})
	keyboard := input.NewKeyboard(resolver)
	mouse := input.NewMouse()

	events := make(chan captureEvent, 1024)
	var dropped atomic.Uint64

	// Handlers only update state and enqueue; logging happens off the hook thread.
	onKey := func(code keys.Code, msg input.KeyMessage) {
		keyboard.HandleKey(code, msg)
		select {
		case events <- captureEvent{key: true, code: code, keyMsg: msg}:
		default:
			dropped.Add(1)
		}
	}
	onMouse := func(msg input.MouseMessage, x, y int32, data uint32) {
		mouse.HandleMouse(msg, x, y, data)
		if msg == input.MouseMove {
			return
		}
		select {
		case events <- captureEvent{mouseMsg: msg, x: x, y: y, data: data}:
		default:
			dropped.Add(1)
		}
	}

	// Each hook thread returns only on failure or when its loop ends, and
	// either one ends the capture.
	hookErrs := make(chan error, 2)
	go func() { hookErrs <- input.RegisterKeyboard(onKey) }()
	go func() { hookErrs <- input.RegisterMouse(onMouse) }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("Capturing input. Press Ctrl+C to stop.")
	for {
		select {
		case <-ctx.Done():
			logger.Info("Capture stopped", zap.Uint64("dropped", dropped.Load()))
			return nil
		case err := <-hookErrs:
			if err == nil {
				logger.Info("Input hook loop ended", zap.Uint64("dropped", dropped.Load()))
				return nil
			}
			logger.Error("Failed to install input hook", zap.Error(err))
			return fmt.Errorf("input capture: %w", err)
		case ev := <-events:
			if ev.key {
				logger.Info("Key",
					zap.Stringer("message", ev.keyMsg),
					zap.String("code", fmt.Sprintf("0x%02X", uint32(ev.code))),
					zap.String("label", resolver.Label(ev.code)),
					zap.String("combination", keyboard.CurrentCombinationLabel()),
					zap.Bool("disable_overlay_chord", keyboard.IsHotkeyPressed()),
				)
				continue
			}
			b := mouse.Buttons()
			logger.Info("Mouse",
				zap.Stringer("message", ev.mouseMsg),
				zap.Int32("x", ev.x),
				zap.Int32("y", ev.y),
				zap.Uint32("data", ev.data),
				zap.Bools("buttons", b[:]),
			)
		}
	}
}

func printKeys(cmd *cobra.Command, args []string) error {
	codes := make([]keys.Code, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid key code %q: %w", arg, err)
		}
		codes = append(codes, keys.Code(v))
	}

	resolver := keys.NewResolver(keys.SystemLayout{})
	out := cmd.OutOrStdout()
	for _, c := range codes {
		fmt.Fprintf(out, "0x%02X\t%s\n", uint32(c), resolver.Label(c))
	}
	fmt.Fprintf(out, "combination\t%s\n", resolver.Combination(codes))
	return nil
}
