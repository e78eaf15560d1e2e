package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"markestedt/orbit/config"
	"markestedt/orbit/motion"
	"markestedt/orbit/platform"
	"markestedt/orbit/status"
)

// hookShutdownTimeout bounds how long shutdown waits for the hooks to be removed
const hookShutdownTimeout = time.Second

// Platform bundles the OS capabilities the agent consumes
type Platform struct {
	Hook   platform.InputHook
	Cursor platform.Cursor
	Screen platform.Screen
}

// DefaultPlatform returns the implementation for the running OS
func DefaultPlatform() Platform {
	return Platform{
		Hook:   platform.NewInputHook(),
		Cursor: platform.NewCursor(),
		Screen: platform.NewScreen(),
	}
}

// binding maps a hotkey to the command it triggers
type binding struct {
	name  string
	combo platform.KeyCombo
	cmd   motion.Command
}

// Agent coordinates input hooks, the movement controller and status reporting
type Agent struct {
	cfg      *config.Config
	platform Platform
	reporter *status.Reporter
	bindings []binding
	term     *motion.Termination
	logger   *slog.Logger

	ctrl      *motion.Controller
	events    <-chan platform.InputEvent
	stopHooks context.CancelFunc
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config, p Platform, reporter *status.Reporter, logger *slog.Logger) (*Agent, error) {
	bindings, err := parseBindings(cfg.Hotkeys, cfg.Motion.OffsetStep)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hotkeys: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Agent{
		cfg:      cfg,
		platform: p,
		reporter: reporter,
		bindings: bindings,
		term:     motion.NewTermination(),
		logger:   logger,
	}, nil
}

// Start builds the controller and registers the input hooks. Any error is
// fatal: the process cannot work without hooks or cursor control.
func (a *Agent) Start(ctx context.Context) error {
	width, height, err := a.platform.Screen.Size()
	if err != nil {
		return fmt.Errorf("failed to query screen size: %w", err)
	}

	ctrl, err := motion.NewController(motion.Options{
		Screen: motion.Screen{Width: width, Height: height},
		Geometry: motion.Geometry{
			Radius:    a.cfg.Motion.Radius,
			StepAngle: a.cfg.Motion.StepAngle,
		},
		Yield:       a.cfg.Motion.YieldInterval(),
		Mover:       a.platform.Cursor,
		Notifier:    a.reporter,
		Termination: a.term,
		Logger:      a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}

	// Hooks outlive ctx so that they are removed only after motion stopped
	hookCtx, stopHooks := context.WithCancel(context.WithoutCancel(ctx))
	events, err := a.platform.Hook.Listen(hookCtx)
	if err != nil {
		stopHooks()
		return fmt.Errorf("failed to register input hooks: %w", err)
	}

	a.ctrl = ctrl
	a.events = events
	a.stopHooks = stopHooks

	a.logger.Info("Orbit started",
		"screen", fmt.Sprintf("%dx%d", width, height),
		"start", a.cfg.Hotkeys.Start,
		"stop", a.cfg.Hotkeys.Stop,
		"exit", a.cfg.Hotkeys.Exit)
	a.reporter.Greet(ctrl.Snapshot())
	return nil
}

// Run dispatches input events and control panel commands to the controller
// until ctx is cancelled or termination is requested. Start must have
// succeeded before Run is called.
func (a *Agent) Run(ctx context.Context, panel <-chan motion.Command) error {
	if a.ctrl == nil {
		return errors.New("agent not started")
	}

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Shutdown signal received")
			a.shutdown()
			return nil

		case <-a.term.Done():
			a.shutdown()
			return nil

		case evt, ok := <-a.events:
			if !ok {
				a.ctrl.Terminate()
				a.stopHooks()
				return errors.New("input hooks stopped unexpectedly")
			}
			if cmd, ok := a.translate(evt); ok {
				a.ctrl.Handle(cmd)
			}

		case cmd := <-panel:
			a.ctrl.Handle(cmd)
		}
	}
}

// shutdown stops the motion loop first, then removes the hooks
func (a *Agent) shutdown() {
	a.ctrl.Terminate()
	a.stopHooks()

	timeout := time.NewTimer(hookShutdownTimeout)
	defer timeout.Stop()
	for {
		select {
		case _, ok := <-a.events:
			if !ok {
				a.logger.Info("Input hooks removed")
				return
			}
		case <-timeout.C:
			a.logger.Warn("Timed out waiting for input hooks to be removed")
			return
		}
	}
}

// translate maps an input event to a controller command. Manual pointer
// input always interrupts; keys only act when bound.
func (a *Agent) translate(evt platform.InputEvent) (motion.Command, bool) {
	switch evt.Kind {
	case platform.PointerMove:
		return motion.InterruptBy(motion.SourceMove), true
	case platform.PointerClick:
		return motion.InterruptBy(motion.SourceClick), true
	case platform.PointerScroll:
		return motion.InterruptBy(motion.SourceScroll), true
	case platform.KeyDown:
		// An exact modifier combination wins over a bare key on the same key
		var fallback *binding
		for i, b := range a.bindings {
			if !b.combo.Matches(evt) {
				continue
			}
			if !b.combo.Bare() {
				a.logger.Debug("Hotkey pressed", "binding", b.name)
				return b.cmd, true
			}
			if fallback == nil {
				fallback = &a.bindings[i]
			}
		}
		if fallback != nil {
			a.logger.Debug("Hotkey pressed", "binding", fallback.name)
			return fallback.cmd, true
		}
	}
	return motion.Command{}, false
}

// parseBindings resolves every configured hotkey to a virtual key combo
func parseBindings(h config.HotkeysConfig, offsetStep float64) ([]binding, error) {
	specs := []struct {
		name  string
		combo string
		cmd   motion.Command
	}{
		{"increase", h.Increase, motion.Command{Kind: motion.CmdIncrease}},
		{"decrease", h.Decrease, motion.Command{Kind: motion.CmdDecrease}},
		{"start", h.Start, motion.Command{Kind: motion.CmdStart}},
		{"stop", h.Stop, motion.Command{Kind: motion.CmdStop}},
		{"left", h.Left, motion.OffsetBy(-offsetStep, 0)},
		{"right", h.Right, motion.OffsetBy(offsetStep, 0)},
		{"up", h.Up, motion.OffsetBy(0, -offsetStep)},
		{"down", h.Down, motion.OffsetBy(0, offsetStep)},
		{"exit", h.Exit, motion.Command{Kind: motion.CmdExit}},
	}

	bindings := make([]binding, 0, len(specs))
	seen := make(map[platform.KeyCombo]string, len(specs))
	for _, spec := range specs {
		combo, err := config.ParseHotkey(spec.combo)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.name, err)
		}

		// Convert key to VK code
		vkCode, err := platform.VKCode(combo.Key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.name, err)
		}

		pkCombo := platform.KeyCombo{
			Ctrl:  combo.Ctrl,
			Shift: combo.Shift,
			Alt:   combo.Alt,
			Win:   combo.Win,
			Key:   vkCode,
		}
		if other, dup := seen[pkCombo]; dup {
			return nil, fmt.Errorf("%s and %s share the hotkey %q", other, spec.name, spec.combo)
		}
		seen[pkCombo] = spec.name

		bindings = append(bindings, binding{name: spec.name, combo: pkCombo, cmd: spec.cmd})
	}
	return bindings, nil
}
