package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"markestedt/orbit/config"
	"markestedt/orbit/logging"
	"markestedt/orbit/status"
	"markestedt/orbit/systray"
)

// CLI holds the command line flags. Everything else lives in the config file.
type CLI struct {
	Config    string `help:"Path to the TOML config file (default: %APPDATA%/orbit/config.toml)." type:"path" env:"ORBIT_CONFIG"`
	LogLevel  string `help:"Override the configured log level (debug, info, warn, error)."`
	LogFormat string `help:"Override the configured log format (text, json)."`
	Headless  bool   `help:"Run without the system tray icon."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("orbit"),
		kong.Description("Moves the mouse in circles until you touch it."),
		kong.UsageOnError(),
	)

	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, configPath, err := loadConfig(cli.Config)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}
	logger, err = logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		slog.Error("Failed to configure logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	slog.Info("Configuration loaded", "path", configPath)

	labels := status.LabelsFrom(cfg.Hotkeys)
	reporter := status.NewReporter(labels, status.NewLogSink(logger))

	// Create agent
	agent, err := NewAgent(cfg, DefaultPlatform(), reporter, logger)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The tray must be a sink before Start renders the greeting
	var tray *systray.SystrayManager
	if !cli.Headless && cfg.Tray.Enabled {
		tray = systray.NewSystrayManager(labels, systray.Icon)
		reporter.AddSink(tray)
	}

	if err := agent.Start(ctx); err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}

	if tray == nil {
		err = agent.Run(ctx, nil)
	} else {
		err = runWithTray(ctx, cancel, agent, tray)
	}
	if err != nil {
		slog.Error("Agent error", "error", err)
		os.Exit(1)
	}

	slog.Info("Orbit stopped")
}

func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		return config.Load()
	}
	cfg, err := config.LoadFrom(path)
	return cfg, path, err
}

// runWithTray runs the tray on the main goroutine and the agent beside it.
// Whichever finishes first brings the other down.
func runWithTray(ctx context.Context, cancel context.CancelFunc, agent *Agent, tray *systray.SystrayManager) error {
	errCh := make(chan error, 1)
	trayDone := make(chan struct{})
	go func() {
		errCh <- agent.Run(ctx, tray.Commands())
		select {
		case <-tray.Ready():
			tray.Stop()
		case <-trayDone:
		}
	}()

	tray.Run()
	close(trayDone)
	cancel()
	return <-errCh
}
