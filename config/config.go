package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"markestedt/orbit/motion"
)

type Config struct {
	Hotkeys HotkeysConfig `toml:"hotkeys"`
	Motion  MotionConfig  `toml:"motion"`
	Log     LogConfig     `toml:"log"`
	Tray    TrayConfig    `toml:"tray"`
}

type HotkeysConfig struct {
	Increase string `toml:"increase"`
	Decrease string `toml:"decrease"`
	Start    string `toml:"start"`
	Stop     string `toml:"stop"`
	Exit     string `toml:"exit"`
	Left     string `toml:"left"`
	Right    string `toml:"right"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
}

type MotionConfig struct {
	Radius          int     `toml:"radius"`
	StepAngle       int     `toml:"step_angle"`
	OffsetStep      float64 `toml:"offset_step"`
	YieldIntervalMs int     `toml:"yield_interval_ms"`
}

// YieldInterval returns the pause between cursor moves
func (m MotionConfig) YieldInterval() time.Duration {
	return time.Duration(m.YieldIntervalMs) * time.Millisecond
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type TrayConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default configuration
func defaultConfig() *Config {
	geom := motion.DefaultGeometry()
	return &Config{
		Hotkeys: HotkeysConfig{
			Increase: "pageup",
			Decrease: "pagedown",
			Start:    "insert",
			Stop:     "delete",
			Exit:     "esc",
			Left:     "left",
			Right:    "right",
			Up:       "up",
			Down:     "down",
		},
		Motion: MotionConfig{
			Radius:          geom.Radius,
			StepAngle:       geom.StepAngle,
			OffsetStep:      motion.DefaultOffsetStep,
			YieldIntervalMs: int(motion.DefaultYield / time.Millisecond),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Tray: TrayConfig{
			Enabled: true,
		},
	}
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}

	configDir := filepath.Join(appData, "orbit")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the default location and returns the
// path it was read from
func Load() (*Config, string, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := LoadFrom(configPath)
	return cfg, configPath, err
}

// LoadFrom loads the configuration from the TOML file at path
// If the file doesn't exist, it creates it with default values
func LoadFrom(configPath string) (*Config, error) {
	// If config doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		cfg := defaultConfig()
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	// Load existing config
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Validate checks value ranges and hotkey syntax
func (c *Config) Validate() error {
	m := c.Motion
	if m.Radius < motion.MinRadius || m.Radius > motion.MaxRadius {
		return fmt.Errorf("motion.radius must be within [%d, %d], got %d", motion.MinRadius, motion.MaxRadius, m.Radius)
	}
	if m.StepAngle < motion.MinStepAngle || m.StepAngle > motion.MaxStepAngle {
		return fmt.Errorf("motion.step_angle must be within [%d, %d], got %d", motion.MinStepAngle, motion.MaxStepAngle, m.StepAngle)
	}
	if m.OffsetStep <= 0 {
		return fmt.Errorf("motion.offset_step must be positive, got %g", m.OffsetStep)
	}
	if m.YieldIntervalMs < 0 {
		return fmt.Errorf("motion.yield_interval_ms must not be negative, got %d", m.YieldIntervalMs)
	}

	for name, combo := range c.Hotkeys.Named() {
		if _, err := ParseHotkey(combo); err != nil {
			return fmt.Errorf("hotkeys.%s: %w", name, err)
		}
	}
	return nil
}

// Named returns every binding keyed by its config name
func (h HotkeysConfig) Named() map[string]string {
	return map[string]string{
		"increase": h.Increase,
		"decrease": h.Decrease,
		"start":    h.Start,
		"stop":     h.Stop,
		"exit":     h.Exit,
		"left":     h.Left,
		"right":    h.Right,
		"up":       h.Up,
		"down":     h.Down,
	}
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// KeyCombo represents a parsed keyboard combination
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   string
}

// ParseHotkey parses a hotkey combo string like "insert" or "ctrl+shift+pageup"
func ParseHotkey(combo string) (KeyCombo, error) {
	var kc KeyCombo
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return kc, fmt.Errorf("empty hotkey combo")
	}

	parts := strings.Split(strings.ToLower(combo), "+")

	for i, part := range parts {
		part = strings.TrimSpace(part)

		// Check if this part is a modifier
		isModifier := false
		switch part {
		case "ctrl", "control":
			kc.Ctrl = true
			isModifier = true
		case "shift":
			kc.Shift = true
			isModifier = true
		case "alt":
			kc.Alt = true
			isModifier = true
		case "win", "windows":
			kc.Win = true
			isModifier = true
		}

		// If it's not a modifier and it's the last part, it's the key
		if !isModifier {
			if part == "" {
				return kc, fmt.Errorf("empty key in combo %q", combo)
			}
			if i == len(parts)-1 {
				kc.Key = part
			} else {
				return kc, fmt.Errorf("unknown modifier: %s", part)
			}
		}
	}

	// Modifier-only combos cannot be told apart from ordinary typing
	if kc.Key == "" {
		return kc, fmt.Errorf("hotkey %q names no key", combo)
	}

	return kc, nil
}
