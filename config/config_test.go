package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config should be written")

	// A second load decodes the file that was just written
	again, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadFromCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orbit", "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadUsesAppData(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPDATA", dir)

	cfg, path, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orbit", "config.toml"), path)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[hotkeys]
start = "ctrl+f9"

[motion]
radius = 200
yield_interval_ms = 5

[tray]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "ctrl+f9", cfg.Hotkeys.Start)
	assert.Equal(t, "delete", cfg.Hotkeys.Stop)
	assert.Equal(t, 200, cfg.Motion.Radius)
	assert.Equal(t, 40, cfg.Motion.StepAngle)
	assert.Equal(t, 5*time.Millisecond, cfg.Motion.YieldInterval())
	assert.False(t, cfg.Tray.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"radius too large": "[motion]\nradius = 501\n",
		"step too small":   "[motion]\nstep_angle = 4\n",
		"offset step":      "[motion]\noffset_step = 0.0\n",
		"negative yield":   "[motion]\nyield_interval_ms = -1\n",
		"bad hotkey":       "[hotkeys]\nexit = \"hyper+q\"\n",
		"malformed toml":   "[motion\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestParseHotkey(t *testing.T) {
	kc, err := ParseHotkey("Insert")
	require.NoError(t, err)
	assert.Equal(t, KeyCombo{Key: "insert"}, kc)

	kc, err = ParseHotkey("ctrl + shift + pageup")
	require.NoError(t, err)
	assert.Equal(t, KeyCombo{Ctrl: true, Shift: true, Key: "pageup"}, kc)

	kc, err = ParseHotkey("control+alt+win+f1")
	require.NoError(t, err)
	assert.Equal(t, KeyCombo{Ctrl: true, Alt: true, Win: true, Key: "f1"}, kc)

	for _, bad := range []string{"", "  ", "ctrl+win", "foo+a", "ctrl+", "a+b"} {
		_, err := ParseHotkey(bad)
		assert.Error(t, err, bad)
	}
}

func TestHotkeysNamed(t *testing.T) {
	named := defaultConfig().Hotkeys.Named()
	assert.Len(t, named, 9)
	assert.Equal(t, "insert", named["start"])
	assert.Equal(t, "esc", named["exit"])
}
