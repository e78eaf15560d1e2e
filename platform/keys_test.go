package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVKCode(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"pageup", 0x21},
		{"PgDn", 0x22},
		{"insert", 0x2D},
		{"del", 0x2E},
		{"escape", 0x1B},
		{"left", 0x25},
		{"down", 0x28},
		{" v ", 0x56},
	}
	for _, tt := range tests {
		got, err := VKCode(tt.key)
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}

	for _, bad := range []string{"hyper", "", "  "} {
		_, err := VKCode(bad)
		assert.Error(t, err, "%q", bad)
	}
}

func TestKeyComboMatches(t *testing.T) {
	combo := KeyCombo{Ctrl: true, Key: 0x21}

	assert.True(t, combo.Matches(InputEvent{Kind: KeyDown, Key: 0x21, Ctrl: true}))
	assert.False(t, combo.Matches(InputEvent{Kind: KeyUp, Key: 0x21, Ctrl: true}))
	assert.False(t, combo.Matches(InputEvent{Kind: KeyDown, Key: 0x21}))
	assert.False(t, combo.Matches(InputEvent{Kind: KeyDown, Key: 0x21, Ctrl: true, Shift: true}))
	assert.False(t, combo.Matches(InputEvent{Kind: PointerMove}))
	assert.False(t, combo.Bare())
}

func TestBareKeyComboIgnoresHeldModifiers(t *testing.T) {
	combo := KeyCombo{Key: 0x2D}
	require.True(t, combo.Bare())

	assert.True(t, combo.Matches(InputEvent{Kind: KeyDown, Key: 0x2D}))
	assert.True(t, combo.Matches(InputEvent{Kind: KeyDown, Key: 0x2D, Shift: true}))
	assert.True(t, combo.Matches(InputEvent{Kind: KeyDown, Key: 0x2D, Ctrl: true, Alt: true, Win: true}))
	assert.False(t, combo.Matches(InputEvent{Kind: KeyUp, Key: 0x2D, Shift: true}))
	assert.False(t, combo.Matches(InputEvent{Kind: KeyDown, Key: 0x2E, Shift: true}))
}
