package platform

import (
	"context"
	"errors"
)

// ErrUnsupported is returned when global input hooks or cursor control are
// not available on the running OS
var ErrUnsupported = errors.New("global input hooks and cursor control are only supported on Windows")

// KeyCombo represents a keyboard key combination
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   int // Virtual key code
}

// Bare reports whether the combination has no modifiers
func (k KeyCombo) Bare() bool {
	return !k.Ctrl && !k.Shift && !k.Alt && !k.Win
}

// Matches reports whether a key event triggers this combination. A bare
// key fires whatever modifiers are held; a combination with modifiers
// needs exactly those.
func (k KeyCombo) Matches(evt InputEvent) bool {
	if evt.Kind != KeyDown || evt.Key != k.Key {
		return false
	}
	if k.Bare() {
		return true
	}
	return evt.Ctrl == k.Ctrl &&
		evt.Shift == k.Shift &&
		evt.Alt == k.Alt &&
		evt.Win == k.Win
}

// EventKind represents the type of global input event
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	PointerMove
	PointerClick
	PointerScroll
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "key_down"
	case KeyUp:
		return "key_up"
	case PointerMove:
		return "pointer_move"
	case PointerClick:
		return "pointer_click"
	case PointerScroll:
		return "pointer_scroll"
	default:
		return "unknown"
	}
}

// InputEvent represents one global keyboard or pointer event
type InputEvent struct {
	Kind EventKind

	// Key events
	Key   int // Virtual key code
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool

	// Pointer events
	X, Y int
}

// InputHook provides global keyboard and pointer capture. The returned
// channel is closed after the hooks are removed, which happens when ctx is
// cancelled.
type InputHook interface {
	Listen(ctx context.Context) (<-chan InputEvent, error)
}

// Cursor moves the pointer to absolute screen coordinates
type Cursor interface {
	MoveTo(x, y int) error
}

// Screen reports the primary display size
type Screen interface {
	Size() (width, height int, err error)
}
