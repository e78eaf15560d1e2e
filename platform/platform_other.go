//go:build !windows

package platform

import "context"

type unsupportedHook struct{}

// NewInputHook returns a hook that always fails to listen
func NewInputHook() InputHook {
	return unsupportedHook{}
}

func (unsupportedHook) Listen(context.Context) (<-chan InputEvent, error) {
	return nil, ErrUnsupported
}

type unsupportedCursor struct{}

// NewCursor returns a cursor that always fails to move
func NewCursor() Cursor {
	return unsupportedCursor{}
}

func (unsupportedCursor) MoveTo(int, int) error {
	return ErrUnsupported
}

type unsupportedScreen struct{}

// NewScreen returns a screen that always fails to report its size
func NewScreen() Screen {
	return unsupportedScreen{}
}

func (unsupportedScreen) Size() (int, int, error) {
	return 0, 0, ErrUnsupported
}
