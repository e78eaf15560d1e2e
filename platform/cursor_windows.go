//go:build windows

package platform

import (
	"fmt"
	"unsafe"
)

var (
	sendInput        = user32.NewProc("SendInput")
	getSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	inputMouse          = 0
	mouseeventfMove     = 0x0001
	mouseeventfAbsolute = 0x8000
	smCxscreen          = 0
	smCyscreen          = 1
)

type mouseInput struct {
	dx          int32
	dy          int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	mi        mouseInput
}

// WindowsCursor implements the Cursor interface for Windows
type WindowsCursor struct{}

// NewCursor creates a new Windows cursor instance
func NewCursor() Cursor {
	return &WindowsCursor{}
}

// MoveTo moves the pointer to (x, y) on the primary display with a single
// absolute SendInput. The input is tagged so our own mouse hook skips it.
func (c *WindowsCursor) MoveTo(x, y int) error {
	w, h, err := primarySize()
	if err != nil {
		return err
	}

	// Absolute coordinates are normalized to 0..65535 across the primary display
	in := input{
		inputType: inputMouse,
		mi: mouseInput{
			dx:          int32(normalize(x, w)),
			dy:          int32(normalize(y, h)),
			dwFlags:     mouseeventfMove | mouseeventfAbsolute,
			dwExtraInfo: injectedMarker,
		},
	}

	ret, _, callErr := sendInput.Call(
		1,
		uintptr(unsafe.Pointer(&in)),
		unsafe.Sizeof(in),
	)
	if ret == 0 {
		return fmt.Errorf("SendInput failed: %w", callErr)
	}

	return nil
}

// WindowsScreen implements the Screen interface for Windows
type WindowsScreen struct{}

// NewScreen creates a new Windows screen instance
func NewScreen() Screen {
	return &WindowsScreen{}
}

// Size returns the primary display size in pixels
func (s *WindowsScreen) Size() (int, int, error) {
	return primarySize()
}

func primarySize() (int, int, error) {
	w, _, _ := getSystemMetrics.Call(smCxscreen)
	h, _, _ := getSystemMetrics.Call(smCyscreen)
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("GetSystemMetrics returned %dx%d", w, h)
	}
	return int(w), int(h), nil
}

func normalize(v, extent int) int {
	if extent <= 1 {
		return 0
	}
	return v * 65535 / (extent - 1)
}
