//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	getMessage          = user32.NewProc("GetMessageW")
	postThreadMessage   = user32.NewProc("PostThreadMessageW")
	getAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14
	wmQuit       = 0x0012
	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105

	wmMousemove   = 0x0200
	wmLbuttondown = 0x0201
	wmRbuttondown = 0x0204
	wmMbuttondown = 0x0207
	wmMousewheel  = 0x020A
	wmXbuttondown = 0x020B
	wmMousehwheel = 0x020E
)

const (
	vkShift = 0x10
	vkCtrl  = 0x11
	vkAlt   = 0x12
	vkLwin  = 0x5B // Left Windows key
	vkRwin  = 0x5C // Right Windows key
)

// injectedMarker tags pointer input sent by WindowsCursor so the mouse hook
// can tell it apart from the user's own input
const injectedMarker = 0x4F524254

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msllhookstruct struct {
	pt          struct{ x, y int32 }
	mouseData   uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// WindowsInputHook implements the InputHook interface with low-level
// keyboard and mouse hooks
type WindowsInputHook struct {
	mu       sync.Mutex
	events   chan InputEvent
	keyboard uintptr
	mouse    uintptr
	threadID uint32
}

// NewInputHook creates a new Windows input hook
func NewInputHook() InputHook {
	return &WindowsInputHook{}
}

// Listen installs the hooks and streams events until ctx is cancelled
func (h *WindowsInputHook) Listen(ctx context.Context) (<-chan InputEvent, error) {
	h.mu.Lock()
	h.events = make(chan InputEvent, 64)
	h.mu.Unlock()

	// Start hooks in a goroutine
	errCh := make(chan error, 1)
	go h.runHooks(errCh)

	// Wait for hooks to be installed or error
	select {
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Monitor context cancellation
	go func() {
		<-ctx.Done()
		h.mu.Lock()
		tid := h.threadID
		h.mu.Unlock()
		postThreadMessage.Call(uintptr(tid), wmQuit, 0, 0)
	}()

	return h.events, nil
}

func (h *WindowsInputHook) runHooks(errCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	keyboardProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			kbInfo := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			h.handleKeyEvent(wParam, kbInfo)
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	mouseProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			msInfo := (*msllhookstruct)(unsafe.Pointer(lParam))
			h.handleMouseEvent(wParam, msInfo)
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	keyboard, _, err := setWindowsHookEx.Call(whKeyboardLL, windows.NewCallback(keyboardProc), 0, 0)
	if keyboard == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx (keyboard) failed: %w", err)
		close(h.events)
		return
	}

	mouse, _, err := setWindowsHookEx.Call(whMouseLL, windows.NewCallback(mouseProc), 0, 0)
	if mouse == 0 {
		unhookWindowsHookEx.Call(keyboard)
		errCh <- fmt.Errorf("SetWindowsHookEx (mouse) failed: %w", err)
		close(h.events)
		return
	}

	h.mu.Lock()
	h.keyboard = keyboard
	h.mouse = mouse
	h.threadID = windows.GetCurrentThreadId()
	h.mu.Unlock()

	errCh <- nil

	// Message loop; hook callbacks are dispatched while GetMessage waits.
	// WM_QUIT posted on cancellation makes it return 0.
	var m msg
	for {
		r, _, _ := getMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(r) <= 0 {
			break
		}
	}

	unhookWindowsHookEx.Call(mouse)
	unhookWindowsHookEx.Call(keyboard)

	// No callback can run on this thread any more
	close(h.events)
}

func (h *WindowsInputHook) handleKeyEvent(wParam uintptr, kbInfo *kbdllhookstruct) {
	var kind EventKind
	switch wParam {
	case wmKeydown, wmSyskeydown:
		kind = KeyDown
	case wmKeyup, wmSyskeyup:
		kind = KeyUp
	default:
		return
	}

	h.emit(InputEvent{
		Kind:  kind,
		Key:   int(kbInfo.vkCode),
		Ctrl:  isKeyPressed(vkCtrl),
		Shift: isKeyPressed(vkShift),
		Alt:   isKeyPressed(vkAlt),
		Win:   isKeyPressed(vkLwin) || isKeyPressed(vkRwin),
	})
}

func (h *WindowsInputHook) handleMouseEvent(wParam uintptr, msInfo *msllhookstruct) {
	if msInfo.dwExtraInfo == injectedMarker {
		return
	}

	var kind EventKind
	switch wParam {
	case wmMousemove:
		kind = PointerMove
	case wmLbuttondown, wmRbuttondown, wmMbuttondown, wmXbuttondown:
		kind = PointerClick
	case wmMousewheel, wmMousehwheel:
		kind = PointerScroll
	default:
		// Button releases are ignored
		return
	}

	h.emit(InputEvent{Kind: kind, X: int(msInfo.pt.x), Y: int(msInfo.pt.y)})
}

// emit never blocks the hook thread; events are dropped when the consumer
// falls behind
func (h *WindowsInputHook) emit(evt InputEvent) {
	select {
	case h.events <- evt:
	default:
	}
}

func isKeyPressed(vk int) bool {
	r, _, _ := getAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}
