package systray

import (
	_ "embed"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/getlantern/systray"

	"markestedt/orbit/motion"
	"markestedt/orbit/status"
)

// Icon is the default tray icon
//
//go:embed icon.ico
var Icon []byte

// Windows truncates notification area tooltips at 128 UTF-16 units
const maxTooltip = 127

// SystrayManager is the always-available status surface: it shows the
// current status as tooltip and menu text and offers Start, Stop and Exit.
type SystrayManager struct {
	labels   status.Labels
	iconData []byte
	commands chan motion.Command
	readyCh  chan struct{}

	mu        sync.Mutex
	ready     bool
	pending   *status.View
	statusItm *systray.MenuItem
}

// NewSystrayManager creates a new systray manager
func NewSystrayManager(labels status.Labels, iconData []byte) *SystrayManager {
	return &SystrayManager{
		labels:   labels,
		iconData: iconData,
		commands: make(chan motion.Command, 4),
		readyCh:  make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *SystrayManager) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *SystrayManager) Stop() {
	systray.Quit()
}

// Ready returns a channel closed once the tray icon is shown. Stop must not
// be called before that.
func (m *SystrayManager) Ready() <-chan struct{} {
	return m.readyCh
}

// Commands returns the channel receiving control panel actions
func (m *SystrayManager) Commands() <-chan motion.Command {
	return m.commands
}

// Update implements status.Sink
func (m *SystrayManager) Update(v status.View) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		m.pending = &v
		return
	}
	m.apply(v)
}

// apply must be called with m.mu held
func (m *SystrayManager) apply(v status.View) {
	systray.SetTitle(fmt.Sprintf("Orbit (%s)", v.State))
	systray.SetTooltip(truncate(v.Debug, maxTooltip))
	if m.statusItm != nil {
		m.statusItm.SetTitle(v.Status)
	}
}

// onReady is called when the systray is ready
func (m *SystrayManager) onReady() {
	// Set icon
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	systray.SetTitle("Orbit")
	systray.SetTooltip("Orbit - Circular Mouse Movement")

	// Add menu items
	mStatus := systray.AddMenuItem("", "Current status")
	mStatus.Disable()
	systray.AddSeparator()
	mStart := systray.AddMenuItem(fmt.Sprintf("Start (%s)", m.labels.Start), "Start circular movement")
	mStop := systray.AddMenuItem(fmt.Sprintf("Stop (%s)", m.labels.Stop), "Stop circular movement and reset the offset")
	systray.AddSeparator()
	mExit := systray.AddMenuItem("Exit", "Exit Orbit")

	m.mu.Lock()
	m.statusItm = mStatus
	m.ready = true
	if m.pending != nil {
		m.apply(*m.pending)
		m.pending = nil
	}
	m.mu.Unlock()
	close(m.readyCh)

	// Handle menu clicks
	go func() {
		for {
			select {
			case <-mStart.ClickedCh:
				m.send(motion.Command{Kind: motion.CmdStart})
			case <-mStop.ClickedCh:
				m.send(motion.Command{Kind: motion.CmdStop})
			case <-mExit.ClickedCh:
				slog.Info("User requested exit from system tray")
				m.send(motion.Command{Kind: motion.CmdExit})
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting
func (m *SystrayManager) onExit() {
	slog.Info("System tray exited")
}

func (m *SystrayManager) send(cmd motion.Command) {
	select {
	case m.commands <- cmd:
	default:
		slog.Warn("Control panel command dropped", "command", cmd.Kind.String())
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
