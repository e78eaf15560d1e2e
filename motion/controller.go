package motion

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
)

// DefaultYield is the pause between two cursor moves
const DefaultYield = time.Millisecond

// State of the movement state machine
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Mover positions the cursor immediately at absolute screen coordinates
type Mover interface {
	MoveTo(x, y int) error
}

// Snapshot is a consistent copy of the controller state
type Snapshot struct {
	State    State
	Geometry Geometry
	Message  string
}

// Notifier receives a snapshot after every state or geometry change
type Notifier interface {
	Notify(Snapshot)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(Snapshot)

// Notify calls f(s)
func (f NotifierFunc) Notify(s Snapshot) {
	f(s)
}

// Options configures a Controller
type Options struct {
	Screen      Screen
	Geometry    Geometry
	Yield       time.Duration
	Mover       Mover
	Notifier    Notifier
	Termination *Termination
	Logger      *slog.Logger
}

// Controller owns the movement state and geometry and runs the motion loop.
// A single mutex guards state and geometry so that the loop never sees a
// half-applied change.
type Controller struct {
	mu       sync.Mutex
	state    State
	geometry Geometry
	gen      uint64
	loops    sync.WaitGroup

	screen   Screen
	yield    time.Duration
	mover    Mover
	notifier Notifier
	term     *Termination
	logger   *slog.Logger
}

// NewController creates an idle controller
func NewController(opts Options) (*Controller, error) {
	if opts.Screen.Width <= 0 || opts.Screen.Height <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", opts.Screen.Width, opts.Screen.Height)
	}
	if opts.Mover == nil {
		return nil, errors.New("cursor mover is required")
	}

	geometry := opts.Geometry
	geometry.clamp()

	yield := opts.Yield
	if yield <= 0 {
		yield = DefaultYield
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NotifierFunc(func(Snapshot) {})
	}
	term := opts.Termination
	if term == nil {
		term = NewTermination()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		geometry: geometry,
		screen:   opts.Screen,
		yield:    yield,
		mover:    opts.Mover,
		notifier: notifier,
		term:     term,
		logger:   logger,
	}, nil
}

// Handle executes a single command
func (c *Controller) Handle(cmd Command) {
	switch cmd.Kind {
	case CmdStart:
		c.Start()
	case CmdStop:
		c.Stop()
	case CmdIncrease:
		c.AdjustGeometry(true)
	case CmdDecrease:
		c.AdjustGeometry(false)
	case CmdOffset:
		c.AdjustOffset(cmd.DX, cmd.DY)
	case CmdInterrupt:
		c.Interrupt(cmd.Source)
	case CmdExit:
		c.Terminate()
	default:
		c.logger.Warn("Unknown command", "kind", cmd.Kind)
	}
}

// Start switches to Active and launches the motion loop. It reports false
// when motion was already active or the process is terminating.
func (c *Controller) Start() bool {
	c.mu.Lock()
	if c.state == Active || c.term.IsSet() {
		c.mu.Unlock()
		return false
	}
	c.state = Active
	c.gen++
	gen := c.gen
	c.loops.Add(1)
	snap := c.snapshotLocked("Circular movement started.")
	c.mu.Unlock()

	go c.run(gen)

	c.logger.Info("Circular movement started", "radius", snap.Geometry.Radius, "step_angle", snap.Geometry.StepAngle)
	c.notifier.Notify(snap)
	return true
}

// Stop switches to Idle and resets the center offset, even when already idle
func (c *Controller) Stop() {
	c.mu.Lock()
	c.state = Idle
	c.geometry.Offset = Offset{}
	snap := c.snapshotLocked("Circular movement stopped.")
	c.mu.Unlock()

	c.logger.Info("Circular movement stopped")
	c.notifier.Notify(snap)
}

// Interrupt stops motion in response to manual input. The offset is kept.
// It reports whether motion was active.
func (c *Controller) Interrupt(src Source) bool {
	c.mu.Lock()
	if c.state != Active {
		c.mu.Unlock()
		return false
	}
	c.state = Idle
	snap := c.snapshotLocked(fmt.Sprintf("Mouse %s manually. Circular movement stopped.", src))
	c.mu.Unlock()

	c.logger.Info("Circular movement interrupted", "source", string(src))
	c.notifier.Notify(snap)
	return true
}

// AdjustGeometry grows or shrinks radius and step angle within their bounds
func (c *Controller) AdjustGeometry(increase bool) {
	c.mu.Lock()
	c.geometry.adjust(increase)
	g := c.geometry
	snap := c.snapshotLocked(fmt.Sprintf("Radius: %d, Step Angle: %d", g.Radius, g.StepAngle))
	c.mu.Unlock()

	c.logger.Debug("Geometry adjusted", "increase", increase, "radius", g.Radius, "step_angle", g.StepAngle)
	c.notifier.Notify(snap)
}

// AdjustOffset moves the circle center, rounding each axis to one decimal
func (c *Controller) AdjustOffset(dx, dy float64) {
	c.mu.Lock()
	c.geometry.shift(dx, dy)
	o := c.geometry.Offset
	snap := c.snapshotLocked(fmt.Sprintf("Offset - X: %g, Y: %g", o.X, o.Y))
	c.mu.Unlock()

	c.logger.Debug("Offset adjusted", "x", o.X, "y", o.Y)
	c.notifier.Notify(snap)
}

// Terminate raises the termination flag, idles the controller and waits for
// the motion loop to exit. Safe to call more than once.
func (c *Controller) Terminate() {
	c.mu.Lock()
	first := c.term.Set()
	c.state = Idle
	c.mu.Unlock()

	c.Wait()
	if first {
		c.logger.Info("Termination requested")
	}
}

// Wait blocks until no motion loop is running
func (c *Controller) Wait() {
	c.loops.Wait()
}

// Snapshot returns the current state and geometry
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked("")
}

func (c *Controller) snapshotLocked(msg string) Snapshot {
	return Snapshot{State: c.state, Geometry: c.geometry, Message: msg}
}

// run is the motion loop for one Active period. The cursor move is issued
// while holding the lock, so an interrupt that returns has already
// prevented every later move.
func (c *Controller) run(gen uint64) {
	defer c.loops.Done()

	timer := time.NewTimer(c.yield)
	defer timer.Stop()

	angle := 0.0
	warned := false
	for {
		c.mu.Lock()
		if c.state != Active || c.gen != gen || c.term.IsSet() {
			c.mu.Unlock()
			return
		}
		x, y := c.geometry.Target(c.screen, angle)
		step := c.geometry.StepAngle
		err := c.mover.MoveTo(int(math.Round(x)), int(math.Round(y)))
		c.mu.Unlock()

		if err != nil && !warned {
			c.logger.Warn("Failed to move cursor", "x", x, "y", y, "error", err)
			warned = true
		}

		angle = math.Mod(angle+float64(step), 360)

		timer.Reset(c.yield)
		select {
		case <-c.term.Done():
			return
		case <-timer.C:
		}
	}
}
