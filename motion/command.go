package motion

// CommandKind identifies what a command asks the controller to do
type CommandKind int

const (
	CmdStart CommandKind = iota
	CmdStop
	CmdIncrease
	CmdDecrease
	CmdOffset
	CmdInterrupt
	CmdExit
)

func (k CommandKind) String() string {
	switch k {
	case CmdStart:
		return "start"
	case CmdStop:
		return "stop"
	case CmdIncrease:
		return "increase"
	case CmdDecrease:
		return "decrease"
	case CmdOffset:
		return "offset"
	case CmdInterrupt:
		return "interrupt"
	case CmdExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Source names the kind of manual input that interrupted motion
type Source string

const (
	SourceMove   Source = "moved"
	SourceClick  Source = "clicked"
	SourceScroll Source = "scrolled"
)

// Command is a single request for the controller. Every external event
// (hotkey, pointer input, control panel click) is translated into one.
type Command struct {
	Kind   CommandKind
	DX, DY float64 // CmdOffset only
	Source Source  // CmdInterrupt only
}

// OffsetBy builds a CmdOffset command
func OffsetBy(dx, dy float64) Command {
	return Command{Kind: CmdOffset, DX: dx, DY: dy}
}

// InterruptBy builds a CmdInterrupt command
func InterruptBy(src Source) Command {
	return Command{Kind: CmdInterrupt, Source: src}
}
