package motion

import "sync"

// Termination is a one-shot, process-wide shutdown signal. Once set it is
// never cleared.
type Termination struct {
	once sync.Once
	done chan struct{}
}

// NewTermination creates an unset termination flag
func NewTermination() *Termination {
	return &Termination{done: make(chan struct{})}
}

// Set raises the flag. It reports true only for the call that raised it.
func (t *Termination) Set() bool {
	set := false
	t.once.Do(func() {
		close(t.done)
		set = true
	})
	return set
}

// IsSet reports whether the flag has been raised
func (t *Termination) IsSet() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the flag is raised
func (t *Termination) Done() <-chan struct{} {
	return t.done
}
