package systray

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"markestedt/orbit/motion"
	"markestedt/orbit/status"
)

func TestUpdateBeforeReadyIsDeferred(t *testing.T) {
	m := NewSystrayManager(status.Labels{Start: "INS", Stop: "DEL"}, nil)

	m.Update(status.View{State: motion.Idle, Status: "first"})
	m.Update(status.View{State: motion.Active, Status: "second"})

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.False(t, m.ready)
	if assert.NotNil(t, m.pending) {
		assert.Equal(t, "second", m.pending.Status)
	}
}

func TestSendDropsWhenFull(t *testing.T) {
	m := NewSystrayManager(status.Labels{}, nil)
	for i := 0; i < cap(m.commands)+3; i++ {
		m.send(motion.Command{Kind: motion.CmdStart})
	}
	assert.Len(t, m.commands, cap(m.commands))

	cmd := <-m.Commands()
	assert.Equal(t, motion.CmdStart, cmd.Kind)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", maxTooltip))

	long := strings.Repeat("x", 200)
	assert.Len(t, truncate(long, maxTooltip), maxTooltip)
}

func TestTrayShowsGreetingWhateverTheSinkOrder(t *testing.T) {
	labels := status.Labels{Start: "INS", Stop: "DEL", Increase: "PgUp", Decrease: "PgDn"}
	snap := motion.Snapshot{Geometry: motion.DefaultGeometry()}

	before := NewSystrayManager(labels, nil)
	r := status.NewReporter(labels, before)
	r.Greet(snap)

	after := NewSystrayManager(labels, nil)
	r.AddSink(after)

	for _, m := range []*SystrayManager{before, after} {
		m.mu.Lock()
		if assert.NotNil(t, m.pending) {
			assert.Equal(t, status.Greeting(labels), m.pending.Status)
			assert.Equal(t, status.DebugLine(snap.Geometry, labels), m.pending.Debug)
		}
		m.mu.Unlock()
	}
}
