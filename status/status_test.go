package status

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/orbit/config"
	"markestedt/orbit/motion"
)

type recordingSink struct {
	views []View
}

func (s *recordingSink) Update(v View) {
	s.views = append(s.views, v)
}

func defaultLabels() Labels {
	return LabelsFrom(config.HotkeysConfig{
		Start:    "insert",
		Stop:     "delete",
		Increase: "pageup",
		Decrease: "pagedown",
	})
}

func TestKeyLabel(t *testing.T) {
	assert.Equal(t, "INS", KeyLabel("insert"))
	assert.Equal(t, "DEL", KeyLabel("Delete"))
	assert.Equal(t, "Ctrl+PgUp", KeyLabel("ctrl+pageup"))
	assert.Equal(t, "F9", KeyLabel("f9"))
	assert.Equal(t, "Space", KeyLabel("space"))
}

func TestGreeting(t *testing.T) {
	assert.Equal(t,
		"Press 'INS' to start, 'DEL' to stop. Adjust with PgUp and PgDn. Move with Arrow Keys.",
		Greeting(defaultLabels()))
}

func TestDebugLine(t *testing.T) {
	g := motion.Geometry{Radius: 110, StepAngle: 45, Offset: motion.Offset{X: -0.2, Y: 1.4}}
	assert.Equal(t,
		"(Press 'DEL' to Reset) | X Offset: -0.2, Y Offset: 1.4, Radius: 110, Step Angle: 45 | (Move Mouse to Stop)",
		DebugLine(g, defaultLabels()))
}

func TestReporterFansOutAndKeepsStatus(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	r := NewReporter(defaultLabels(), a)
	r.AddSink(b)

	r.Greet(motion.Snapshot{Geometry: motion.DefaultGeometry()})
	r.Notify(motion.Snapshot{State: motion.Active, Geometry: motion.DefaultGeometry(), Message: "Circular movement started."})
	r.Notify(motion.Snapshot{State: motion.Active, Geometry: motion.DefaultGeometry()})

	require.Len(t, a.views, 3)
	assert.Equal(t, a.views, b.views)
	assert.Equal(t, Greeting(defaultLabels()), a.views[0].Status)
	assert.Equal(t, "Circular movement started.", a.views[2].Status, "empty message keeps status line")
	assert.Equal(t, motion.Active, a.views[2].State)
}

func TestReporterReplaysLastViewToLateSink(t *testing.T) {
	early, late := &recordingSink{}, &recordingSink{}
	r := NewReporter(defaultLabels(), early)

	r.Greet(motion.Snapshot{Geometry: motion.DefaultGeometry()})
	r.AddSink(late)

	require.Len(t, late.views, 1)
	assert.Equal(t, early.views[0], late.views[0])
	assert.Equal(t, Greeting(defaultLabels()), late.views[0].Status)
	assert.Equal(t, DebugLine(motion.DefaultGeometry(), defaultLabels()), late.views[0].Debug)

	r.Notify(motion.Snapshot{State: motion.Active, Geometry: motion.DefaultGeometry(), Message: "Circular movement started."})
	assert.Len(t, late.views, 2)
}

func TestReporterAddSinkBeforeFirstViewIsQuiet(t *testing.T) {
	s := &recordingSink{}
	r := NewReporter(defaultLabels())
	r.AddSink(s)
	assert.Empty(t, s.views)
}

func TestReporterImplementsNotifier(t *testing.T) {
	var _ motion.Notifier = NewReporter(Labels{})
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewLogSink(logger).Update(View{State: motion.Idle, Status: "Circular movement stopped.", Debug: "overlay"})
	assert.Contains(t, buf.String(), "state=idle")
	assert.Contains(t, buf.String(), `message="Circular movement stopped."`)
	assert.Contains(t, buf.String(), "text=overlay")
}
