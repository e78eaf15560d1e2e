// Package status renders controller snapshots as human-readable text and
// fans them out to the surfaces that show it.
package status

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"markestedt/orbit/config"
	"markestedt/orbit/motion"
)

// Labels are the display names of the hotkeys mentioned in status text
type Labels struct {
	Start    string
	Stop     string
	Increase string
	Decrease string
}

// LabelsFrom builds display labels from the configured hotkeys
func LabelsFrom(h config.HotkeysConfig) Labels {
	return Labels{
		Start:    KeyLabel(h.Start),
		Stop:     KeyLabel(h.Stop),
		Increase: KeyLabel(h.Increase),
		Decrease: KeyLabel(h.Decrease),
	}
}

var keyLabels = map[string]string{
	"insert":   "INS",
	"ins":      "INS",
	"delete":   "DEL",
	"del":      "DEL",
	"pageup":   "PgUp",
	"pgup":     "PgUp",
	"pagedown": "PgDn",
	"pgdn":     "PgDn",
	"esc":      "Esc",
	"escape":   "Esc",
	"ctrl":     "Ctrl",
	"control":  "Ctrl",
	"shift":    "Shift",
	"alt":      "Alt",
	"win":      "Win",
	"windows":  "Win",
}

// KeyLabel turns a hotkey combo such as "ctrl+pageup" into "Ctrl+PgUp"
func KeyLabel(combo string) string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if label, ok := keyLabels[p]; ok {
			parts[i] = label
			continue
		}
		if len(p) <= 3 {
			parts[i] = strings.ToUpper(p)
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "+")
}

// Greeting is the status line shown before any command is issued
func Greeting(l Labels) string {
	return fmt.Sprintf("Press '%s' to start, '%s' to stop. Adjust with %s and %s. Move with Arrow Keys.",
		l.Start, l.Stop, l.Increase, l.Decrease)
}

// DebugLine renders the geometry overlay text
func DebugLine(g motion.Geometry, l Labels) string {
	return fmt.Sprintf("(Press '%s' to Reset) | X Offset: %g, Y Offset: %g, Radius: %d, Step Angle: %d | (Move Mouse to Stop)",
		l.Stop, g.Offset.X, g.Offset.Y, g.Radius, g.StepAngle)
}

// View is what a surface displays
type View struct {
	State  motion.State
	Status string
	Debug  string
}

// Sink displays views
type Sink interface {
	Update(View)
}

// Reporter projects controller snapshots into views and delivers them to
// every sink in order. It holds no state beyond the last rendered view.
type Reporter struct {
	mu       sync.Mutex
	labels   Labels
	sinks    []Sink
	last     View
	rendered bool
}

// NewReporter creates a reporter delivering to sinks
func NewReporter(labels Labels, sinks ...Sink) *Reporter {
	return &Reporter{labels: labels, sinks: sinks}
}

// AddSink registers another sink. A sink added after the first view was
// rendered receives that view immediately.
func (r *Reporter) AddSink(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sinks = append(r.sinks, s)
	if r.rendered {
		s.Update(r.last)
	}
}

// Greet shows the initial help text
func (r *Reporter) Greet(s motion.Snapshot) {
	s.Message = Greeting(r.labels)
	r.Notify(s)
}

// Notify implements motion.Notifier. An empty message keeps the previous
// status line.
func (r *Reporter) Notify(s motion.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := View{
		State:  s.State,
		Status: s.Message,
		Debug:  DebugLine(s.Geometry, r.labels),
	}
	if v.Status == "" {
		v.Status = r.last.Status
	}
	r.last = v
	r.rendered = true

	for _, sink := range r.sinks {
		sink.Update(v)
	}
}

// LogSink writes views to a structured logger
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink logging through logger
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Update logs the status line at info and the overlay text at debug
func (s *LogSink) Update(v View) {
	s.logger.Info("Status", "state", v.State.String(), "message", v.Status)
	s.logger.Debug("Overlay", "text", v.Debug)
}
