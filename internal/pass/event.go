package pass

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// EventKind categorizes diagnostic events.
type EventKind string

const (
	EventSkip         EventKind = "skip"
	EventRename       EventKind = "rename"
	EventPluginLoaded EventKind = "plugin_loaded"
)

// Event is one diagnostic record emitted by a pass or the registry.
type Event struct {
	Kind     EventKind  `json:"kind"`
	Pass     string     `json:"pass,omitempty"`
	Plugin   string     `json:"plugin,omitempty"`
	Function string     `json:"function,omitempty"` // name before the decision
	Reason   SkipReason `json:"reason,omitempty"`
	Digest   string     `json:"digest,omitempty"` // new name on rename
}

// Lines renders the event as the classic human-readable diagnostic lines.
// The text is advisory; callers must not parse it.
func (e Event) Lines() []string {
	switch e.Kind {
	case EventSkip:
		return []string{fmt.Sprintf("Skipping %s: %s", e.Reason, e.Function)}
	case EventRename:
		return []string{
			"Original Function Name: " + e.Function,
			"MD5 Hash: " + e.Digest,
		}
	case EventPluginLoaded:
		return []string{e.Plugin + " plugin loaded successfully."}
	default:
		return nil
	}
}

// Recorder receives diagnostic events.
type Recorder interface {
	Record(Event)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(Event)

// Record calls f(e).
func (f RecorderFunc) Record(e Event) { f(e) }

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) Record(Event) {}

// TextRecorder writes Event.Lines to W, one per line.
// Write errors are ignored: diagnostics never fail a run.
type TextRecorder struct {
	mu sync.Mutex
	W  io.Writer
}

// NewTextRecorder creates a TextRecorder writing to w.
func NewTextRecorder(w io.Writer) *TextRecorder {
	return &TextRecorder{W: w}
}

func (r *TextRecorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range e.Lines() {
		_, _ = fmt.Fprintln(r.W, line)
	}
}

// SlogRecorder emits each event as a structured log record.
// Skips and renames log at debug level; plugin loads at info.
type SlogRecorder struct {
	Logger *slog.Logger
}

func (r SlogRecorder) Record(e Event) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch e.Kind {
	case EventSkip:
		logger.Debug("skipping function", "pass", e.Pass, "function", e.Function, "reason", string(e.Reason))
	case EventRename:
		logger.Debug("renamed function", "pass", e.Pass, "function", e.Function, "digest", e.Digest)
	case EventPluginLoaded:
		logger.Info("plugin loaded", "plugin", e.Plugin)
	}
}

// Collector keeps events in memory.
//
// Thread-safety: Collector is safe for concurrent use via internal mutex.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) Record(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of the recorded events in arrival order.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

// Reset drops all recorded events.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

// Multi fans each event out to every non-nil recorder in order.
func Multi(recs ...Recorder) Recorder {
	var out multiRecorder
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

type multiRecorder []Recorder

func (m multiRecorder) Record(e Event) {
	for _, r := range m {
		r.Record(e)
	}
}
