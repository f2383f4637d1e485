// Package auditlog records the commands applied to an assessment so the
// sequence of changes can be replayed or reviewed.
package auditlog

import (
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/google/uuid"
)

// Event is one recorded action
type Event struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Action    string    `json:"action" yaml:"action"`
	Subject   string    `json:"subject" yaml:"subject"`
	Detail    string    `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// NewEvent stamps an event with a fresh id and the given time
func NewEvent(at time.Time, action, subject, detail string) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: at,
		Action:    action,
		Subject:   subject,
		Detail:    detail,
	}
}

// Recorder receives audit events
type Recorder interface {
	Record(e Event)
}

// DefaultLimit is the number of events a MemoryRecorder keeps by default
const DefaultLimit = 1000

// MemoryRecorder keeps the most recent events in order
type MemoryRecorder struct {
	mu     sync.Mutex
	limit  int
	events []Event
}

// NewMemoryRecorder keeps at most limit events; limit <= 0 selects DefaultLimit
func NewMemoryRecorder(limit int) *MemoryRecorder {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryRecorder{limit: limit}
}

// Record appends e, evicting the oldest event when full
func (m *MemoryRecorder) Record(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, e)
	if over := len(m.events) - m.limit; over > 0 {
		m.events = append([]Event(nil), m.events[over:]...)
	}
}

// Events returns a copy of the recorded events, oldest first
func (m *MemoryRecorder) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Actions lists the action of every recorded event, oldest first
func (m *MemoryRecorder) Actions() []string {
	events := m.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Action
	}
	return out
}

// LogRecorder forwards events to a structured logger
type LogRecorder struct {
	logger log.Logger
}

// NewLogRecorder creates a recorder writing to logger
func NewLogRecorder(logger log.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.With("module", "audit")}
}

// Record logs the event at info level
func (r *LogRecorder) Record(e Event) {
	r.logger.Info(e.Action,
		"event_id", e.ID,
		"subject", e.Subject,
		"detail", e.Detail,
	)
}

// Multi fans an event out to several recorders
type Multi []Recorder

// Record forwards e to every recorder in order
func (m Multi) Record(e Event) {
	for _, r := range m {
		r.Record(e)
	}
}

// Discard drops every event
type Discard struct{}

// Record does nothing
func (Discard) Record(Event) {}
