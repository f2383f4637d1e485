package auditlog

import (
	"bytes"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecorderEvictsOldest(t *testing.T) {
	rec := NewMemoryRecorder(2)
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rec.Record(NewEvent(at, "add_tool", "a", ""))
	rec.Record(NewEvent(at, "add_tool", "b", ""))
	rec.Record(NewEvent(at, "run_audit", "", "1 vulnerabilities"))

	events := rec.Events()
	require.Len(t, events, 2)
	require.Equal(t, "b", events[0].Subject)
	require.Equal(t, []string{"add_tool", "run_audit"}, rec.Actions())
}

func TestNewEventHasUniqueIDs(t *testing.T) {
	at := time.Now()
	a := NewEvent(at, "x", "", "")
	b := NewEvent(at, "x", "", "")
	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, at, a.Timestamp)
}

func TestLogRecorderWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	rec := NewLogRecorder(log.NewLogger(&buf, log.OutputJSONOption()))

	rec.Record(NewEvent(time.Now(), "toggle_mitigation", "M-01", "implemented"))

	out := buf.String()
	require.Contains(t, out, "toggle_mitigation")
	require.Contains(t, out, `"subject":"M-01"`)
	require.Contains(t, out, `"module":"audit"`)
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewMemoryRecorder(0), NewMemoryRecorder(0)
	Multi{a, b, Discard{}}.Record(NewEvent(time.Now(), "x", "", ""))
	require.Len(t, a.Events(), 1)
	require.Len(t, b.Events(), 1)
}
