package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct {
	appends int
}

func (s *failingSink) Name() string { return "failing" }

func (s *failingSink) Append(entry Entry) error {
	s.appends++
	return errors.New("disk full")
}

func (s *failingSink) Flush() error { return nil }
func (s *failingSink) Close() error { return nil }

func testEntry(stage string, durationMS int64) Entry {
	return Entry{
		Stage:         stage,
		ExecutionID:   "exec-1",
		CrewMemberID:  "cm-1",
		InputSummary:  "employee=P12345 assignments=2 period=2025-11-01..2025-11-15",
		OutputSummary: "confidence=1.00",
		DurationMS:    durationMS,
		Success:       true,
		Timestamp:     time.Now().UTC(),
	}
}

func TestManagerFanOut(t *testing.T) {
	first := NewMemorySink()
	second := NewMemorySink()
	m := NewManager(first)
	m.AddSink(second)

	m.Record(testEntry("flight_time", 12))
	m.Record(testEntry("duty_time", 7))

	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, first.Entries()[0].Stage, second.Entries()[0].Stage)
}

func TestManagerSwallowsSinkFailure(t *testing.T) {
	failing := &failingSink{}
	mem := NewMemorySink()
	m := NewManager(failing, mem)

	// Recording must never surface a sink failure to the caller.
	m.Record(testEntry("per_diem", 3))

	assert.Equal(t, 1, failing.appends)
	assert.Equal(t, 1, mem.Len())
}

func TestManagerStageTimings(t *testing.T) {
	m := NewManager(NewMemorySink())
	for _, ms := range []int64{10, 20, 30, 40} {
		m.Record(testEntry("flight_time", ms))
	}
	m.Record(testEntry("guarantee", 5))

	timings := m.StageTimings()
	require.Len(t, timings, 2)

	byStage := make(map[string]StageTiming)
	for _, timing := range timings {
		byStage[timing.Stage] = timing
	}

	ft := byStage["flight_time"]
	assert.Equal(t, int64(4), ft.Count)
	assert.LessOrEqual(t, ft.MinMS, int64(10))
	assert.GreaterOrEqual(t, ft.MaxMS, int64(40))
	assert.Equal(t, int64(1), byStage["guarantee"].Count)
}

func TestManagerClampsSubMillisecondDurations(t *testing.T) {
	m := NewManager()
	m.Record(testEntry("compliance", 0))

	timings := m.StageTimings()
	require.Len(t, timings, 1)
	assert.GreaterOrEqual(t, timings[0].MinMS, int64(1))
}

func TestMemorySinkByExecution(t *testing.T) {
	sink := NewMemorySink()
	require.NoError(t, sink.Append(testEntry("flight_time", 1)))

	other := testEntry("flight_time", 1)
	other.ExecutionID = "exec-2"
	require.NoError(t, sink.Append(other))

	assert.Len(t, sink.ByExecution("exec-1"), 1)
	assert.Len(t, sink.ByExecution("exec-2"), 1)
	assert.Empty(t, sink.ByExecution("exec-3"))
}
