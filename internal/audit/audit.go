// Package audit records one append-only entry per stage invocation. Sinks
// must never block or fail the pipeline: append errors are reported to the
// process logger and otherwise swallowed.
package audit

import "time"

// Entry 是一次阶段调用的审计记录
type Entry struct {
	Stage         string    `json:"stage"`
	ExecutionID   string    `json:"execution_id"`
	CrewMemberID  string    `json:"crew_member_id,omitempty"`
	InputSummary  string    `json:"input_summary,omitempty"`
	OutputSummary string    `json:"output_summary,omitempty"`
	DurationMS    int64     `json:"duration_ms"`
	Success       bool      `json:"success"`
	Error         string    `json:"error,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Sink receives audit entries. Implementations must be safe for concurrent
// Append calls from multiple pipeline runs.
type Sink interface {
	// Name identifies the sink in side-channel error reports.
	Name() string

	// Append records one entry. Errors are reported but never raised into
	// the pipeline.
	Append(entry Entry) error

	// Flush forces buffered entries out.
	Flush() error

	// Close releases sink resources.
	Close() error
}
