package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExecutionStatus 表示一次管道执行的生命周期状态
// Status transitions are forward-only: processing is the sole initial status
// and complete/needs_review/error are terminal.
type ExecutionStatus string

const (
	StatusProcessing  ExecutionStatus = "processing"
	StatusComplete    ExecutionStatus = "complete"
	StatusNeedsReview ExecutionStatus = "needs_review"
	StatusError       ExecutionStatus = "error"
)

// IsTerminal reports whether the status ends a run.
func (s ExecutionStatus) IsTerminal() bool {
	return s == StatusComplete || s == StatusNeedsReview || s == StatusError
}

// StageError is one append-only error log entry.
type StageError struct {
	Stage     string    `json:"stage"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (e StageError) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Stage, e.Code, e.Message)
}

// ExecutionState 是单次薪酬计算执行的全部状态
// Inputs are fixed at creation; each stage output slot is written at most
// once; ErrorLog and Warnings only grow; RequiresHumanReview only rises.
type ExecutionState struct {
	ExecutionID string `json:"execution_id"`

	// Fixed inputs.
	CrewMember     *CrewMemberProfile `json:"crew_member"`
	Assignments    []FlightAssignment `json:"flight_assignments"`
	PendingClaims  []Claim            `json:"pending_claims,omitempty"`
	PayPeriodStart string             `json:"pay_period_start"`
	PayPeriodEnd   string             `json:"pay_period_end"`

	// Stage output slots, nil until the owning stage succeeds.
	FlightTime *FlightTimeResult `json:"flight_time_result,omitempty"`
	DutyTime   *DutyTimeResult   `json:"duty_time_result,omitempty"`
	PerDiem    *PerDiemResult    `json:"per_diem_result,omitempty"`
	PremiumPay *PremiumPayResult `json:"premium_pay_result,omitempty"`
	Guarantee  *GuaranteeResult  `json:"guarantee_result,omitempty"`
	Compliance *ComplianceResult `json:"compliance_result,omitempty"`
	Claims     *ClaimsResult     `json:"claims_result,omitempty"`

	// Derived finals, written by the finalizer only.
	Breakdown *PayBreakdown `json:"pay_breakdown,omitempty"`

	Status              ExecutionStatus `json:"status"`
	RequiresHumanReview bool            `json:"requires_human_review"`
	ReviewReasons       []string        `json:"review_reasons,omitempty"`
	ErrorLog            []StageError    `json:"error_log,omitempty"`
	Warnings            []string        `json:"warnings,omitempty"`

	ProcessingStartedAt   time.Time  `json:"processing_started_at"`
	ProcessingCompletedAt *time.Time `json:"processing_completed_at,omitempty"`
}

// NewExecutionState creates a run in the processing status with a fresh
// execution id and the start timestamp already set.
func NewExecutionState(crew *CrewMemberProfile, assignments []FlightAssignment, periodStart, periodEnd string) *ExecutionState {
	return &ExecutionState{
		ExecutionID:         uuid.New().String(),
		CrewMember:          crew,
		Assignments:         assignments,
		PayPeriodStart:      periodStart,
		PayPeriodEnd:        periodEnd,
		Status:              StatusProcessing,
		ProcessingStartedAt: time.Now().UTC(),
	}
}

// AddError appends to the error log. Entries are never removed or rewritten.
func (s *ExecutionState) AddError(stage, code, message string) {
	s.ErrorLog = append(s.ErrorLog, StageError{
		Stage:     stage,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// AddWarning appends a non-fatal finding.
func (s *ExecutionState) AddWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// FlagForReview raises the human review flag. The flag is monotonic: once
// raised it is never cleared for the remainder of the run.
func (s *ExecutionState) FlagForReview(reason string) {
	s.RequiresHumanReview = true
	if reason != "" {
		s.ReviewReasons = append(s.ReviewReasons, reason)
	}
}

// HasErrors reports whether any stage recorded a failure.
func (s *ExecutionState) HasErrors() bool {
	return len(s.ErrorLog) > 0
}
