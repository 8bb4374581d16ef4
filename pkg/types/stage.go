package types

import "time"

// Pipeline stage identifiers, in the execution order of the engine.
const (
	StageFlightTime = "flight_time"
	StageDutyTime   = "duty_time"
	StagePerDiem    = "per_diem"
	StagePremiumPay = "premium_pay"
	StageGuarantee  = "guarantee"
	StageCompliance = "compliance"
	StageClaims     = "claims"
)

// OrderedStages 按固定顺序列出核心计算阶段（不含 claims 分支）
var OrderedStages = []string{
	StageFlightTime,
	StageDutyTime,
	StagePerDiem,
	StagePremiumPay,
	StageGuarantee,
	StageCompliance,
}

// StageStatus is the outcome classification of a single stage invocation.
type StageStatus string

const (
	StageStatusRunning StageStatus = "running"
	StageStatusSuccess StageStatus = "success"
	StageStatusFailed  StageStatus = "failed"
	StageStatusTimeout StageStatus = "timeout"
)

// StageResult captures one stage invocation from start to finish.
type StageResult struct {
	Stage       string        `json:"stage"`
	ExecutionID string        `json:"execution_id"`
	Status      StageStatus   `json:"status"`
	Output      StageOutput   `json:"output,omitempty"`
	Error       string        `json:"error,omitempty"`
	ErrorCode   string        `json:"error_code,omitempty"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Duration    time.Duration `json:"duration"`
}

// NewStageResult starts tracking a stage invocation.
func NewStageResult(stage, executionID string) *StageResult {
	return &StageResult{
		Stage:       stage,
		ExecutionID: executionID,
		Status:      StageStatusRunning,
		StartTime:   time.Now().UTC(),
	}
}

// Succeed records a successful invocation with its output.
func (r *StageResult) Succeed(out StageOutput) *StageResult {
	r.Status = StageStatusSuccess
	r.Output = out
	return r.Finish()
}

// Fail records a failed invocation.
func (r *StageResult) Fail(code, message string) *StageResult {
	r.Status = StageStatusFailed
	r.ErrorCode = code
	r.Error = message
	return r.Finish()
}

// Timeout records an invocation that exceeded its deadline.
func (r *StageResult) Timeout(message string) *StageResult {
	r.Status = StageStatusTimeout
	r.ErrorCode = "TIMEOUT_ERROR"
	r.Error = message
	return r.Finish()
}

// Finish stamps the end time and duration.
func (r *StageResult) Finish() *StageResult {
	r.EndTime = time.Now().UTC()
	r.Duration = r.EndTime.Sub(r.StartTime)
	return r
}

// IsSuccess reports whether the invocation produced an output.
func (r *StageResult) IsSuccess() bool {
	return r.Status == StageStatusSuccess
}
