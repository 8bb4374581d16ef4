// Package pipeline owns the fixed stage graph of the pay calculation run:
// stage sequencing, fault isolation, routing, and finalization.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yqhp/pay-engine/internal/audit"
	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/logger"
	"yqhp/pay-engine/pkg/types"
)

// DefaultStageTimeout bounds a single module invocation.
const DefaultStageTimeout = 30 * time.Second

// StageExecutor wraps one calculation module invocation with timing, a
// bounded timeout, fault isolation, and exactly one audit entry. A stage
// failure never propagates past the executor.
type StageExecutor struct {
	registry *module.Registry
	auditor  *audit.Manager
	timeout  time.Duration
}

// NewStageExecutor 创建阶段执行器
func NewStageExecutor(registry *module.Registry, auditor *audit.Manager, timeout time.Duration) *StageExecutor {
	if timeout <= 0 {
		timeout = DefaultStageTimeout
	}
	return &StageExecutor{
		registry: registry,
		auditor:  auditor,
		timeout:  timeout,
	}
}

// Execute invokes the module registered for stage with a request built from
// the current state. It always returns a finished StageResult; failures are
// recorded on the state (error log, empty slot) and never returned as
// errors to the engine.
func (e *StageExecutor) Execute(ctx context.Context, stage string, st *types.ExecutionState) *types.StageResult {
	result := types.NewStageResult(stage, st.ExecutionID)

	m, err := e.registry.GetOrError(stage)
	if err != nil {
		e.recordFailure(st, result.Fail(string(module.CodeOf(err)), err.Error()))
		e.audit(st, result)
		return result
	}

	req := buildRequest(st)

	var out types.StageOutput
	runErr := executeWithTimeout(ctx, e.timeout, func(ctx context.Context) error {
		var calcErr error
		out, calcErr = m.Calculate(ctx, req)
		return calcErr
	})

	switch {
	case errors.Is(runErr, context.DeadlineExceeded):
		timeoutErr := module.NewTimeoutError(stage, e.timeout)
		e.recordFailure(st, result.Timeout(timeoutErr.Message))
	case errors.Is(runErr, context.Canceled):
		// Same code the engine uses for its pre-stage cancellation check.
		e.recordFailure(st, result.Fail("CANCELLED", runErr.Error()))
	case runErr != nil:
		e.recordFailure(st, result.Fail(string(module.CodeOf(runErr)), runErr.Error()))
	case out == nil:
		e.recordFailure(st, result.Fail(string(module.ErrCodeData), "module returned no output"))
	default:
		result.Succeed(out)
		if err := assignOutput(st, stage, out); err != nil {
			// Misregistered module: output type does not match the slot.
			result.Status = types.StageStatusFailed
			result.Output = nil
			result.ErrorCode = string(module.ErrCodeData)
			result.Error = err.Error()
			e.recordFailure(st, result)
		}
	}

	e.audit(st, result)
	return result
}

func (e *StageExecutor) recordFailure(st *types.ExecutionState, result *types.StageResult) {
	logger.Warn("stage %s failed for execution %s: %s", result.Stage, st.ExecutionID, result.Error)
	st.AddError(result.Stage, result.ErrorCode, result.Error)
}

func (e *StageExecutor) audit(st *types.ExecutionState, result *types.StageResult) {
	if e.auditor == nil {
		return
	}
	crewID := ""
	if st.CrewMember != nil {
		crewID = st.CrewMember.ID
	}
	e.auditor.Record(audit.Entry{
		Stage:         result.Stage,
		ExecutionID:   st.ExecutionID,
		CrewMemberID:  crewID,
		InputSummary:  summarizeInput(st),
		OutputSummary: summarizeOutput(result),
		DurationMS:    result.Duration.Milliseconds(),
		Success:       result.IsSuccess(),
		Error:         result.Error,
		Timestamp:     result.EndTime,
	})
}

// buildRequest snapshots the state fields a module may read.
func buildRequest(st *types.ExecutionState) *module.Request {
	return &module.Request{
		ExecutionID:    st.ExecutionID,
		CrewMember:     st.CrewMember,
		Assignments:    st.Assignments,
		PayPeriodStart: st.PayPeriodStart,
		PayPeriodEnd:   st.PayPeriodEnd,
		FlightTime:     st.FlightTime,
		DutyTime:       st.DutyTime,
		PerDiem:        st.PerDiem,
		PremiumPay:     st.PremiumPay,
		Guarantee:      st.Guarantee,
		Compliance:     st.Compliance,
		PendingClaims:  st.PendingClaims,
	}
}

// assignOutput writes a stage output into its designated slot. Each slot is
// written at most once per run because the engine never repeats a stage.
func assignOutput(st *types.ExecutionState, stage string, out types.StageOutput) error {
	switch stage {
	case types.StageFlightTime:
		if r, ok := out.(*types.FlightTimeResult); ok {
			st.FlightTime = r
			return nil
		}
	case types.StageDutyTime:
		if r, ok := out.(*types.DutyTimeResult); ok {
			st.DutyTime = r
			return nil
		}
	case types.StagePerDiem:
		if r, ok := out.(*types.PerDiemResult); ok {
			st.PerDiem = r
			return nil
		}
	case types.StagePremiumPay:
		if r, ok := out.(*types.PremiumPayResult); ok {
			st.PremiumPay = r
			return nil
		}
	case types.StageGuarantee:
		if r, ok := out.(*types.GuaranteeResult); ok {
			st.Guarantee = r
			return nil
		}
	case types.StageCompliance:
		if r, ok := out.(*types.ComplianceResult); ok {
			st.Compliance = r
			return nil
		}
	case types.StageClaims:
		if r, ok := out.(*types.ClaimsResult); ok {
			st.Claims = r
			return nil
		}
	default:
		return fmt.Errorf("unknown stage: %s", stage)
	}
	return fmt.Errorf("stage %s produced output of type %T", stage, out)
}

func summarizeInput(st *types.ExecutionState) string {
	employeeID := ""
	if st.CrewMember != nil {
		employeeID = st.CrewMember.EmployeeID
	}
	return fmt.Sprintf("employee=%s assignments=%d period=%s..%s",
		employeeID, len(st.Assignments), st.PayPeriodStart, st.PayPeriodEnd)
}

func summarizeOutput(result *types.StageResult) string {
	if !result.IsSuccess() {
		return string(result.Status)
	}
	return fmt.Sprintf("confidence=%.2f", result.Output.Confidence())
}

// executeWithTimeout 带超时执行函数
func executeWithTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return context.DeadlineExceeded
		}
		return ctx.Err()
	}
}
