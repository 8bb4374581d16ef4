package pipeline

import (
	"context"
	"fmt"
	"time"

	"yqhp/pay-engine/internal/audit"
	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/logger"
	"yqhp/pay-engine/pkg/types"
)

const dateLayout = "2006-01-02"

// route is the outcome of the post-compliance decision table.
type route string

const (
	routeNeedsReview route = "needs_review"
	routeClaims      route = "claims"
	routeFinalize    route = "finalize"
)

// Engine owns the fixed stage graph and drives one run at a time per
// ExecutionState. Engines are safe for concurrent Run calls: runs share
// only the registry, the claim source, and the audit manager.
type Engine struct {
	executor  *StageExecutor
	claims    ClaimSource
	auditor   *audit.Manager
	finalizer *Finalizer
}

// NewEngine 创建管道引擎
func NewEngine(registry *module.Registry, claims ClaimSource, auditor *audit.Manager, stageTimeout time.Duration) *Engine {
	return &Engine{
		executor:  NewStageExecutor(registry, auditor, stageTimeout),
		claims:    claims,
		auditor:   auditor,
		finalizer: NewFinalizer(),
	}
}

// Run executes the pipeline for one crew member and pay period and returns
// a terminal execution state. Malformed period dates are rejected before
// any state is created.
func (e *Engine) Run(ctx context.Context, crew *types.CrewMemberProfile, assignments []types.FlightAssignment, periodStart, periodEnd string) (*types.ExecutionState, error) {
	if crew == nil {
		return nil, fmt.Errorf("crew member profile is required")
	}
	start, err := time.Parse(dateLayout, periodStart)
	if err != nil {
		return nil, fmt.Errorf("invalid pay period start %q: %w", periodStart, err)
	}
	end, err := time.Parse(dateLayout, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid pay period end %q: %w", periodEnd, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("pay period end %s precedes start %s", periodEnd, periodStart)
	}

	st := types.NewExecutionState(crew, assignments, periodStart, periodEnd)
	logger.Info("starting pay run %s for employee %s (%s..%s)",
		st.ExecutionID, crew.EmployeeID, periodStart, periodEnd)

	for _, stage := range types.OrderedStages {
		if err := ctx.Err(); err != nil {
			st.AddError(stage, "CANCELLED", fmt.Sprintf("run cancelled before stage: %v", err))
			st.FlagForReview("run cancelled before completion")
			e.finalizer.Finalize(st, true)
			return st, nil
		}

		result := e.executor.Execute(ctx, stage, st)
		e.afterStage(st, stage, result)
	}

	// Pending claims are looked up once, at the branch point.
	hasPending := e.loadPendingClaims(ctx, st)

	complianceFailed := st.Compliance != nil && st.Compliance.Verdict == types.ComplianceVerdictFail
	decision := routeAfterCompliance(st.RequiresHumanReview, complianceFailed, hasPending)
	logger.Debug("run %s routed to %s", st.ExecutionID, decision)

	needsReview := decision == routeNeedsReview
	if decision == routeClaims {
		if err := ctx.Err(); err != nil {
			st.AddError(types.StageClaims, "CANCELLED", fmt.Sprintf("run cancelled before stage: %v", err))
			st.FlagForReview("run cancelled before completion")
			needsReview = true
		} else {
			result := e.executor.Execute(ctx, types.StageClaims, st)
			e.afterStage(st, types.StageClaims, result)
			needsReview = st.RequiresHumanReview
		}
	}

	e.finalizer.Finalize(st, needsReview || st.RequiresHumanReview)
	logger.Info("pay run %s finished with status %s", st.ExecutionID, st.Status)
	return st, nil
}

// afterStage applies stage-specific state updates that belong to the engine
// rather than the module: review flags and run-level warnings.
func (e *Engine) afterStage(st *types.ExecutionState, stage string, result *types.StageResult) {
	switch stage {
	case types.StageDutyTime:
		if st.DutyTime != nil && len(st.DutyTime.Violations) > 0 {
			st.AddWarning(fmt.Sprintf("duty time violations detected: %d", len(st.DutyTime.Violations)))
		}
	case types.StageCompliance:
		if st.Compliance != nil && st.Compliance.RequiresReview {
			st.FlagForReview("compliance validation requires review")
		}
		if !result.IsSuccess() {
			// A failed compliance check cannot clear the run.
			st.FlagForReview("compliance stage failed")
		}
	case types.StageClaims:
		if st.Claims != nil && st.Claims.EscalatedCount > 0 {
			st.AddWarning(fmt.Sprintf("claims escalated to human review: %d", st.Claims.EscalatedCount))
			st.FlagForReview("escalated claims require review")
		}
	}
}

func (e *Engine) loadPendingClaims(ctx context.Context, st *types.ExecutionState) bool {
	if e.claims == nil || st.CrewMember == nil {
		return false
	}
	pending, err := e.claims.PendingClaims(ctx, st.CrewMember.EmployeeID)
	if err != nil {
		logger.Warn("claim lookup failed for run %s: %v", st.ExecutionID, err)
		st.AddWarning(fmt.Sprintf("claim lookup failed: %v", err))
		return false
	}
	st.PendingClaims = pending
	return len(pending) > 0
}

// routeAfterCompliance is the branch decision table. Review dominates, then
// the compliance verdict, then pending claims.
func routeAfterCompliance(requiresReview, complianceFailed, hasPendingClaims bool) route {
	switch {
	case requiresReview:
		return routeNeedsReview
	case complianceFailed:
		return routeNeedsReview
	case hasPendingClaims:
		return routeClaims
	default:
		return routeFinalize
	}
}
