// Package module defines the Calculation Module contract: the boundary the
// pipeline engine uses to invoke each per-stage computation.
package module

import (
	"context"

	"yqhp/pay-engine/pkg/types"
)

// Request 是阶段计算的输入视图
// The engine builds one per invocation from the execution state. Modules read
// it and must not mutate it: for a given request, Calculate is deterministic,
// so retries and replays are safe.
type Request struct {
	ExecutionID    string                   `json:"execution_id"`
	CrewMember     *types.CrewMemberProfile `json:"crew_member"`
	Assignments    []types.FlightAssignment `json:"flight_assignments"`
	PayPeriodStart string                   `json:"pay_period_start"`
	PayPeriodEnd   string                   `json:"pay_period_end"`

	// Upstream results available to downstream stages. Nil when the owning
	// stage has not run or failed.
	FlightTime *types.FlightTimeResult `json:"flight_time_result,omitempty"`
	DutyTime   *types.DutyTimeResult   `json:"duty_time_result,omitempty"`
	PerDiem    *types.PerDiemResult    `json:"per_diem_result,omitempty"`
	PremiumPay *types.PremiumPayResult `json:"premium_pay_result,omitempty"`
	Guarantee  *types.GuaranteeResult  `json:"guarantee_result,omitempty"`
	Compliance *types.ComplianceResult `json:"compliance_result,omitempty"`

	PendingClaims []types.Claim `json:"pending_claims,omitempty"`
}

// Module is one stage's calculation behind a uniform boundary.
//
// Calculate returns a typed stage output or an error from the failure
// taxonomy in this package. It must honor ctx cancellation and must not
// write to the request.
type Module interface {
	// Stage returns the stage identifier this module serves.
	Stage() string

	// Calculate 执行一次阶段计算
	Calculate(ctx context.Context, req *Request) (types.StageOutput, error)
}
