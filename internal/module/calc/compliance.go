package calc

import (
	"context"
	"fmt"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

// Compliance cross-checks every upstream result against regulatory and
// contract rules and produces the routing verdict for the run.
type Compliance struct{}

// NewCompliance 创建合规校验模块
func NewCompliance() *Compliance {
	return &Compliance{}
}

func (m *Compliance) Stage() string {
	return types.StageCompliance
}

func (m *Compliance) Calculate(ctx context.Context, req *module.Request) (types.StageOutput, error) {
	result := &types.ComplianceResult{Verdict: types.ComplianceVerdictPass}

	// Regulatory findings from the duty time stage are hard violations.
	if req.DutyTime != nil {
		for _, v := range req.DutyTime.Violations {
			result.Violations = append(result.Violations,
				fmt.Sprintf("duty time: %s", v.Description))
		}
		if req.DutyTime.FatigueRisk == "high" {
			result.Warnings = append(result.Warnings, "fatigue risk assessed as high")
		}
	} else {
		result.Warnings = append(result.Warnings, "duty time result missing, regulatory checks incomplete")
	}

	if req.FlightTime != nil {
		for _, d := range req.FlightTime.Discrepancies {
			result.Warnings = append(result.Warnings, fmt.Sprintf("flight time: %s", d))
		}
	} else {
		result.Warnings = append(result.Warnings, "flight time result missing, pay totals are best effort")
	}

	if req.Guarantee == nil {
		result.Warnings = append(result.Warnings, "guarantee result missing, pay floor not verified")
	} else if req.FlightTime != nil && req.Guarantee.ActualHours != req.FlightTime.TotalCreditTime {
		result.Violations = append(result.Violations,
			fmt.Sprintf("guarantee actual hours %.2f disagree with flight time credit %.2f",
				req.Guarantee.ActualHours, req.FlightTime.TotalCreditTime))
	}

	if req.PerDiem == nil {
		result.Warnings = append(result.Warnings, "per diem result missing")
	}
	if req.PremiumPay == nil {
		result.Warnings = append(result.Warnings, "premium pay result missing")
	}

	switch {
	case len(result.Violations) > 0:
		result.Verdict = types.ComplianceVerdictFail
		result.RequiresReview = true
	case len(result.Warnings) > 0:
		result.Verdict = types.ComplianceVerdictWarn
	}

	result.ConfidenceScore = clampConfidence(
		1.0 - 0.05*float64(len(result.Warnings)) - 0.15*float64(len(result.Violations)))
	if result.ConfidenceScore < 0.3 {
		result.ConfidenceScore = 0.3
	}
	return result, nil
}
