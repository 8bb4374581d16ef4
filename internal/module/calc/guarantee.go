package calc

import (
	"context"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

// Guarantee applies the contractual minimum paid-hours floor: paid hours are
// the greater of actual credit hours and the monthly guarantee for the crew
// member's role and type.
type Guarantee struct{}

// NewGuarantee 创建保底薪酬计算模块
func NewGuarantee() *Guarantee {
	return &Guarantee{}
}

func (m *Guarantee) Stage() string {
	return types.StageGuarantee
}

func (m *Guarantee) Calculate(ctx context.Context, req *module.Request) (types.StageOutput, error) {
	if req.CrewMember == nil {
		return nil, module.NewDataError(m.Stage(), "crew member profile is required", nil)
	}

	// An empty upstream slot degrades to zero actual hours; the guarantee
	// then carries the full pay floor.
	var actual float64
	if req.FlightTime != nil {
		actual = req.FlightTime.TotalCreditTime
	}

	guarantee := GuaranteeHoursFor(req.CrewMember)
	paid := actual
	if guarantee > paid {
		paid = guarantee
	}

	return &types.GuaranteeResult{
		GuaranteeHours:   guarantee,
		ActualHours:      actual,
		PaidHours:        paid,
		GuaranteePay:     round2(paid * req.CrewMember.HourlyRate),
		GuaranteeApplied: guarantee > actual,
		ConfidenceScore:  1.0,
	}, nil
}
