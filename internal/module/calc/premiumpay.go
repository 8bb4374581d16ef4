package calc

import (
	"context"
	"fmt"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

// Premium component types.
const (
	PremiumHoliday       = "holiday"
	PremiumRedeye        = "redeye"
	PremiumInternational = "international"
	PremiumDeadhead      = "deadhead"
)

// PremiumPay computes premium components above base flight pay: holiday
// uplift, red-eye per-segment premiums, international percentage, and
// deadhead pay for segments the flight time module excluded from credit.
type PremiumPay struct{}

// NewPremiumPay 创建附加薪酬计算模块
func NewPremiumPay() *PremiumPay {
	return &PremiumPay{}
}

func (m *PremiumPay) Stage() string {
	return types.StagePremiumPay
}

func (m *PremiumPay) Calculate(ctx context.Context, req *module.Request) (types.StageOutput, error) {
	if req.CrewMember == nil {
		return nil, module.NewDataError(m.Stage(), "crew member profile is required", nil)
	}

	result := &types.PremiumPayResult{ConfidenceScore: 1.0}
	if len(req.Assignments) == 0 {
		return result, nil
	}

	rate := req.CrewMember.HourlyRate
	role := req.CrewMember.Role

	for i := range req.Assignments {
		f := &req.Assignments[i]
		block, _ := segmentBlockTime(f)

		if f.IsDeadhead {
			// Deadhead pays a reduced hourly rate; credited here because the
			// flight time module skips these segments entirely.
			if block > 0 {
				m.addItem(result, PremiumDeadhead, f.FlightNumber,
					fmt.Sprintf("deadhead %.2fh at %.0f%% rate", block, DeadheadPayFactor*100),
					round2(DeadheadPayFactor*rate*block))
			}
			continue
		}

		if IsHoliday(f.FlightDate) && block > 0 {
			m.addItem(result, PremiumHoliday, f.FlightNumber,
				fmt.Sprintf("holiday uplift on %s", f.FlightDate),
				round2(HolidayPremiumFactor*rate*block))
		}
		if f.IsRedeye {
			m.addItem(result, PremiumRedeye, f.FlightNumber,
				"red-eye segment premium", RedeyePremiumFor(role))
		}
		if f.IsInternational && block > 0 {
			m.addItem(result, PremiumInternational, f.FlightNumber,
				fmt.Sprintf("international premium at %.0f%%", InternationalPremiumFactor*100),
				round2(InternationalPremiumFactor*rate*block))
		}
	}

	return result, nil
}

func (m *PremiumPay) addItem(result *types.PremiumPayResult, kind, flightNumber, description string, amount float64) {
	result.Items = append(result.Items, types.PremiumItem{
		Type:         kind,
		FlightNumber: flightNumber,
		Description:  description,
		Amount:       amount,
	})
	result.TotalPremiumPay = round2(result.TotalPremiumPay + amount)
}
