package calc

import (
	"context"
	"fmt"
	"math"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

// blockVarianceThreshold flags segments where actual block time drifts far
// from schedule.
const blockVarianceThreshold = 0.5

// FlightTime computes block and credit hours for the pay period and the
// resulting flight pay. Deadhead segments are excluded from credit; they are
// paid at a reduced rate by the premium pay module instead.
type FlightTime struct{}

// NewFlightTime 创建飞行小时计算模块
func NewFlightTime() *FlightTime {
	return &FlightTime{}
}

func (m *FlightTime) Stage() string {
	return types.StageFlightTime
}

// Calculate resolves block time per segment, applies the minimum credit, and
// sums flight pay at the crew member's hourly rate.
func (m *FlightTime) Calculate(ctx context.Context, req *module.Request) (types.StageOutput, error) {
	if req.CrewMember == nil {
		return nil, module.NewDataError(m.Stage(), "crew member profile is required", nil)
	}
	if req.CrewMember.HourlyRate < 0 {
		return nil, module.NewDataError(m.Stage(), fmt.Sprintf("invalid hourly rate: %v", req.CrewMember.HourlyRate), nil)
	}

	result := &types.FlightTimeResult{ConfidenceScore: 1.0}
	if len(req.Assignments) == 0 {
		return result, nil
	}

	rate := req.CrewMember.HourlyRate
	for i := range req.Assignments {
		f := &req.Assignments[i]
		if f.IsDeadhead {
			continue
		}

		block, fromActual := segmentBlockTime(f)
		seg := types.SegmentCredit{
			FlightNumber: f.FlightNumber,
			FlightDate:   f.FlightDate,
			BlockTime:    block,
		}

		switch {
		case block <= 0:
			seg.Discrepancy = "no block time data"
			result.Discrepancies = append(result.Discrepancies,
				fmt.Sprintf("flight %s on %s has no usable block time", f.FlightNumber, f.FlightDate))
		case !fromActual:
			seg.Discrepancy = "scheduled block time used"
			result.Discrepancies = append(result.Discrepancies,
				fmt.Sprintf("flight %s on %s missing actual block time, scheduled used", f.FlightNumber, f.FlightDate))
		case f.ScheduledBlockTime > 0 && math.Abs(block-f.ScheduledBlockTime) > blockVarianceThreshold:
			seg.Discrepancy = "block time variance"
			result.Discrepancies = append(result.Discrepancies,
				fmt.Sprintf("flight %s on %s block time %.2fh deviates from scheduled %.2fh",
					f.FlightNumber, f.FlightDate, block, f.ScheduledBlockTime))
		}

		if block > 0 {
			seg.CreditTime = block
			if block < MinCreditPerSegment {
				seg.CreditTime = MinCreditPerSegment
				seg.MinApplied = true
			}
		}

		result.Segments = append(result.Segments, seg)
		result.TotalBlockTime += seg.BlockTime
		result.TotalCreditTime += seg.CreditTime
	}

	result.TotalFlightPay = result.TotalCreditTime * rate
	result.ConfidenceScore = clampConfidence(1.0 - 0.1*float64(len(result.Discrepancies)))
	if result.ConfidenceScore < 0.5 {
		result.ConfidenceScore = 0.5
	}
	return result, nil
}
