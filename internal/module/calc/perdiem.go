package calc

import (
	"context"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

// PerDiem computes layover allowances. Domestic and international layovers
// draw from separate default rates; airports present in the configured rate
// table use their exact rate. The first and last overnight of a trip are
// prorated.
type PerDiem struct {
	opts Options
}

// NewPerDiem 创建日津贴计算模块
func NewPerDiem(opts Options) *PerDiem {
	return &PerDiem{opts: opts.normalized()}
}

func (m *PerDiem) Stage() string {
	return types.StagePerDiem
}

func (m *PerDiem) Calculate(ctx context.Context, req *module.Request) (types.StageOutput, error) {
	result := &types.PerDiemResult{ConfidenceScore: 1.0}

	// Layovers are assignments carrying an overnight location.
	type layoverRef struct {
		idx    int
		tripID string
	}
	var layovers []layoverRef
	for i := range req.Assignments {
		if req.Assignments[i].OvernightLocation != "" {
			layovers = append(layovers, layoverRef{idx: i, tripID: req.Assignments[i].TripID})
		}
	}
	if len(layovers) == 0 {
		return result, nil
	}

	// Count overnights per trip so trip edges can be prorated.
	perTrip := make(map[string]int)
	seenInTrip := make(map[string]int)
	for _, l := range layovers {
		perTrip[l.tripID]++
	}

	defaultRateUsed := false
	for _, l := range layovers {
		f := &req.Assignments[l.idx]

		rate, ok := m.opts.PerDiemRates[f.OvernightLocation]
		if !ok {
			defaultRateUsed = true
			if f.IsInternational {
				rate = m.opts.InternationalPerDiem
			} else {
				rate = m.opts.DomesticPerDiem
			}
		}

		position := seenInTrip[l.tripID]
		seenInTrip[l.tripID]++
		isEdge := position == 0 || position == perTrip[l.tripID]-1

		amount := rate
		if isEdge {
			amount = rate * TripEdgeProration
		}

		hours := 24.0
		if next := nextDeparture(req.Assignments, l.idx); next > 0 {
			hours = next
		}

		result.Layovers = append(result.Layovers, types.LayoverAllowance{
			Location:      f.OvernightLocation,
			Date:          f.FlightDate,
			Hours:         round2(hours),
			Rate:          rate,
			Amount:        round2(amount),
			International: f.IsInternational,
			Prorated:      isEdge,
		})
		result.TotalPerDiem += round2(amount)
	}

	result.MealDeductions = round2(m.opts.MealDeductionPerDay * float64(len(result.Layovers)))
	result.TotalPerDiem = round2(result.TotalPerDiem - result.MealDeductions)

	if defaultRateUsed {
		result.ConfidenceScore = 0.95
	}
	return result, nil
}

// nextDeparture returns the hours from the layover arrival to the next
// departure, or 0 when no later departure exists.
func nextDeparture(assignments []types.FlightAssignment, layoverIdx int) float64 {
	f := &assignments[layoverIdx]
	arrival := f.ActualArrival
	if arrival.IsZero() {
		arrival = f.ScheduledArrival
	}
	if arrival.IsZero() {
		return 0
	}
	for i := layoverIdx + 1; i < len(assignments); i++ {
		dep := assignments[i].ActualDeparture
		if dep.IsZero() {
			dep = assignments[i].ScheduledDeparture
		}
		if !dep.IsZero() && dep.After(arrival) {
			return hoursBetween(arrival, dep)
		}
	}
	return 0
}
