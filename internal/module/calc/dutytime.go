package calc

import (
	"context"
	"fmt"
	"sort"
	"time"

	"yqhp/pay-engine/internal/module"
	"yqhp/pay-engine/pkg/types"
)

// dutyPeriod is one trip's consolidated duty window.
type dutyPeriod struct {
	tripID      string
	reportTime  time.Time
	releaseTime time.Time
	fdpHours    float64
	flightHours float64
	date        string
}

// DutyTime validates the period's duty data against FAA Part 117 limits:
// per-duty FDP, minimum rest between duties, and the cumulative windows.
type DutyTime struct{}

// NewDutyTime 创建执勤时间监控模块
func NewDutyTime() *DutyTime {
	return &DutyTime{}
}

func (m *DutyTime) Stage() string {
	return types.StageDutyTime
}

func (m *DutyTime) Calculate(ctx context.Context, req *module.Request) (types.StageOutput, error) {
	result := &types.DutyTimeResult{
		RestCompliant:   true,
		FatigueRisk:     "low",
		ConfidenceScore: 1.0,
	}
	if len(req.Assignments) == 0 {
		return result, nil
	}

	periods := groupDutyPeriods(req.Assignments)
	result.DutyPeriods = len(periods)

	var totalFDP, totalFlight float64
	for _, p := range periods {
		totalFDP += p.fdpHours
		totalFlight += p.flightHours
		result.TotalDutyHours += p.fdpHours

		if p.fdpHours <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("trip %s has no usable duty period data", p.tripID))
			continue
		}
		if p.fdpHours > MaxFDPPerDuty {
			result.Violations = append(result.Violations, types.DutyViolation{
				Rule:        "fdp_per_duty",
				Limit:       MaxFDPPerDuty,
				Actual:      p.fdpHours,
				Description: fmt.Sprintf("trip %s flight duty period %.2fh exceeds %.0fh limit", p.tripID, p.fdpHours, MaxFDPPerDuty),
			})
		}
	}

	// Rest between consecutive duty periods.
	for i := 1; i < len(periods); i++ {
		prev, next := periods[i-1], periods[i]
		if prev.releaseTime.IsZero() || next.reportTime.IsZero() {
			continue
		}
		rest := hoursBetween(prev.releaseTime, next.reportTime)
		if rest > 0 && rest < MinRestHours {
			result.RestCompliant = false
			result.Violations = append(result.Violations, types.DutyViolation{
				Rule:        "min_rest",
				Limit:       MinRestHours,
				Actual:      rest,
				Description: fmt.Sprintf("only %.2fh rest between trips %s and %s, minimum is %.0fh", rest, prev.tripID, next.tripID, MinRestHours),
			})
		}
	}

	checkCumulative(result, "fdp_7_days", maxWindowSum(periods, 7, func(p dutyPeriod) float64 { return p.fdpHours }), LimitFDP7Days)
	checkCumulative(result, "fdp_28_days", totalFDP, LimitFDP28Days)
	checkCumulative(result, "flight_time_28_days", totalFlight, LimitFlightTime28Days)
	checkCumulative(result, "flight_time_365_days", totalFlight, LimitFlightTime365Days)

	switch {
	case len(result.Violations) > 0:
		result.FatigueRisk = "high"
	case len(result.Warnings) > 0:
		result.FatigueRisk = "medium"
	}

	result.ConfidenceScore = clampConfidence(1.0 - 0.05*float64(len(result.Warnings)) - 0.1*float64(len(result.Violations)))
	if result.ConfidenceScore < 0.5 {
		result.ConfidenceScore = 0.5
	}
	return result, nil
}

// checkCumulative appends a violation when actual exceeds limit and a
// warning when utilization reaches 90%.
func checkCumulative(result *types.DutyTimeResult, rule string, actual, limit float64) {
	switch {
	case actual > limit:
		result.Violations = append(result.Violations, types.DutyViolation{
			Rule:        rule,
			Limit:       limit,
			Actual:      actual,
			Description: fmt.Sprintf("cumulative %s %.2fh exceeds %.0fh limit", rule, actual, limit),
		})
	case actual >= 0.9*limit:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("cumulative %s at %.0f%% of limit (%.2fh of %.0fh)", rule, actual/limit*100, actual, limit))
	}
}

// groupDutyPeriods collapses assignments into per-trip duty periods ordered
// by report time.
func groupDutyPeriods(assignments []types.FlightAssignment) []dutyPeriod {
	byTrip := make(map[string][]types.FlightAssignment)
	order := make([]string, 0)
	for _, f := range assignments {
		tripID := f.TripID
		if tripID == "" {
			tripID = "UNKNOWN"
		}
		if _, seen := byTrip[tripID]; !seen {
			order = append(order, tripID)
		}
		byTrip[tripID] = append(byTrip[tripID], f)
	}

	periods := make([]dutyPeriod, 0, len(byTrip))
	for _, tripID := range order {
		flights := byTrip[tripID]
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].SequenceNumber < flights[j].SequenceNumber
		})

		first, last := flights[0], flights[len(flights)-1]
		p := dutyPeriod{
			tripID:      tripID,
			reportTime:  first.DutyReportTime,
			releaseTime: last.DutyEndTime,
			date:        first.FlightDate,
		}
		if first.FlightDutyPeriod > 0 {
			p.fdpHours = first.FlightDutyPeriod
		} else {
			p.fdpHours = hoursBetween(first.DutyReportTime, last.DutyEndTime)
		}
		for i := range flights {
			block, _ := segmentBlockTime(&flights[i])
			p.flightHours += block
		}
		periods = append(periods, p)
	}

	sort.SliceStable(periods, func(i, j int) bool {
		a, b := periods[i].reportTime, periods[j].reportTime
		if a.IsZero() || b.IsZero() {
			return periods[i].date < periods[j].date
		}
		return a.Before(b)
	})
	return periods
}

// maxWindowSum returns the largest sum of extract(p) over any sliding window
// of windowDays calendar days.
func maxWindowSum(periods []dutyPeriod, windowDays int, extract func(dutyPeriod) float64) float64 {
	var maxSum float64
	for i := range periods {
		start, ok := periodDay(periods[i])
		if !ok {
			continue
		}
		var sum float64
		for j := range periods {
			day, ok := periodDay(periods[j])
			if !ok {
				continue
			}
			offset := day.Sub(start).Hours() / 24
			if offset >= 0 && offset < float64(windowDays) {
				sum += extract(periods[j])
			}
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	return maxSum
}

func periodDay(p dutyPeriod) (time.Time, bool) {
	if !p.reportTime.IsZero() {
		return p.reportTime.Truncate(24 * time.Hour), true
	}
	if p.date != "" {
		if day, err := time.Parse("2006-01-02", p.date); err == nil {
			return day, true
		}
	}
	return time.Time{}, false
}
