package pipeline

import (
	"fmt"
	"time"

	"yqhp/pay-engine/pkg/types"
)

// Finalizer combines whatever stage outputs are present into the terminal
// pay figures. Missing slots degrade to zero contributions; the aggregate
// confidence is the minimum over stages that produced a result.
type Finalizer struct{}

// NewFinalizer 创建终结器
func NewFinalizer() *Finalizer {
	return &Finalizer{}
}

// Finalize writes the derived finals and the terminal status. A panic during
// finalization marks the run as errored instead of crashing the engine. The
// completion timestamp is set unconditionally, as the very last action.
func (f *Finalizer) Finalize(st *types.ExecutionState, needsReview bool) {
	defer func() {
		now := time.Now().UTC()
		st.ProcessingCompletedAt = &now
	}()
	defer func() {
		if r := recover(); r != nil {
			st.AddError("finalize", "FINALIZATION_ERROR", fmt.Sprintf("unexpected failure: %v", r))
			st.Breakdown = nil
			st.Status = types.StatusError
		}
	}()

	var flightPay, totalHours float64
	if st.FlightTime != nil {
		flightPay = st.FlightTime.TotalFlightPay
		totalHours = st.FlightTime.TotalCreditTime
	}

	var guaranteePay float64
	if st.Guarantee != nil {
		guaranteePay = st.Guarantee.GuaranteePay
	}

	var perDiem float64
	if st.PerDiem != nil {
		perDiem = st.PerDiem.TotalPerDiem
	}

	var premium float64
	if st.PremiumPay != nil {
		premium = st.PremiumPay.TotalPremiumPay
	}

	var claimsPay float64
	if st.Claims != nil {
		claimsPay = st.Claims.TotalApproved
	}

	// Pay the greater of actual flight pay and the guarantee floor.
	basePay := flightPay
	if guaranteePay > basePay {
		basePay = guaranteePay
	}

	st.Breakdown = &types.PayBreakdown{
		TotalHours:      totalHours,
		BasePay:         basePay,
		PerDiem:         perDiem,
		PremiumPay:      premium,
		ClaimsPay:       claimsPay,
		TotalPay:        basePay + perDiem + premium + claimsPay,
		ConfidenceScore: minConfidence(st),
	}

	if needsReview {
		st.Status = types.StatusNeedsReview
	} else {
		st.Status = types.StatusComplete
	}
}

// minConfidence returns the minimum confidence over the stages that
// produced a result. Empty slots are excluded: their failure already shows
// in the error log and review flagging. A run with no results reports 1.0.
func minConfidence(st *types.ExecutionState) float64 {
	min := 1.0
	consider := func(out types.StageOutput) {
		if c := out.Confidence(); c < min {
			min = c
		}
	}
	if st.FlightTime != nil {
		consider(st.FlightTime)
	}
	if st.DutyTime != nil {
		consider(st.DutyTime)
	}
	if st.PerDiem != nil {
		consider(st.PerDiem)
	}
	if st.PremiumPay != nil {
		consider(st.PremiumPay)
	}
	if st.Guarantee != nil {
		consider(st.Guarantee)
	}
	if st.Compliance != nil {
		consider(st.Compliance)
	}
	if st.Claims != nil {
		consider(st.Claims)
	}
	return min
}
