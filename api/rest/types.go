package rest

import (
	"time"

	"yqhp/pay-engine/pkg/types"
)

// CalculationRequest is the request body for submitting a pay calculation.
type CalculationRequest struct {
	CrewMember        *types.CrewMemberProfile `json:"crew_member"`
	FlightAssignments []types.FlightAssignment `json:"flight_assignments"`
	PayPeriodStart    string                   `json:"pay_period_start"`
	PayPeriodEnd      string                   `json:"pay_period_end"`
}

// PayBreakdownDTO mirrors the finalized breakdown.
type PayBreakdownDTO struct {
	BasePay      float64 `json:"base_pay"`
	FlightPay    float64 `json:"flight_pay"`
	GuaranteePay float64 `json:"guarantee_pay"`
	PerDiem      float64 `json:"per_diem"`
	PremiumPay   float64 `json:"premium_pay"`
	ClaimsPay    float64 `json:"claims_pay"`
	TotalPay     float64 `json:"total_pay"`
}

// CalculationResponse is the terminal view of one pipeline run.
type CalculationResponse struct {
	ExecutionID           string           `json:"execution_id"`
	EmployeeID            string           `json:"employee_id"`
	PayPeriodStart        string           `json:"pay_period_start"`
	PayPeriodEnd          string           `json:"pay_period_end"`
	Status                string           `json:"status"`
	TotalPay              *float64         `json:"total_pay,omitempty"`
	TotalHours            *float64         `json:"total_hours,omitempty"`
	Breakdown             *PayBreakdownDTO `json:"breakdown,omitempty"`
	ConfidenceScore       float64          `json:"confidence_score"`
	RequiresHumanReview   bool             `json:"requires_human_review"`
	Warnings              []string         `json:"warnings"`
	Errors                []string         `json:"errors,omitempty"`
	ProcessingTimeSeconds *float64         `json:"processing_time_seconds,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StatsResponse exposes per-stage duration distributions.
type StatsResponse struct {
	Stages []StageStatsDTO `json:"stages"`
}

// StageStatsDTO is one stage's timing snapshot.
type StageStatsDTO struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
	MinMS int64  `json:"min_ms"`
	MaxMS int64  `json:"max_ms"`
	P50MS int64  `json:"p50_ms"`
	P95MS int64  `json:"p95_ms"`
	P99MS int64  `json:"p99_ms"`
}

// newCalculationResponse maps a terminal execution state to the API view.
func newCalculationResponse(st *types.ExecutionState) CalculationResponse {
	resp := CalculationResponse{
		ExecutionID:         st.ExecutionID,
		PayPeriodStart:      st.PayPeriodStart,
		PayPeriodEnd:        st.PayPeriodEnd,
		Status:              string(st.Status),
		ConfidenceScore:     1.0,
		RequiresHumanReview: st.RequiresHumanReview,
		Warnings:            append([]string{}, st.Warnings...),
	}
	if st.CrewMember != nil {
		resp.EmployeeID = st.CrewMember.EmployeeID
	}
	for _, e := range st.ErrorLog {
		resp.Errors = append(resp.Errors, e.String())
	}
	if st.Breakdown != nil {
		b := st.Breakdown
		resp.TotalPay = &b.TotalPay
		resp.TotalHours = &b.TotalHours
		resp.ConfidenceScore = b.ConfidenceScore

		var flightPay, guaranteePay float64
		if st.FlightTime != nil {
			flightPay = st.FlightTime.TotalFlightPay
		}
		if st.Guarantee != nil {
			guaranteePay = st.Guarantee.GuaranteePay
		}
		resp.Breakdown = &PayBreakdownDTO{
			BasePay:      b.BasePay,
			FlightPay:    flightPay,
			GuaranteePay: guaranteePay,
			PerDiem:      b.PerDiem,
			PremiumPay:   b.PremiumPay,
			ClaimsPay:    b.ClaimsPay,
			TotalPay:     b.TotalPay,
		}
	}
	if st.ProcessingCompletedAt != nil {
		seconds := st.ProcessingCompletedAt.Sub(st.ProcessingStartedAt).Seconds()
		resp.ProcessingTimeSeconds = &seconds
	}
	return resp
}
